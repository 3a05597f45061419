package filestorage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uploadedFile builds a real multipart.FileHeader the way gin hands it to
// the service layer.
func uploadedFile(t *testing.T, fieldName, fileName, content string) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(fieldName, fileName)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/posts", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	files := req.MultipartForm.File[fieldName]
	require.Len(t, files, 1)
	return files[0]
}

func TestNewLocalStorageCreatesDirectory(t *testing.T) {
	base := filepath.Join(t.TempDir(), "uploads")

	_, err := NewLocalStorage(base, "http://localhost:8080/uploads")
	require.NoError(t, err)

	info, err := os.Stat(base)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSaveFileWithPath(t *testing.T) {
	base := t.TempDir()
	ls, err := NewLocalStorage(base, "http://localhost:8080/uploads")
	require.NoError(t, err)

	header := uploadedFile(t, "images", "photo.png", "png-bytes")

	ref, err := ls.SaveFileWithPath(header, ImageSubdir)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "http://localhost:8080/uploads/images/"))
	assert.True(t, strings.HasSuffix(ref, ".png"), "stored name keeps the extension: %s", ref)
	assert.NotContains(t, ref, "photo", "original filename must not leak into the reference")

	content, err := os.ReadFile(ls.GetFullPath(ref))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(content))
}

func TestSaveFileNilHeader(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	ref, err := ls.SaveFile(nil)
	require.NoError(t, err)
	assert.Empty(t, ref)
}

func TestDeleteFile(t *testing.T) {
	base := t.TempDir()
	ls, err := NewLocalStorage(base, "http://localhost:8080/uploads")
	require.NoError(t, err)

	header := uploadedFile(t, "videos", "clip.mp4", "mp4-bytes")
	ref, err := ls.SaveFileWithPath(header, VideoSubdir)
	require.NoError(t, err)

	physical := ls.GetFullPath(ref)
	_, err = os.Stat(physical)
	require.NoError(t, err)

	require.NoError(t, ls.DeleteFile(ref))
	_, err = os.Stat(physical)
	assert.True(t, os.IsNotExist(err))

	// Deleting again is a no-op
	assert.NoError(t, ls.DeleteFile(ref))
}

func TestDeleteFileEmptyPath(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	assert.NoError(t, ls.DeleteFile(""))
}
