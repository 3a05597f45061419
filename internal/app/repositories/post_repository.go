package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stackit/stackit/internal/app/models"
	"github.com/stackit/stackit/internal/db"
	"github.com/stackit/stackit/internal/pkg/apperrors"
	"github.com/stackit/stackit/internal/pkg/dberrors"
)

// PostRepository handles database operations for community posts
type PostRepository struct {
	db *pgxpool.Pool
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *pgxpool.Pool) *PostRepository {
	return &PostRepository{db: db}
}

// PostFilter narrows the post list
type PostFilter struct {
	Search   string
	Tags     []string
	AuthorID *int64
	Page     int
	PageSize int
}

// Create inserts a new post and fills in the generated ID
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (title, content, code_snippet, language, author_id, tags, image_urls, video_urls)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		post.Title, post.Content, post.CodeSnippet, post.Language,
		post.AuthorID, post.Tags, post.ImageURLs, post.VideoURLs).
		Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating post: %w", err)
	}

	return nil
}

// List retrieves posts with filtering and pagination. Every post in the page
// comes back fully hydrated with author, comments and like entries, since the
// feed renders all of it at once.
func (r *PostRepository) List(ctx context.Context, filter PostFilter) ([]models.Post, int64, error) {
	builder := squirrel.Select(
		"p.id", "p.title", "p.content", "p.code_snippet", "p.language",
		"p.author_id", "p.tags", "p.image_urls", "p.video_urls",
		"p.likes", "p.shares", "p.created_at", "p.updated_at",
		"u.username", "u.name", "u.profile_image",
		"COUNT(*) OVER() AS total_count",
	).
		From("posts p").
		Join("users u ON u.id = p.author_id").
		PlaceholderFormat(squirrel.Dollar)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		builder = builder.Where("(p.title ILIKE ? OR p.content ILIKE ?)", pattern, pattern)
	}
	if len(filter.Tags) > 0 {
		builder = builder.Where("p.tags && ?", filter.Tags)
	}
	if filter.AuthorID != nil {
		builder = builder.Where("p.author_id = ?", *filter.AuthorID)
	}

	offset := (filter.Page - 1) * filter.PageSize
	builder = builder.
		OrderBy("p.created_at DESC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset))

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	posts := []models.Post{}
	var total int64
	for rows.Next() {
		var p models.Post
		author := &models.User{}
		err := rows.Scan(
			&p.ID, &p.Title, &p.Content, &p.CodeSnippet, &p.Language,
			&p.AuthorID, &p.Tags, &p.ImageURLs, &p.VideoURLs,
			&p.Likes, &p.Shares, &p.CreatedAt, &p.UpdatedAt,
			&author.Username, &author.Name, &author.ProfileImage, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning post row: %w", err)
		}
		author.ID = p.AuthorID
		p.Author = author
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	for i := range posts {
		if err := r.hydrate(ctx, &posts[i]); err != nil {
			return nil, 0, err
		}
	}

	return posts, total, nil
}

// GetByID retrieves a post with author, comments and like entries
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `
		SELECT p.id, p.title, p.content, p.code_snippet, p.language,
			p.author_id, p.tags, p.image_urls, p.video_urls,
			p.likes, p.shares, p.created_at, p.updated_at,
			u.username, u.name, u.profile_image
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.id = $1`

	post := &models.Post{}
	author := &models.User{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&post.ID, &post.Title, &post.Content, &post.CodeSnippet, &post.Language,
		&post.AuthorID, &post.Tags, &post.ImageURLs, &post.VideoURLs,
		&post.Likes, &post.Shares, &post.CreatedAt, &post.UpdatedAt,
		&author.Username, &author.Name, &author.ProfileImage)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	author.ID = post.AuthorID
	post.Author = author

	if err := r.hydrate(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// hydrate loads comments and like entries for an already-scanned post
func (r *PostRepository) hydrate(ctx context.Context, post *models.Post) error {
	comments, err := r.GetComments(ctx, post.ID)
	if err != nil {
		return err
	}
	post.Comments = comments
	post.CommentCount = len(comments)

	likes, err := r.getLikes(ctx, post.ID)
	if err != nil {
		return err
	}
	post.LikeEntries = likes

	return nil
}

// GetComments retrieves the comments on a post, oldest first
func (r *PostRepository) GetComments(ctx context.Context, postID int64) ([]models.PostComment, error) {
	query := `
		SELECT c.id, c.post_id, c.author_id, c.content, c.created_at,
			u.username, u.name, u.profile_image
		FROM post_comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC`

	rows, err := r.db.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("error loading comments: %w", err)
	}
	defer rows.Close()

	comments := []models.PostComment{}
	for rows.Next() {
		var c models.PostComment
		author := &models.User{}
		err := rows.Scan(
			&c.ID, &c.PostID, &c.AuthorID, &c.Content, &c.CreatedAt,
			&author.Username, &author.Name, &author.ProfileImage)
		if err != nil {
			return nil, fmt.Errorf("error scanning comment row: %w", err)
		}
		author.ID = c.AuthorID
		c.Author = author
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return comments, nil
}

func (r *PostRepository) getLikes(ctx context.Context, postID int64) ([]models.PostLike, error) {
	query := squirrel.Select("id", "post_id", "user_id", "created_at").
		From("post_likes").
		Where("post_id = ?", postID).
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error loading likes: %w", err)
	}
	defer rows.Close()

	likes := []models.PostLike{}
	for rows.Next() {
		var l models.PostLike
		if err := rows.Scan(&l.ID, &l.PostID, &l.UserID, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning like row: %w", err)
		}
		likes = append(likes, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return likes, nil
}

// Update updates a post's editable fields
func (r *PostRepository) Update(ctx context.Context, post *models.Post) error {
	result, err := r.db.Exec(ctx, `
		UPDATE posts
		SET title = $1, content = $2, code_snippet = $3, language = $4, tags = $5, updated_at = NOW()
		WHERE id = $6`,
		post.Title, post.Content, post.CodeSnippet, post.Language, post.Tags, post.ID)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}

	return nil
}

// GetAuthorID returns the author of a post
func (r *PostRepository) GetAuthorID(ctx context.Context, id int64) (int64, error) {
	var authorID int64
	err := r.db.QueryRow(ctx, `
		SELECT author_id FROM posts WHERE id = $1`, id).Scan(&authorID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, apperrors.ErrPostNotFound
		}
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return authorID, nil
}

// ToggleLike flips the user's like on the post and returns whether the post
// is liked afterwards plus the new like count. Insert or delete of the like
// row and the counter adjustment happen in one transaction; the counter moves
// by a relative increment so concurrent toggles stay consistent with the
// post_likes rows.
func (r *PostRepository) ToggleLike(ctx context.Context, postID, userID int64) (bool, int, error) {
	var liked bool
	var likeCount int

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var existingID int64
		err := tx.QueryRow(ctx, `
			SELECT id FROM post_likes
			WHERE post_id = $1 AND user_id = $2
			FOR UPDATE`, postID, userID).Scan(&existingID)

		var delta int
		switch {
		case err == pgx.ErrNoRows:
			_, insertErr := tx.Exec(ctx, `
				INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2)`,
				postID, userID)
			if insertErr != nil {
				if dberrors.IsUniqueViolation(insertErr) {
					return apperrors.ErrDuplicateLike
				}
				if dberrors.IsForeignKeyViolation(insertErr) {
					return apperrors.ErrPostNotFound
				}
				return fmt.Errorf("error inserting like: %w", insertErr)
			}
			liked = true
			delta = 1

		case err != nil:
			return fmt.Errorf("error loading existing like: %w", err)

		default:
			if _, err := tx.Exec(ctx, `DELETE FROM post_likes WHERE id = $1`, existingID); err != nil {
				return fmt.Errorf("error removing like: %w", err)
			}
			liked = false
			delta = -1
		}

		countErr := tx.QueryRow(ctx, `
			UPDATE posts SET likes = likes + $1 WHERE id = $2
			RETURNING likes`, delta, postID).Scan(&likeCount)
		if countErr != nil {
			if countErr == pgx.ErrNoRows {
				return apperrors.ErrPostNotFound
			}
			return fmt.Errorf("error adjusting like count: %w", countErr)
		}

		return nil
	})
	if err != nil {
		return false, 0, err
	}

	return liked, likeCount, nil
}

// HasLiked reports whether the user currently likes the post
func (r *PostRepository) HasLiked(ctx context.Context, postID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM post_likes WHERE post_id = $1 AND user_id = $2)`,
		postID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking like: %w", err)
	}

	return exists, nil
}

// AddComment inserts a comment and fills in the generated ID
func (r *PostRepository) AddComment(ctx context.Context, comment *models.PostComment) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO post_comments (post_id, author_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		comment.PostID, comment.AuthorID, comment.Content).
		Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrPostNotFound
		}
		return fmt.Errorf("error creating comment: %w", err)
	}

	return nil
}

// IncrementShares bumps the share counter by one
func (r *PostRepository) IncrementShares(ctx context.Context, id int64) (int, error) {
	var shares int
	err := r.db.QueryRow(ctx, `
		UPDATE posts SET shares = shares + 1 WHERE id = $1
		RETURNING shares`, id).Scan(&shares)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, apperrors.ErrPostNotFound
		}
		return 0, fmt.Errorf("error incrementing shares: %w", err)
	}

	return shares, nil
}

// Delete removes a post and its comments and likes in one transaction
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("error checking post: %w", err)
		}
		if !exists {
			return apperrors.ErrPostNotFound
		}

		statements := []string{
			`DELETE FROM post_likes WHERE post_id = $1`,
			`DELETE FROM post_comments WHERE post_id = $1`,
			`DELETE FROM posts WHERE id = $1`,
		}

		for _, stmt := range statements {
			if _, err := tx.Exec(ctx, stmt, id); err != nil {
				return fmt.Errorf("error deleting post data: %w", err)
			}
		}

		return nil
	})
}
