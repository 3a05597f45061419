package dto

// ChatRequest is a prompt submitted to the AI assistant. The upstream API
// accepts at most 2000 characters of prompt text.
type ChatRequest struct {
	Message string `json:"message" binding:"required,max=2000"`
}

// ChatResponse carries the generated reply
type ChatResponse struct {
	Reply string `json:"reply"`
}
