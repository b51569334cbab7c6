package model

// QuestionRequest is the body accepted by /chat, /video and /flashcards.
type QuestionRequest struct {
	Question string `json:"question" binding:"required"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

type VideoResponse struct {
	VideoLink string `json:"video_link"`
}

// FlashcardsResponse always carries a non-nil Flashcards slice so it encodes as [].
type FlashcardsResponse struct {
	Topic      string   `json:"topic"`
	Flashcards []string `json:"flashcards"`
}

// ErrorResponse is the body of every 4xx/5xx answer.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	LLM       string `json:"llm"`
	Speech    string `json:"speech"`
}
