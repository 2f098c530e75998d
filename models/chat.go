package models

// ChatRequest is the payload of POST /chat. Message must be present but may be
// empty, hence the pointer.
type ChatRequest struct {
	Message   *string `json:"message" binding:"required"`
	SessionID string  `json:"session_id,omitempty"`
}

// ChatResponse carries the assistant reply and the session to reuse next turn.
type ChatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

// HealthResponse is the payload of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
