package models

import "time"

// Session is the server-side rolling conversation state of one chat user.
type Session struct {
	ID        string    `json:"id"`
	History   []string  `json:"history"`   // "User: ..." / "Assistant: ..." lines, oldest first
	CreatedAt time.Time `json:"createdAt"` // expiry is measured from here, not from last use
}

// Clone returns a copy that shares no backing array with s.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	cp := *s
	cp.History = append([]string(nil), s.History...)
	return &cp
}
