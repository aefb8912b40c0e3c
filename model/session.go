package model

import (
	"time"
)

// Session is the server-side record behind one signed session cookie. Token
// and Username survive until explicit logout; Result and Filename are the
// session-scoped handoff between the upload and results screens and are
// cleared on logout, on starting a new upload, or on "upload another".
type Session struct {
	ID          string             `json:"id"`
	Token       string             `json:"token"`
	Username    string             `json:"username"`
	UploadState string             `json:"upload_state"`
	UploadError string             `json:"upload_error,omitempty"`
	Result      *ProcessedDocument `json:"result,omitempty"`
	Filename    string             `json:"filename,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	LastSeenAt  time.Time          `json:"last_seen_at"`
}

// Upload state constants
const (
	UploadIdle      = "idle"
	UploadRunning   = "uploading"
	UploadSucceeded = "succeeded"
	UploadFailed    = "failed"
)

// HasResult reports whether a processed result is cached for this session.
func (s *Session) HasResult() bool {
	return s.Result != nil
}

// DisplayFilename returns the cached filename, defaulting to "document.pdf".
func (s *Session) DisplayFilename() string {
	if s.Filename == "" {
		return "document.pdf"
	}
	return s.Filename
}
