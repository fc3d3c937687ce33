package voice

import (
	"time"

	"SafeSphere/pkg/session"
)

const MaxTranscriptLength = 1000

type SetLanguageRequest struct {
	Language string `json:"language" validate:"required,language_code"`
}

type ProcessCommandRequest struct {
	Transcript string `json:"transcript" validate:"required,max=1000"`
	Language   string `json:"language,omitempty" validate:"omitempty,language_code"`
	SessionID  string `json:"session_id,omitempty"`
}

type LanguageResponse struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Flag    string `json:"flag"`
	Current bool   `json:"current"`
}

type LanguagesResponse struct {
	Languages []LanguageResponse `json:"languages"`
	Current   string             `json:"current"`
}

type CommandResponse struct {
	ID         string            `json:"id"`
	SessionID  string            `json:"session_id,omitempty"`
	Transcript string            `json:"transcript"`
	Action     string            `json:"action"`
	Language   string            `json:"language"`
	Parameters map[string]string `json:"parameters,omitempty"`
	Response   string            `json:"response"`
	Route      string            `json:"route,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

type HistoryResponse struct {
	Commands []CommandResponse `json:"commands"`
	Source   string            `json:"source"`
}

// Session websocket frames. The client sends ClientMessage text frames and
// raw audio as binary frames; the server answers with SessionEvent frames.
const (
	MessageReady     = "ready"
	MessageUtterance = "utterance"
	MessageError     = "error"
	MessageStop      = "stop"
	MessageRevoke    = "revoke"
)

const (
	EventSession  = "session"
	EventState    = "state"
	EventPartial  = "partial"
	EventCommand  = "command"
	EventAdvisory = "advisory"
	EventClosed   = "closed"
)

type ClientMessage struct {
	Type       string             `json:"type" validate:"required,oneof=ready utterance error stop revoke"`
	Transcript string             `json:"transcript,omitempty" validate:"max=1000"`
	Error      string             `json:"error,omitempty"`
	Readiness  *session.Readiness `json:"readiness,omitempty"`
}

type SessionEvent struct {
	Type      string           `json:"type"`
	SessionID string           `json:"session_id,omitempty"`
	Language  string           `json:"language,omitempty"`
	From      string           `json:"from,omitempty"`
	State     string           `json:"state,omitempty"`
	Text      string           `json:"text,omitempty"`
	Message   string           `json:"message,omitempty"`
	Command   *CommandResponse `json:"command,omitempty"`
}
