package entity

import (
	"time"
)

type VoiceCommand struct {
	ID         string            `json:"id"`
	UserID     string            `json:"user_id"`
	SessionID  string            `json:"session_id,omitempty"`
	Transcript string            `json:"transcript"`
	Action     string            `json:"action"`
	Language   string            `json:"language"`
	Parameters map[string]string `json:"parameters"`
	Response   string            `json:"response"`
	Route      string            `json:"route,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

// VoiceSession is one continuous listening session opened over the websocket.
type VoiceSession struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Language     string    `json:"language"`
	State        string    `json:"state"`
	Continuous   bool      `json:"continuous"`
	CommandCount int       `json:"command_count"`
	Failures     int       `json:"failures"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
}
