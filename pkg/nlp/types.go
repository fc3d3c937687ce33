package nlp

import "time"

type VoiceAction string

const (
	ActionOpenPassword      VoiceAction = "OPEN_PASSWORD"
	ActionGeneratePassword  VoiceAction = "GENERATE_PASSWORD"
	ActionCheckSecurity     VoiceAction = "CHECK_SECURITY"
	ActionSecurityScore     VoiceAction = "SECURITY_SCORE"
	ActionAIPredictor       VoiceAction = "AI_PREDICTOR"
	ActionListPasswords     VoiceAction = "LIST_PASSWORDS"
	ActionSearchPassword    VoiceAction = "SEARCH_PASSWORD"
	ActionVaultStatus       VoiceAction = "VAULT_STATUS"
	ActionLockApp           VoiceAction = "LOCK_APP"
	ActionNavigateDashboard VoiceAction = "NAVIGATE_DASHBOARD"
	ActionNavigatePasswords VoiceAction = "NAVIGATE_PASSWORDS"
	ActionNavigateVault     VoiceAction = "NAVIGATE_VAULT"
	ActionNavigateSettings  VoiceAction = "NAVIGATE_SETTINGS"
	ActionNavigateAIChat    VoiceAction = "NAVIGATE_AI_CHAT"
	ActionHelp              VoiceAction = "HELP"
	ActionUnknown           VoiceAction = "UNKNOWN"
)

var knownActions = map[VoiceAction]bool{
	ActionOpenPassword:      true,
	ActionGeneratePassword:  true,
	ActionCheckSecurity:     true,
	ActionSecurityScore:     true,
	ActionAIPredictor:       true,
	ActionListPasswords:     true,
	ActionSearchPassword:    true,
	ActionVaultStatus:       true,
	ActionLockApp:           true,
	ActionNavigateDashboard: true,
	ActionNavigatePasswords: true,
	ActionNavigateVault:     true,
	ActionNavigateSettings:  true,
	ActionNavigateAIChat:    true,
	ActionHelp:              true,
}

func (a VoiceAction) Valid() bool {
	return knownActions[a]
}

const (
	ParamTarget = "target"
	ParamLength = "length"
)

// CommandPattern binds the phrases of one action inside a language pack.
// Declaration order inside the pack decides which action wins.
type CommandPattern struct {
	Action   VoiceAction `json:"action"`
	Patterns []string    `json:"patterns"`
	Response string      `json:"response"`
}

type SupportedLanguage struct {
	Code             string           `json:"code"`
	DisplayName      string           `json:"display_name"`
	Flag             string           `json:"flag"`
	CommandPatterns  []CommandPattern `json:"commands"`
	FallbackResponse string           `json:"fallback_response"`
	FillerWords      []string         `json:"filler_words"`
	NumberWords      map[string]int   `json:"number_words"`

	compiled []compiledCommand
	fillers  map[string]bool
	numbers  map[string]int
}

// VoiceCommand is the immutable result of one finalized transcript.
type VoiceCommand struct {
	RawText    string            `json:"raw_text"`
	Action     VoiceAction       `json:"action"`
	Language   string            `json:"language"`
	Parameters map[string]string `json:"parameters,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
}

type IInterpreter interface {
	Interpret(transcript string, language SupportedLanguage) VoiceCommand
	Respond(cmd VoiceCommand, language SupportedLanguage) string
}
