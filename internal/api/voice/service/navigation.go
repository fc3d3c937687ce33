package voiceService

import "SafeSphere/pkg/nlp"

// navigationRoutes maps a recognized action to the client screen it opens.
// HELP and UNKNOWN stay on the current screen.
var navigationRoutes = map[nlp.VoiceAction]string{
	nlp.ActionOpenPassword:      "/passwords/detail",
	nlp.ActionGeneratePassword:  "/passwords/generate",
	nlp.ActionCheckSecurity:     "/security/check",
	nlp.ActionSecurityScore:     "/security/score",
	nlp.ActionAIPredictor:       "/ai/predictor",
	nlp.ActionListPasswords:     "/passwords",
	nlp.ActionSearchPassword:    "/passwords/search",
	nlp.ActionVaultStatus:       "/vault/status",
	nlp.ActionLockApp:           "/lock",
	nlp.ActionNavigateDashboard: "/dashboard",
	nlp.ActionNavigatePasswords: "/passwords",
	nlp.ActionNavigateVault:     "/vault",
	nlp.ActionNavigateSettings:  "/settings",
	nlp.ActionNavigateAIChat:    "/ai/chat",
}

func RouteFor(action nlp.VoiceAction) string {
	return navigationRoutes[action]
}
