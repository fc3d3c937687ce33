package session

import (
	"sync"

	"SafeSphere/pkg/nlp"
)

// History keeps the most recent commands of a session, newest first.
type History struct {
	mu    sync.RWMutex
	limit int
	items []nlp.VoiceCommand
}

func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistorySize
	}
	return &History{limit: limit, items: make([]nlp.VoiceCommand, 0, limit)}
}

func (h *History) Add(cmd nlp.VoiceCommand) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.items) == h.limit {
		h.items = h.items[:h.limit-1]
	}
	h.items = append([]nlp.VoiceCommand{cmd}, h.items...)
}

func (h *History) Items() []nlp.VoiceCommand {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]nlp.VoiceCommand, len(h.items))
	copy(out, h.items)
	return out
}

func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.items)
}
