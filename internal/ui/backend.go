package ui

import (
	"github.com/ashwch/powermenu/internal/config"
	"github.com/ashwch/powermenu/internal/session"
)

// Menu is the part of a session a host drives.
type Menu interface {
	List(query string) []session.Candidate
	Select(id session.ID) (session.Outcome, error)
}

// IsInteractiveBackend reports whether backend draws a full-screen UI. Unknown
// names count as auto.
func IsInteractiveBackend(backend string) bool {
	return config.NormalizeBackend(backend, config.BackendAuto) != config.BackendPlain
}

func backendCandidates(backend string) []string {
	switch config.NormalizeBackend(backend, config.BackendAuto) {
	case config.BackendHuh:
		return []string{config.BackendHuh, config.BackendBubbleTea, config.BackendTView}
	case config.BackendTView:
		return []string{config.BackendTView, config.BackendBubbleTea, config.BackendHuh}
	case config.BackendPlain:
		return []string{config.BackendPlain}
	default:
		return []string{config.BackendBubbleTea, config.BackendHuh, config.BackendTView}
	}
}
