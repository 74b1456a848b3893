package view

import (
	"errors"

	"github.com/UnibsMatt/roomates/internal/api"
)

// User-facing admin messages. A wrong password is distinguished from every
// other failure so the operator knows whether to retype or retry.
const (
	AdminMsgWrongPassword = "Password errata."
	AdminMsgLoadFailed    = "Errore durante il caricamento delle candidature."
)

// AdminPhase is where the password-gated admin area stands.
type AdminPhase int

const (
	AdminLocked AdminPhase = iota
	AdminLoading
	AdminReady
	AdminFailed
)

// AdminState is the admin view's whole state: terminal phases are AdminReady
// (until logout or a failed call) and AdminLocked.
type AdminState struct {
	Phase        AdminPhase
	Message      string
	Applications []api.Application
}

// Unlocked reports whether the applications table may be shown.
func (s AdminState) Unlocked() bool { return s.Phase == AdminReady }

// AdminUnlocked is the state after a successful fetch.
func AdminUnlocked(apps []api.Application) AdminState {
	return AdminState{Phase: AdminReady, Applications: apps}
}

// AdminRejected classifies a failed fetch: unauthorized means the password
// was wrong and must be re-entered; anything else is a load failure.
func AdminRejected(err error) AdminState {
	if errors.Is(err, api.ErrUnauthorized) {
		return AdminState{Phase: AdminFailed, Message: AdminMsgWrongPassword}
	}
	return AdminState{Phase: AdminFailed, Message: AdminMsgLoadFailed}
}
