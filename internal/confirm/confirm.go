// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package confirm models the two-step moderation flow: a destructive verb is
// first prompted with an optional reason field, then submitted. Verbs that
// require a reason are validated before any network call is made.
package confirm

import (
	"context"
	"strings"

	"github.com/venuedesk/admin-go/internal/apiclient"
)

// Phase is the flow's position in its lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePrompt
	PhaseSubmitting
	PhaseClosed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePrompt:
		return "prompt"
	case PhaseSubmitting:
		return "submitting"
	case PhaseClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Verbs that never proceed without an operator-supplied reason.
var reasonRequired = map[string]bool{
	"reject": true,
	"block":  true,
}

// RequiresReason reports whether the verb must carry a reason.
func RequiresReason(verb string) bool {
	return reasonRequired[verb]
}

// Action identifies what the prompt is about to do.
type Action struct {
	Verb     string
	Resource string
	TargetID int64
}

// SubmitFunc performs the confirmed action against the backend.
type SubmitFunc func(ctx context.Context, reason string) *apiclient.Response

// Flow is one confirmation lifecycle. It is not safe for concurrent use; each
// request builds its own.
type Flow struct {
	phase  Phase
	action Action
	reason string
	errMsg string
}

// New returns an idle flow.
func New() *Flow {
	return &Flow{phase: PhaseIdle}
}

// Phase returns the current lifecycle position.
func (f *Flow) Phase() Phase { return f.phase }

// Action returns the prompted action.
func (f *Flow) Action() Action { return f.action }

// Reason returns the operator-entered reason, trimmed.
func (f *Flow) Reason() string { return f.reason }

// ErrMessage returns the error shown inside the prompt, if any.
func (f *Flow) ErrMessage() string { return f.errMsg }

// Open moves an idle or closed flow to the prompt. Opening while submitting
// is ignored so a slow backend call cannot be stacked.
func (f *Flow) Open(action Action) {
	if f.phase == PhaseSubmitting {
		return
	}
	f.phase = PhasePrompt
	f.action = action
	f.reason = ""
	f.errMsg = ""
}

// Cancel abandons the prompt without side effects.
func (f *Flow) Cancel() {
	if f.phase == PhaseSubmitting {
		return
	}
	f.phase = PhaseIdle
	f.action = Action{}
	f.reason = ""
	f.errMsg = ""
}

// Submit validates the reason and runs the action. A missing required reason
// keeps the prompt open with a validation message and never touches the
// network. A backend failure reopens the prompt with the server message and
// the entered reason intact.
func (f *Flow) Submit(ctx context.Context, reason string, do SubmitFunc) bool {
	if f.phase != PhasePrompt {
		return false
	}
	f.reason = strings.TrimSpace(reason)
	if RequiresReason(f.action.Verb) && f.reason == "" {
		f.errMsg = "A reason is required for this action"
		return false
	}

	f.phase = PhaseSubmitting
	resp := do(ctx, f.reason)
	if resp == nil || !resp.Success {
		f.phase = PhasePrompt
		f.errMsg = "The action could not be completed"
		if resp != nil && resp.Err != nil && resp.Err.Message != "" {
			f.errMsg = resp.Err.Message
		}
		return false
	}

	f.phase = PhaseClosed
	f.errMsg = ""
	return true
}
