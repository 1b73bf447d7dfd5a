// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package confirm

import (
	"context"
	"testing"

	"github.com/venuedesk/admin-go/internal/apiclient"
)

func okResponse() *apiclient.Response {
	return &apiclient.Response{Success: true, Status: 200}
}

func failedResponse(msg string) *apiclient.Response {
	err := &apiclient.APIError{Kind: apiclient.KindAPI, Status: 400, Message: msg}
	return &apiclient.Response{Success: false, Status: 400, Message: msg, Err: err}
}

func TestFlowHappyPath(t *testing.T) {
	f := New()
	if f.Phase() != PhaseIdle {
		t.Fatalf("new flow phase = %v", f.Phase())
	}

	f.Open(Action{Verb: "approve", Resource: "banners", TargetID: 7})
	if f.Phase() != PhasePrompt {
		t.Fatalf("phase after Open = %v", f.Phase())
	}

	called := false
	ok := f.Submit(context.Background(), "", func(ctx context.Context, reason string) *apiclient.Response {
		called = true
		return okResponse()
	})
	if !ok || !called {
		t.Fatalf("Submit ok=%v called=%v", ok, called)
	}
	if f.Phase() != PhaseClosed {
		t.Errorf("phase after success = %v", f.Phase())
	}
}

func TestRejectWithoutReasonNeverHitsNetwork(t *testing.T) {
	f := New()
	f.Open(Action{Verb: "reject", Resource: "promotions", TargetID: 12})

	called := false
	ok := f.Submit(context.Background(), "   ", func(ctx context.Context, reason string) *apiclient.Response {
		called = true
		return okResponse()
	})
	if ok {
		t.Fatal("Submit should fail without a reason")
	}
	if called {
		t.Fatal("network call made despite missing reason")
	}
	if f.Phase() != PhasePrompt {
		t.Errorf("prompt should stay open, phase = %v", f.Phase())
	}
	if f.ErrMessage() == "" {
		t.Error("validation message missing")
	}
}

func TestBlockRequiresReason(t *testing.T) {
	if !RequiresReason("block") || !RequiresReason("reject") {
		t.Error("block and reject must require a reason")
	}
	if RequiresReason("approve") || RequiresReason("unblock") {
		t.Error("approve and unblock must not require a reason")
	}
}

func TestBackendFailureReopensPromptWithMessage(t *testing.T) {
	f := New()
	f.Open(Action{Verb: "reject", Resource: "banners", TargetID: 3})

	ok := f.Submit(context.Background(), "Low quality image", func(ctx context.Context, reason string) *apiclient.Response {
		return failedResponse("Banner already processed")
	})
	if ok {
		t.Fatal("Submit should report failure")
	}
	if f.Phase() != PhasePrompt {
		t.Errorf("phase after failure = %v", f.Phase())
	}
	if f.ErrMessage() != "Banner already processed" {
		t.Errorf("ErrMessage = %q", f.ErrMessage())
	}
	if f.Reason() != "Low quality image" {
		t.Errorf("entered reason lost: %q", f.Reason())
	}
}

func TestSubmitOutsidePromptIsNoOp(t *testing.T) {
	f := New()
	called := false
	if f.Submit(context.Background(), "x", func(ctx context.Context, reason string) *apiclient.Response {
		called = true
		return okResponse()
	}) {
		t.Fatal("idle Submit should fail")
	}
	if called {
		t.Fatal("idle Submit must not call the backend")
	}
}

func TestCancelClearsPrompt(t *testing.T) {
	f := New()
	f.Open(Action{Verb: "delete", Resource: "tickets", TargetID: 5})
	f.Cancel()
	if f.Phase() != PhaseIdle {
		t.Errorf("phase after Cancel = %v", f.Phase())
	}
	if f.Action() != (Action{}) {
		t.Errorf("action not cleared: %+v", f.Action())
	}
}
