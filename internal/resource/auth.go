// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package resource

import (
	"context"
	"encoding/json"

	"github.com/venuedesk/admin-go/internal/apiclient"
	"github.com/venuedesk/admin-go/internal/model"
)

const accountFamily = "/api/accounts/"

// LoginResult carries the access token pair and operator record returned by a
// successful login.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	User         model.AdminUser
	Message      string
}

// AuthService talks to the backend's account endpoints. Login is the only
// call issued without a bearer token.
type AuthService struct {
	api *apiclient.Client
}

// Login exchanges credentials for a token pair. The body nests the tokens and
// the operator record under "data".
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, *apiclient.APIError) {
	var zero LoginResult
	resp := s.api.Post(ctx, accountFamily+"login/", map[string]string{
		"email":    email,
		"password": password,
	})
	if resp.Err != nil {
		return zero, resp.Err
	}
	var wire struct {
		Data *struct {
			Access  string           `json:"access"`
			Refresh string           `json:"refresh"`
			User    *model.AdminUser `json:"user"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &wire); err != nil || wire.Data == nil {
		return zero, apiclient.NewDecodeError(`login body missing "data"`, err)
	}
	if wire.Data.Access == "" {
		return zero, apiclient.NewDecodeError("login body missing access token", nil)
	}
	result := LoginResult{
		AccessToken:  wire.Data.Access,
		RefreshToken: wire.Data.Refresh,
		Message:      resp.Message,
	}
	if wire.Data.User != nil {
		result.User = *wire.Data.User
	}
	return result, nil
}

// VerifyEmail confirms the OTP sent to a new operator's mailbox.
func (s *AuthService) VerifyEmail(ctx context.Context, email, otp string) *apiclient.Response {
	return s.api.Post(ctx, accountFamily+"verify-email/", map[string]string{
		"email": email,
		"otp":   otp,
	})
}

// ResendOTP requests a fresh code for the given purpose (signup or reset).
func (s *AuthService) ResendOTP(ctx context.Context, email, purpose string) *apiclient.Response {
	return s.api.Post(ctx, accountFamily+"resend-otp/", map[string]string{
		"email":   email,
		"purpose": purpose,
	})
}

// SetPassword completes first-time account setup after email verification.
func (s *AuthService) SetPassword(ctx context.Context, email, password, confirm string) *apiclient.Response {
	return s.api.Post(ctx, accountFamily+"set-password/", map[string]string{
		"email":     email,
		"password":  password,
		"password2": confirm,
	})
}

// ResetVerifyOTP validates the reset code before a new password is accepted.
func (s *AuthService) ResetVerifyOTP(ctx context.Context, email, otp string) *apiclient.Response {
	return s.api.Post(ctx, accountFamily+"password-reset/verify-otp/", map[string]string{
		"email": email,
		"otp":   otp,
	})
}

// ResetConfirm sets a new password using a verified reset code.
func (s *AuthService) ResetConfirm(ctx context.Context, email, otp, newPassword, confirm string) *apiclient.Response {
	return s.api.Post(ctx, accountFamily+"password-reset/confirm/", map[string]string{
		"email":         email,
		"otp":           otp,
		"new_password":  newPassword,
		"new_password2": confirm,
	})
}

// ChangePassword rotates the authenticated operator's password.
func (s *AuthService) ChangePassword(ctx context.Context, oldPassword, newPassword, confirm string) *apiclient.Response {
	return s.api.Post(ctx, accountFamily+"password-change/", map[string]string{
		"old_password":  oldPassword,
		"new_password":  newPassword,
		"new_password2": confirm,
	})
}
