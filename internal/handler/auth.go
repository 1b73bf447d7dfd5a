// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/mileusna/useragent"

	"github.com/venuedesk/admin-go/internal/apiclient"
	"github.com/venuedesk/admin-go/internal/middleware"
	"github.com/venuedesk/admin-go/internal/render"
	"github.com/venuedesk/admin-go/internal/store"
)

// AuthHandler handles authentication routes. Credentials are verified by the
// marketplace backend; this side only keeps the issued tokens in the session.
type AuthHandler struct {
	base
	loginProtection *middleware.LoginProtection
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(d Deps) *AuthHandler {
	return &AuthHandler{
		base:            newBase(d),
		loginProtection: d.LoginProtection,
	}
}

// LoginForm renders the login page. Already-authenticated admins go straight
// to the dashboard.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if h.sessions.SignedIn(r.Context()) {
		http.Redirect(w, r, redirectAdmin, http.StatusSeeOther)
		return
	}

	data := render.TemplateData{Title: "Sign in"}
	if err := h.renderer.Render(w, r, "auth/login", data); err != nil {
		logAndInternalError(w, "render login", "error", err)
	}
}

// Login handles the login form submission.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectLogin) {
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")
	remember := r.FormValue("remember") == "on"

	if email == "" || password == "" {
		flashError(w, r, h.renderer, redirectLogin, "Email and password are required")
		return
	}

	if h.loginProtection != nil {
		if locked, remaining := h.loginProtection.IsAccountLocked(email); locked {
			h.logAuth("Login attempt on locked account", email, r)
			flashError(w, r, h.renderer, redirectLogin, "Account temporarily locked, try again in "+formatDuration(remaining))
			return
		}
	}

	result, apiErr := h.services.Auth.Login(r.Context(), email, password)
	if apiErr != nil {
		h.logger.Debug("login rejected by backend", "email", email, "kind", apiErr.Kind.String())
		h.logAuth("Login failed", email, r)
		if h.loginProtection != nil {
			if locked, lockDuration := h.loginProtection.RecordFailedAttempt(email); locked {
				h.logAuth("Account locked due to failed attempts", email, r)
				flashError(w, r, h.renderer, redirectLogin, "Too many failed attempts, account locked for "+formatDuration(lockDuration))
				return
			}
		}
		msg := apiErr.Message
		if msg == "" || apiErr.Kind == apiclient.KindNetwork {
			msg = "Sign in failed, please try again"
		}
		flashError(w, r, h.renderer, redirectLogin, msg)
		return
	}

	if h.loginProtection != nil {
		h.loginProtection.RecordSuccessfulLogin(email)
	}

	// SignIn regenerates the session token before storing anything.
	if err := h.sessions.SignIn(r.Context(), result.AccessToken, result.RefreshToken, result.User, remember); err != nil {
		logAndInternalError(w, "session sign-in", "error", err)
		return
	}

	ua := useragent.Parse(r.UserAgent())
	h.logger.Info("admin signed in",
		"email", result.User.Email,
		"browser", ua.Name,
		"os", ua.OS,
		"ip", clientIP(r),
	)
	_ = h.events.Insert(r.Context(), store.Event{
		Level:       "info",
		Category:    store.EventCategoryAuth,
		Message:     "Admin signed in",
		ActorEmail:  result.User.Email,
		RequestPath: r.URL.Path,
	})

	flashSuccess(w, r, h.renderer, redirectAdmin, "Welcome back, "+result.User.DisplayName())
}

// Logout destroys the session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	email := ""
	if user, ok := h.sessions.User(r.Context()); ok {
		email = user.Email
	}

	if err := h.sessions.Clear(r.Context()); err != nil {
		h.logger.Error("session destroy error", "error", err)
	}

	if email != "" {
		_ = h.events.Insert(r.Context(), store.Event{
			Level:      "info",
			Category:   store.EventCategoryAuth,
			Message:    "Admin signed out",
			ActorEmail: email,
		})
	}
	h.logger.Info("admin signed out", "email", email)

	flashAndRedirect(w, r, h.renderer, redirectLogin, "You have been signed out", "info")
}

// VerifyOTPForm renders the email verification page.
func (h *AuthHandler) VerifyOTPForm(w http.ResponseWriter, r *http.Request) {
	data := render.TemplateData{Title: "Verify email", Data: r.URL.Query().Get("email")}
	if err := h.renderer.Render(w, r, "auth/verify_otp", data); err != nil {
		logAndInternalError(w, "render verify otp", "error", err)
	}
}

// VerifyOTP submits the one-time code from the verification email.
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectVerifyOTP) {
		return
	}
	email := r.FormValue("email")
	otp := r.FormValue("otp")
	if email == "" || otp == "" {
		flashError(w, r, h.renderer, redirectVerifyOTP, "Email and code are required")
		return
	}

	resp := h.services.Auth.VerifyEmail(r.Context(), email, otp)
	if !resp.Success {
		flashError(w, r, h.renderer, redirectVerifyOTP, failMessage(resp, "Verification failed"))
		return
	}
	flashSuccess(w, r, h.renderer, redirectSetPassword+"?email="+email, "Email verified, set your password")
}

// ResendOTP requests a fresh one-time code.
func (h *AuthHandler) ResendOTP(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectVerifyOTP) {
		return
	}
	email := r.FormValue("email")
	purpose := r.FormValue("purpose")
	if purpose == "" {
		purpose = "verification"
	}

	resp := h.services.Auth.ResendOTP(r.Context(), email, purpose)
	if !resp.Success {
		flashError(w, r, h.renderer, redirectVerifyOTP, failMessage(resp, "Could not resend the code"))
		return
	}
	flashSuccess(w, r, h.renderer, redirectVerifyOTP+"?email="+email, "A new code has been sent")
}

// SetPasswordForm renders the first-login password page.
func (h *AuthHandler) SetPasswordForm(w http.ResponseWriter, r *http.Request) {
	data := render.TemplateData{Title: "Set password", Data: r.URL.Query().Get("email")}
	if err := h.renderer.Render(w, r, "auth/set_password", data); err != nil {
		logAndInternalError(w, "render set password", "error", err)
	}
}

// SetPassword sets the initial password after email verification.
func (h *AuthHandler) SetPassword(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectSetPassword) {
		return
	}
	email := r.FormValue("email")
	password := r.FormValue("password")
	confirmation := r.FormValue("password2")

	if msg := ValidatePassword(password, confirmation); msg != "" {
		flashError(w, r, h.renderer, redirectSetPassword+"?email="+email, msg)
		return
	}

	resp := h.services.Auth.SetPassword(r.Context(), email, password, confirmation)
	if !resp.Success {
		flashError(w, r, h.renderer, redirectSetPassword+"?email="+email, failMessage(resp, "Could not set password"))
		return
	}
	flashSuccess(w, r, h.renderer, redirectLogin, "Password set, you can sign in now")
}

// ForgotPasswordForm renders the reset request page.
func (h *AuthHandler) ForgotPasswordForm(w http.ResponseWriter, r *http.Request) {
	data := render.TemplateData{Title: "Forgot password"}
	if err := h.renderer.Render(w, r, "auth/forgot_password", data); err != nil {
		logAndInternalError(w, "render forgot password", "error", err)
	}
}

// ForgotPassword sends a reset code to the given address. The response is the
// same whether or not the account exists.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectForgotPassword) {
		return
	}
	email := r.FormValue("email")
	if msg := ValidateEmail(email); msg != "" {
		flashError(w, r, h.renderer, redirectForgotPassword, msg)
		return
	}

	_ = h.services.Auth.ResendOTP(r.Context(), email, "password_reset")
	flashSuccess(w, r, h.renderer, redirectResetPassword+"?email="+email, "If the account exists, a reset code has been sent")
}

// ResetPasswordForm renders the reset confirmation page.
func (h *AuthHandler) ResetPasswordForm(w http.ResponseWriter, r *http.Request) {
	data := render.TemplateData{Title: "Reset password", Data: r.URL.Query().Get("email")}
	if err := h.renderer.Render(w, r, "auth/reset_password", data); err != nil {
		logAndInternalError(w, "render reset password", "error", err)
	}
}

// ResetPassword verifies the reset code and sets the new password.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectResetPassword) {
		return
	}
	email := r.FormValue("email")
	otp := r.FormValue("otp")
	password := r.FormValue("password")
	confirmation := r.FormValue("password2")

	redirect := redirectResetPassword + "?email=" + email
	if msg := ValidatePassword(password, confirmation); msg != "" {
		flashError(w, r, h.renderer, redirect, msg)
		return
	}

	if resp := h.services.Auth.ResetVerifyOTP(r.Context(), email, otp); !resp.Success {
		flashError(w, r, h.renderer, redirect, failMessage(resp, "Invalid or expired code"))
		return
	}
	if resp := h.services.Auth.ResetConfirm(r.Context(), email, otp, password, confirmation); !resp.Success {
		flashError(w, r, h.renderer, redirect, failMessage(resp, "Could not reset password"))
		return
	}

	_ = h.events.Insert(r.Context(), store.Event{
		Level:      "info",
		Category:   store.EventCategoryAuth,
		Message:    "Password reset completed",
		ActorEmail: email,
	})
	flashSuccess(w, r, h.renderer, redirectLogin, "Password reset, you can sign in now")
}

func (h *AuthHandler) logAuth(message, email string, r *http.Request) {
	_ = h.events.Insert(r.Context(), store.Event{
		Level:       "warning",
		Category:    store.EventCategoryAuth,
		Message:     message,
		ActorEmail:  email,
		RequestPath: r.URL.Path,
		Metadata:    map[string]any{"ip": clientIP(r)},
	})
}
