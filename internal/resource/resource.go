// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package resource wraps the backend's endpoint families in typed services.
// Each service commits to one envelope shape per endpoint and decodes it
// explicitly; a body that does not match is surfaced as a decode error.
package resource

import (
	"fmt"

	"github.com/venuedesk/admin-go/internal/apiclient"
)

// Services bundles every resource wrapper over one shared client.
type Services struct {
	Auth          *AuthService
	Profile       *ProfileService
	Banners       *BannerService
	Promotions    *PromotionService
	Registrations *RegistrationService
	Withdrawals   *WithdrawalService
	Tickets       *TicketService
	Users         *UserService
	FAQs          *FAQService
	Settings      *SettingService
	Notifications *NotificationService
	Designations  *DesignationService
}

// NewServices wires all resource services to the shared client.
func NewServices(api *apiclient.Client) *Services {
	return &Services{
		Auth:          &AuthService{api: api},
		Profile:       &ProfileService{api: api},
		Banners:       &BannerService{api: api},
		Promotions:    &PromotionService{api: api},
		Registrations: &RegistrationService{api: api},
		Withdrawals:   &WithdrawalService{api: api},
		Tickets:       &TicketService{api: api},
		Users:         &UserService{api: api},
		FAQs:          &FAQService{api: api},
		Settings:      &SettingService{api: api},
		Notifications: &NotificationService{api: api},
		Designations:  &DesignationService{api: api},
	}
}

func itemPath(family string, id int64) string {
	return fmt.Sprintf("%s%d/", family, id)
}

func actionPath(family string, id int64, verb string) string {
	return fmt.Sprintf("%s%d/%s/", family, id, verb)
}
