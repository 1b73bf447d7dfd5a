package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteParamID is the ID parameter pattern.
	RouteParamID = "/{id}"
	// RouteParamType is the setting type parameter pattern.
	RouteParamType = "/{type}"
	// RouteSuffixNew is the suffix for "new" routes.
	RouteSuffixNew = "/new"
	// RouteSuffixPending is the suffix for pending-only list routes.
	RouteSuffixPending = "/pending"

	// RouteLogin is the login route.
	RouteLogin = "/login"
	// RouteLogout is the logout route.
	RouteLogout = "/logout"
	// RouteVerifyOTP is the email verification route.
	RouteVerifyOTP = "/verify-otp"
	// RouteSetPassword is the first-login password route.
	RouteSetPassword = "/set-password"
	// RouteForgotPassword is the password reset request route.
	RouteForgotPassword = "/forgot-password"
	// RouteResetPassword is the password reset confirmation route.
	RouteResetPassword = "/reset-password"

	// RouteBanners is the banners admin route.
	RouteBanners = "/banners"
	// RoutePromotions is the promotions admin route.
	RoutePromotions = "/promotions"
	// RouteRegistrations is the registrations admin route.
	RouteRegistrations = "/registrations"
	// RouteWithdrawals is the withdrawals admin route.
	RouteWithdrawals = "/withdrawals"
	// RouteTickets is the support tickets admin route.
	RouteTickets = "/tickets"
	// RouteUsers is the managed users admin route.
	RouteUsers = "/users"
	// RouteFAQs is the FAQs admin route.
	RouteFAQs = "/faqs"
	// RouteSettings is the site settings admin route.
	RouteSettings = "/settings"
	// RouteNotifications is the notifications admin route.
	RouteNotifications = "/notifications"
	// RouteDesignations is the designations admin route.
	RouteDesignations = "/designations"
	// RouteProfile is the admin profile route.
	RouteProfile = "/profile"
	// RoutePasswordChange is the password change route.
	RoutePasswordChange = "/profile/password"

	// RouteBannersID is the banners ID route pattern.
	RouteBannersID = RouteBanners + RouteParamID
	// RoutePromotionsID is the promotions ID route pattern.
	RoutePromotionsID = RoutePromotions + RouteParamID
	// RouteRegistrationsID is the registrations ID route pattern.
	RouteRegistrationsID = RouteRegistrations + RouteParamID
	// RouteWithdrawalsID is the withdrawals ID route pattern.
	RouteWithdrawalsID = RouteWithdrawals + RouteParamID
	// RouteTicketsID is the tickets ID route pattern.
	RouteTicketsID = RouteTickets + RouteParamID
	// RouteUsersID is the users ID route pattern.
	RouteUsersID = RouteUsers + RouteParamID
	// RouteFAQsID is the FAQs ID route pattern.
	RouteFAQsID = RouteFAQs + RouteParamID
	// RouteSettingsType is the settings type route pattern.
	RouteSettingsType = RouteSettings + RouteParamType
	// RouteNotificationsID is the notifications ID route pattern.
	RouteNotificationsID = RouteNotifications + RouteParamID
	// RouteDesignationsID is the designations ID route pattern.
	RouteDesignationsID = RouteDesignations + RouteParamID
)

const (
	redirectAdmin              = "/admin"
	redirectAdminBanners       = redirectAdmin + RouteBanners
	redirectAdminPromotions    = redirectAdmin + RoutePromotions
	redirectAdminRegistrations = redirectAdmin + RouteRegistrations
	redirectAdminWithdrawals   = redirectAdmin + RouteWithdrawals
	redirectAdminTickets       = redirectAdmin + RouteTickets
	redirectAdminUsers         = redirectAdmin + RouteUsers
	redirectAdminFAQs          = redirectAdmin + RouteFAQs
	redirectAdminFAQsNew       = redirectAdminFAQs + RouteSuffixNew
	redirectAdminSettings      = redirectAdmin + RouteSettings
	redirectAdminNotifications = redirectAdmin + RouteNotifications
	redirectAdminDesignations  = redirectAdmin + RouteDesignations
	redirectAdminProfile       = redirectAdmin + RouteProfile
	redirectLogin              = RouteLogin
	redirectVerifyOTP          = RouteVerifyOTP
	redirectSetPassword        = RouteSetPassword
	redirectForgotPassword     = RouteForgotPassword
	redirectResetPassword      = RouteResetPassword

	redirectAdminBannersID     = redirectAdminBanners + "/%d"
	redirectAdminPromotionsID  = redirectAdminPromotions + "/%d"
	redirectAdminWithdrawalsID = redirectAdminWithdrawals + "/%d"
	redirectAdminTicketsID     = redirectAdminTickets + "/%d"
	redirectAdminUsersID       = redirectAdminUsers + "/%d"
)

// HeaderContentType is the Content-Type HTTP header name.
const HeaderContentType = "Content-Type"
