package auth

import "creatorhub_backend/internal/models"

// Destination is a client-side route the frontend navigates to after auth.
type Destination string

const (
	DestinationNone                 Destination = ""
	DestinationLogin                Destination = "/auth/login"
	DestinationCreatorDashboard     Destination = "/creator/dashboard"
	DestinationBrandDashboard       Destination = "/brand/dashboard"
	DestinationCreatorCreateProfile Destination = "/creator/create-profile"
	DestinationBrandCreateProfile   Destination = "/brand/create-profile"
)

// LoginDestination routes a freshly signed-in user by profile role.
// Roles other than creator and brand get no destination.
func LoginDestination(role models.UserRole) (Destination, bool) {
	switch role {
	case models.UserRoleCreator:
		return DestinationCreatorDashboard, true
	case models.UserRoleBrand:
		return DestinationBrandDashboard, true
	default:
		return DestinationNone, false
	}
}

// SignupDestination is the profile form a new account is sent to.
func SignupDestination(role models.UserRole) Destination {
	if role == models.UserRoleBrand {
		return DestinationBrandCreateProfile
	}
	return DestinationCreatorCreateProfile
}

// CallbackDestination routes the return from an email link or OAuth provider.
// It never touches storage: the caller passes what it already loaded.
func CallbackDestination(authenticated bool, profile *models.Profile, brand *models.Brand, lookupErr error) Destination {
	if !authenticated || lookupErr != nil || profile == nil {
		return DestinationLogin
	}

	if profile.Role == models.UserRoleBrand {
		if !brand.IsComplete() {
			return DestinationBrandCreateProfile
		}
		return DestinationBrandDashboard
	}

	if !profile.IsComplete() {
		return DestinationCreatorCreateProfile
	}
	return DestinationCreatorDashboard
}
