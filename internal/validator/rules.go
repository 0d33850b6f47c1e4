package validator

import (
	"log"

	"creatorhub_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules registers the domain tags; a failure here is a startup bug.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-signup-role", validateSignupRole)
	mustRegister("is-post-status", validatePostStatus)
	mustRegister("is-post-filter", validatePostFilterStatus)
}

// Empty values pass; 'required' handles them.

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.UserRole(value).IsValid()
}

func validateSignupRole(fl validator.FieldLevel) bool {
	switch models.UserRole(fl.Field().String()) {
	case "", models.UserRoleCreator, models.UserRoleBrand:
		return true
	}
	return false
}

func validatePostStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.PostStatus(value).IsValid()
}

func validatePostFilterStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "", "all", string(models.PostStatusDraft), string(models.PostStatusPublished):
		return true
	}
	return false
}
