// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"
	"unicode/utf8"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"estudio/internal/models"
)

// emailRegex mirrors the loose address pattern used by the client form:
// something, an @, something, a dot, something.
var emailRegex = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("project_status", validateProjectStatus)
		_ = v.RegisterValidation("display_id", validateDisplayID)
		_ = v.RegisterValidation("user_role", validateUserRole)
		_ = v.RegisterValidation("client_email", validateClientEmail)
	}
}

func validateProjectStatus(fl validator.FieldLevel) bool {
	return models.IsValidProjectStatus(models.ProjectStatus(fl.Field().String()))
}

func validateDisplayID(fl validator.FieldLevel) bool {
	return utf8.RuneCountInString(fl.Field().String()) == 3
}

func validateUserRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "admin", "member":
		return true
	}
	return false
}

// validateClientEmail accepts an empty value; the email field is optional.
func validateClientEmail(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	return emailRegex.MatchString(s)
}

// IsValidEmail reports whether s matches the basic address pattern.
// An empty string is not a valid address.
func IsValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}
