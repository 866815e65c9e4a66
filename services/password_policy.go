package services

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Password requirements
const (
	MinPasswordLength = 12
	MaxPasswordLength = 72 // bcrypt ignores anything longer
)

var passwordRules = []validation.Rule{
	validation.Required.Error("password is required"),
	validation.RuneLength(MinPasswordLength, MaxPasswordLength).Error("password must be between 12 and 72 characters long"),
	validation.Match(regexp.MustCompile(`\p{Lu}`)).Error("password must contain at least one uppercase letter"),
	validation.Match(regexp.MustCompile(`\p{Ll}`)).Error("password must contain at least one lowercase letter"),
	validation.Match(regexp.MustCompile(`\p{N}`)).Error("password must contain at least one number"),
	validation.Match(regexp.MustCompile(`[\p{P}\p{S}]`)).Error("password must contain at least one special character"),
}

// ValidatePassword checks the password complexity rules: 12 to 72
// characters with upper and lower case letters, a number and a symbol
func ValidatePassword(password string) error {
	return validation.Validate(password, passwordRules...)
}
