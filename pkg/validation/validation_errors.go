package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-friendly labels
var FieldLabels = map[string]string{
	// Profile fields
	"FirstName":           "First name",
	"LastName":            "Last name",
	"Email":               "Email",
	"Phone":               "Phone number",
	"Location":            "Location",
	"OrganisationName":    "Organisation name",
	"OrganisationWebsite": "Organisation website",
	"OrganisationSize":    "Organisation size",
	"Industry":            "Industry",
	"JobTitle":            "Job title",
	"CompanyName":         "Company name",
	"LinkedInURL":         "LinkedIn URL",
	"CVURL":               "CV URL",
	"Headline":            "Headline",
	"Skills":              "Skills",

	// Session fields
	"Role":           "Role",
	"AvailableRoles": "Available roles",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a validation error, return generic message
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.StructField())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s: is required", label)

	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s: must have at least %s items", label, param)

	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s: must have at most %s items", label, param)

	case "oneof":
		return fmt.Sprintf("%s: must be one of: %s", label, strings.Join(strings.Fields(param), ", "))

	case "email":
		return fmt.Sprintf("%s: invalid email format", label)

	case "url":
		return fmt.Sprintf("%s: invalid URL format", label)

	case "valid_name":
		return fmt.Sprintf("%s: may only contain letters, digits, spaces and . ' - / & ( ) ,", label)

	case "valid_phone":
		return fmt.Sprintf("%s: invalid phone number (7-15 digits, optional +)", label)

	case "no_emoji":
		return fmt.Sprintf("%s: must not contain emoji or symbols", label)

	default:
		return fmt.Sprintf("%s: failed validation (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	// Dive errors carry an index suffix, e.g. Skills[2]
	base := fieldName
	if i := strings.IndexByte(base, '['); i > 0 {
		base = base[:i]
	}
	if label, ok := FieldLabels[base]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
