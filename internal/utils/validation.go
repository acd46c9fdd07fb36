package utils

import (
	"fmt"
	"strings"

	"github.com/prefeitura-rio/bot-massagistas/internal/models"
)

// ValidationError represents a validation error with field and message
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult represents the result of validation
type ValidationResult struct {
	IsValid bool              `json:"is_valid"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

// NewValidationResult creates a new validation result
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		IsValid: true,
		Errors:  []ValidationError{},
	}
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.IsValid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// Fields returns the names of the fields that failed, in the order they were reported
func (vr *ValidationResult) Fields() []string {
	fields := make([]string, 0, len(vr.Errors))
	for _, e := range vr.Errors {
		fields = append(fields, e.Field)
	}
	return fields
}

// ValidateDirectoryEntry checks that every mandatory directory field is
// non-empty after trimming. All missing fields are reported, in schema order.
// Values are not checked any further: "Sim"/"Não" answers stay free text.
func ValidateDirectoryEntry(entry models.DirectoryEntry) *ValidationResult {
	result := NewValidationResult()

	for _, field := range models.DirectorySchema {
		if !field.Mandatory {
			continue
		}
		if strings.TrimSpace(field.Value(&entry)) == "" {
			result.AddError(field.Key, fmt.Sprintf("%s is required", field.Key))
		}
	}

	return result
}
