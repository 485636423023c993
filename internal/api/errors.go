package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/lunarhall/taskdeck-api/internal/api/shared"
	"github.com/lunarhall/taskdeck-api/internal/domain"
	"github.com/lunarhall/taskdeck-api/internal/service"
	"github.com/lunarhall/taskdeck-api/internal/store"
)

// invalidRequestMessage is the top-level message of every 400 response.
const invalidRequestMessage = "Error: Invalid Request"

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrTaskNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidTaskStatus),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// RespondWithValidationIssues writes the standard 400 envelope with the
// given itemized field issues.
func RespondWithValidationIssues(w http.ResponseWriter, r *http.Request, issues []ValidationIssue) {
	shared.RespondWithJSON(w, r, http.StatusBadRequest, ValidationErrorResponse{
		Message: invalidRequestMessage,
		Error:   issues,
	})
}

// IssuesFromValidationError converts a validator error into itemized
// field issues. Non-validator errors yield a single generic issue so
// the 400 envelope shape stays consistent.
func IssuesFromValidationError(err error) []ValidationIssue {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []ValidationIssue{{
			Field:   "body",
			Rule:    "invalid",
			Message: "Request body is invalid",
		}}
	}

	issues := make([]ValidationIssue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, ValidationIssue{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: validationMessage(fe),
		})
	}
	return issues
}

// validationMessage maps a field error to a human-readable message.
func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s cannot be empty", fe.Field())
	case "max":
		return fmt.Sprintf("%s too long", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
