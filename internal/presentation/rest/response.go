package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/model"
)

const (
	codeUnauthorized = "UNAUTHORIZED"
	codeRateLimited  = "RATE_LIMITED"
	codeInternal     = "INTERNAL"

	maxJSONBody = 1 << 20
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, Code: code})
}

// respondError maps a use-case error to its HTTP status. Anything that is
// not a client-facing domain error is logged and reported as a 500.
func respondError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	var de *model.DomainError
	if errors.As(err, &de) {
		switch de.Code {
		case model.ErrCodeValidation, model.ErrCodeTokenNotAssigned:
			writeError(w, http.StatusBadRequest, string(de.Code), de.Message)
			return
		case model.ErrCodeForbidden:
			writeError(w, http.StatusForbidden, string(de.Code), de.Message)
			return
		case model.ErrCodeNotFound:
			writeError(w, http.StatusNotFound, string(de.Code), de.Message)
			return
		case model.ErrCodeConflict:
			writeError(w, http.StatusConflict, string(de.Code), de.Message)
			return
		}
	}
	logger.Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	code := codeInternal
	if de != nil {
		code = string(de.Code)
	}
	writeError(w, http.StatusInternalServerError, code, "Server error")
}

// ---------------------------------------------------------------------------
// Request decoding
// ---------------------------------------------------------------------------

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeJSON reads a bounded JSON body into dst and validates its tags.
// The returned error is always a validation error.
func decodeJSON(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxJSONBody))
	if err != nil {
		return model.NewValidationError("Invalid request body")
	}
	if len(body) == 0 {
		return model.NewValidationError("Request body is empty")
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return model.NewValidationError("Invalid request body")
	}
	return validateStruct(dst)
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return model.NewValidationError("Invalid request body")
	}
	return model.NewValidationError("%s", fieldMessage(verrs[0]))
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
