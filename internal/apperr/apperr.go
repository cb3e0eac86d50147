package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Error is an operational error: expected, classified, and safe to show to
// the caller. Anything that reaches the renderer without being an *Error is
// treated as unknown and suppressed outside development/test.
type Error struct {
	Message     string
	StatusCode  int
	Status      string // "fail" for 4xx, "error" otherwise
	Operational bool
	Err         error // underlying cause, surfaced only in dev/test responses
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds an operational error with the status label derived from the
// status code the same way the response envelope expects it.
func New(message string, statusCode int) *Error {
	status := "error"
	if statusCode >= 400 && statusCode < 500 {
		status = "fail"
	}
	return &Error{
		Message:     message,
		StatusCode:  statusCode,
		Status:      status,
		Operational: true,
	}
}

// Classify funnels any failure into an *Error. Known shapes (validation
// failures, unique violations, missing records) become operational errors
// with their canonical messages; everything else is an unknown 500.
func Classify(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := New(validationMessage(verrs), http.StatusBadRequest)
		out.Err = err
		return out
	}

	if field, ok := duplicateKeyField(err); ok {
		out := New("Duplicate field value: "+field, http.StatusConflict)
		out.Err = err
		return out
	}

	// Handlers map their own not-found cases to specific messages before
	// this point; this catches record misses on internal re-reads.
	if errors.Is(err, gorm.ErrRecordNotFound) {
		out := New("Resource not found", http.StatusNotFound)
		out.Err = err
		return out
	}

	return &Error{
		Message:     err.Error(),
		StatusCode:  http.StatusInternalServerError,
		Status:      "error",
		Operational: false,
		Err:         err,
	}
}

// validationMessage renders binding failures with one message per violated
// rule, matching the wording clients already depend on.
func validationMessage(verrs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return strings.Join(msgs, ", ")
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	if field == "Body" {
		field = "Body content"
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return "Email is not valid"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
	case "oneof":
		if field == "Type" {
			field = "Interaction type"
		}
		values := strings.Join(strings.Fields(fe.Param()), ", ")
		return fmt.Sprintf("%s must be one of these values (%s)", field, values)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// duplicateKeyField reports whether err is a unique-constraint violation and
// names the offending field. Postgres is the production store; the sqlite
// branch covers the test database.
func duplicateKeyField(err error) (string, bool) {
	if err == nil {
		return "", false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		// Constraint names look like idx_users_email.
		name := pgErr.ConstraintName
		if i := strings.LastIndex(name, "_"); i >= 0 && i+1 < len(name) {
			return name[i+1:], true
		}
		return name, true
	}

	// sqlite: "UNIQUE constraint failed: users.email"
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") {
		if i := strings.LastIndex(msg, "."); i >= 0 && i+1 < len(msg) {
			return msg[i+1:], true
		}
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return "value", true
	}
	return "", false
}
