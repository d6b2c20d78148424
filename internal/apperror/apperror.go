package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies every failure the stores and the signing orchestrator can
// return. Controllers map kinds to http status codes, clients branch on the
// kind rather than on message text.
type Kind string

const (
	// Bad input shape: empty name, malformed email, empty field value.
	KindValidation Kind = "validation"
	// Operation not permitted in the document's current status, e.g. a
	// structural field edit after the document has been sent.
	KindInvalidState Kind = "invalid_state"
	// A precondition is not satisfied yet: missing signers/fields on send,
	// incomplete required fields on finish.
	KindNotReady Kind = "not_ready"
	// Sequential signing is enabled and the acting signer is not the earliest
	// pending signer in the order.
	KindOutOfSequence Kind = "out_of_sequence"
	// Actor/field or actor/signer mismatch, including sign token mismatch.
	KindForbidden Kind = "forbidden"
	// Unknown document, field or signer id.
	KindNotFound Kind = "not_found"
)

type Error struct {
	Kind    Kind     `json:"kind"`
	Message string   `json:"message"`
	// Reasons carries stable precondition codes (see pkg/esign) so the UI can
	// tell the user exactly what is missing, not just that something is.
	Reasons []string `json:"reasons,omitempty"`
}

func (e *Error) Error() string {
	if len(e.Reasons) > 0 {
		return fmt.Sprintf("%s: %s %v", e.Kind, e.Message, e.Reasons)
	}

	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func New(kind Kind, message string, reasons ...string) *Error {
	return &Error{Kind: kind, Message: message, Reasons: reasons}
}

func Validation(message string) *Error {
	return New(KindValidation, message)
}

func InvalidState(message string) *Error {
	return New(KindInvalidState, message)
}

func NotReady(message string, reasons ...string) *Error {
	return New(KindNotReady, message, reasons...)
}

func OutOfSequence(message string) *Error {
	return New(KindOutOfSequence, message)
}

func Forbidden(message string) *Error {
	return New(KindForbidden, message)
}

func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

// KindOf returns the kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}

	return ""
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// HTTPStatus maps an error to the status code the API responds with. Unknown
// errors are treated as internal.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindInvalidState, KindOutOfSequence:
		return http.StatusConflict
	case KindNotReady:
		return http.StatusUnprocessableEntity
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
