/**
* Name: 			errors.go
* Description: 		클라이언트 오류 분류와 필드 단위 오류
* Workflow: 		검증/요청 실패를 Kind로 분류, 필드 오류는 폼에, 요청 오류는 알림으로 전달
 */
package apperr

import (
	"errors"
	"fmt"
	"strings"

	"siack/internal/models"
)

// Kind classifies a failure surfaced to the user.
type Kind int

const (
	EmptyField Kind = iota + 1
	PatternMismatch
	DuplicateValue
	ConfirmMismatch
	ServerRejected
	NetworkFailure
	SessionExpired
)

func (k Kind) String() string {
	switch k {
	case EmptyField:
		return "empty_field"
	case PatternMismatch:
		return "pattern_mismatch"
	case DuplicateValue:
		return "duplicate_value"
	case ConfirmMismatch:
		return "confirm_mismatch"
	case ServerRejected:
		return "server_rejected"
	case NetworkFailure:
		return "network_failure"
	case SessionExpired:
		return "session_expired"
	}
	return "unknown"
}

// Local reports whether the kind is resolved without a server round trip.
func (k Kind) Local() bool {
	return k == EmptyField || k == PatternMismatch || k == ConfirmMismatch
}

var (
	ErrSessionExpired = errors.New("session expired")
	ErrNotLoggedIn    = errors.New("not logged in")
	ErrBusy           = errors.New("request already in flight")
	ErrNoChanges      = errors.New("no changes")
	ErrStaleSession   = errors.New("session changed while request was in flight")
)

// 특정 입력 필드에 붙는 오류
type FieldError struct {
	Field   models.Field
	Kind    Kind
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FieldErrors is the set of field-scoped errors produced by one submission.
type FieldErrors []*FieldError

func (e FieldErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Error())
	}
	return strings.Join(msgs, "; ")
}

// Get returns the error attached to field, if any.
func (e FieldErrors) Get(field models.Field) (*FieldError, bool) {
	for _, fe := range e {
		if fe.Field == field {
			return fe, true
		}
	}
	return nil, false
}

// Has reports whether field carries an error.
func (e FieldErrors) Has(field models.Field) bool {
	_, ok := e.Get(field)
	return ok
}

// 폼 전체에 대한 요청 실패 (필드에 붙지 않음)
type RequestError struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (status %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// KindOf extracts the Kind carried by err, or 0 when err carries none.
func KindOf(err error) Kind {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	var fes FieldErrors
	if errors.As(err, &fes) && len(fes) > 0 {
		return fes[0].Kind
	}
	var re *RequestError
	if errors.As(err, &re) {
		return re.Kind
	}
	if errors.Is(err, ErrSessionExpired) {
		return SessionExpired
	}
	return 0
}
