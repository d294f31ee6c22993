/**
* Name: 			engine.go
* Description: 		필드 검증 엔진 (형식 검사 + 서버 중복 확인)
* Workflow: 		빈 값 -> 형식 -> 중복 확인 순서, 다중 필드는 고정 순서로 첫 실패에서 중단
 */
package validation

import (
	"context"
	"net/http"

	"siack/internal/apperr"
	"siack/internal/models"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Outcome classifies a duplicate-check reply.
type Outcome int

const (
	Available Outcome = iota
	Taken
	InvalidFormat
	ServerFailure
)

func (o Outcome) String() string {
	switch o {
	case Available:
		return "available"
	case Taken:
		return "taken"
	case InvalidFormat:
		return "invalid_format"
	}
	return "server_failure"
}

// Result is the outcome of validating one field.
type Result int

const (
	Valid Result = iota
	Empty
	PatternMismatch
	Duplicate
	ServerError
)

func (r Result) String() string {
	switch r {
	case Valid:
		return "valid"
	case Empty:
		return "empty"
	case PatternMismatch:
		return "pattern_mismatch"
	case Duplicate:
		return "duplicate"
	}
	return "server_error"
}

// DuplicateChecker issues the server lookup; status 0 with an error means the request never completed.
type DuplicateChecker interface {
	CheckDuplicate(ctx context.Context, field models.Field, value string) (int, error)
}

type Engine struct {
	checker DuplicateChecker
	group   singleflight.Group
	log     *zap.Logger
}

func NewEngine(checker DuplicateChecker, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{checker: checker, log: log}
}

// Classify maps a check-endpoint status to an Outcome.
func Classify(status int) Outcome {
	switch status {
	case http.StatusOK:
		return Available
	case http.StatusConflict:
		return Taken
	case http.StatusBadRequest:
		return InvalidFormat
	}
	return ServerFailure
}

// CheckDuplicate asks the server whether value is free for field.
// Identical lookups running at the same time share one request; the shared request
// is detached from any single caller's cancellation and bounded by the client timeout.
// A caller whose own ctx ends first gets ServerFailure.
func (e *Engine) CheckDuplicate(ctx context.Context, field models.Field, value string) Outcome {
	key := string(field) + "\x00" + value
	shared := context.WithoutCancel(ctx)
	ch := e.group.DoChan(key, func() (any, error) {
		status, err := e.checker.CheckDuplicate(shared, field, value)
		if err != nil {
			e.log.Warn("duplicate check failed", zap.String("field", string(field)), zap.Error(err))
			return ServerFailure, nil
		}
		return Classify(status), nil
	})

	var outcome Outcome
	select {
	case res := <-ch:
		outcome = res.Val.(Outcome)
	case <-ctx.Done():
		e.log.Debug("duplicate check abandoned", zap.String("field", string(field)), zap.Error(ctx.Err()))
		return ServerFailure
	}
	e.log.Debug("duplicate check", zap.String("field", string(field)), zap.Stringer("outcome", outcome))
	return outcome
}

// Validate runs empty, pattern and duplicate checks on one field, stopping at the first failure.
// Optional fields accept an empty value without contacting the server.
func (e *Engine) Validate(ctx context.Context, field models.Field, value string) Result {
	if IsEmpty(value) {
		if Optional(field) {
			return Valid
		}
		return Empty
	}
	if !MatchPattern(field, value) {
		return PatternMismatch
	}
	switch e.CheckDuplicate(ctx, field, value) {
	case Available:
		return Valid
	case Taken:
		return Duplicate
	case InvalidFormat:
		return PatternMismatch
	}
	return ServerError
}

// Step is one entry of an ordered multi-field validation.
type Step struct {
	Field     models.Field
	Value     string
	Duplicate bool
	// Compare, when set, replaces the pattern check with an equality test.
	Compare *string
}

// Run evaluates steps in order and returns the first failure.
// Later steps are not evaluated once one fails.
func (e *Engine) Run(ctx context.Context, steps []Step) error {
	for _, s := range steps {
		if err := e.runStep(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) runStep(ctx context.Context, s Step) error {
	if IsEmpty(s.Value) {
		if Optional(s.Field) {
			return nil
		}
		return apperr.NewFieldError(s.Field, apperr.EmptyField)
	}
	if s.Compare != nil {
		if !ConfirmMatches(*s.Compare, s.Value) {
			return apperr.NewFieldError(s.Field, apperr.ConfirmMismatch)
		}
		return nil
	}
	if !MatchPattern(s.Field, s.Value) {
		return apperr.NewFieldError(s.Field, apperr.PatternMismatch)
	}
	if !s.Duplicate {
		return nil
	}
	return OutcomeError(s.Field, e.CheckDuplicate(ctx, s.Field, s.Value))
}

// OutcomeError converts a non-Available outcome into the error reported to the user.
// ServerFailure is not field-scoped; it becomes a top-level RequestError.
func OutcomeError(field models.Field, o Outcome) error {
	switch o {
	case Available:
		return nil
	case Taken:
		return apperr.NewFieldError(field, apperr.DuplicateValue)
	case InvalidFormat:
		return apperr.NewFieldError(field, apperr.PatternMismatch)
	}
	return &apperr.RequestError{Kind: apperr.ServerRejected, Message: apperr.MsgServerError}
}
