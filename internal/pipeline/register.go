/**
* Name: 			register.go
* Description: 		회원가입 파이프라인
* Workflow: 		아이디 -> 비밀번호 -> 비밀번호확인 -> 이메일 -> 닉네임 -> 휴대전화 순서 검증, 통과 시 가입 요청 후 로그인 화면으로 이동
 */
package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"

	"siack/internal/apperr"
	"siack/internal/models"
	"siack/internal/validation"

	"go.uber.org/zap"
)

// RegistrationState is the position of the registration flow.
type RegistrationState int

const (
	Editing RegistrationState = iota
	Validating
	Submitting
	Succeeded
)

func (s RegistrationState) String() string {
	switch s {
	case Editing:
		return "editing"
	case Validating:
		return "validating"
	case Submitting:
		return "submitting"
	}
	return "succeeded"
}

// Registrar creates accounts on the server.
type Registrar interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.APIResponse, error)
}

type Registration struct {
	engine *validation.Engine
	api    Registrar
	nav    Navigator
	notify Notifier
	log    *zap.Logger

	busy    inflight
	mu      sync.Mutex
	state   RegistrationState
	failure error
}

func NewRegistration(engine *validation.Engine, api Registrar, nav Navigator, notify Notifier, log *zap.Logger) *Registration {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registration{engine: engine, api: api, nav: nav, notify: notify, log: log}
}

// State returns the current flow state.
func (r *Registration) State() RegistrationState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Failure returns the error of the last failed submission, nil after a success.
func (r *Registration) Failure() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failure
}

// Submit validates form in field order and creates the account.
// Field failures come back as apperr.FieldErrors; request failures as *apperr.RequestError.
// The form is never modified, so the caller can offer it again for editing.
func (r *Registration) Submit(ctx context.Context, form models.RegistrationForm) error {
	if !r.busy.acquire() {
		return apperr.ErrBusy
	}
	defer r.busy.release()

	form = trimIdentity(form)
	r.setState(Validating, nil)
	if err := r.engine.Run(ctx, registrationSteps(form)); err != nil {
		return r.fail(err)
	}

	r.setState(Submitting, nil)
	req := models.RegisterRequest{
		Username: form.Username,
		Password: form.Password,
		Email:    form.Email,
		Nickname: form.Nickname,
		Phone:    form.Phone,
	}
	if _, err := r.api.Register(ctx, req); err != nil {
		// 서버 응답이 앞선 중복 확인 결과보다 우선한다
		return r.fail(requestError(err, apperr.MsgServerError))
	}

	r.setState(Succeeded, nil)
	r.log.Info("account registered", zap.String("username", form.Username))
	r.notify.Notify("알림", apperr.MsgRegistered)
	r.nav.Navigate(PathLogin)
	return nil
}

func registrationSteps(form models.RegistrationForm) []validation.Step {
	password := form.Password
	return []validation.Step{
		{Field: models.FieldUsername, Value: form.Username, Duplicate: true},
		{Field: models.FieldPassword, Value: form.Password},
		{Field: models.FieldConfirmPassword, Value: form.ConfirmPassword, Compare: &password},
		{Field: models.FieldEmail, Value: form.Email, Duplicate: true},
		{Field: models.FieldNickname, Value: form.Nickname, Duplicate: true},
		{Field: models.FieldPhone, Value: form.Phone, Duplicate: true},
	}
}

// trimIdentity strips surrounding blanks from every field except the passwords,
// matching what the profile editor submits.
func trimIdentity(form models.RegistrationForm) models.RegistrationForm {
	form.Username = strings.TrimSpace(form.Username)
	form.Email = strings.TrimSpace(form.Email)
	form.Nickname = strings.TrimSpace(form.Nickname)
	form.Phone = strings.TrimSpace(form.Phone)
	return form
}

// fail records err, surfaces top-level failures and returns the flow to Editing.
func (r *Registration) fail(err error) error {
	var fe *apperr.FieldError
	if errors.As(err, &fe) {
		err = apperr.FieldErrors{fe}
		r.log.Debug("registration field rejected", zap.String("field", string(fe.Field)), zap.Stringer("kind", fe.Kind))
	} else {
		var re *apperr.RequestError
		if errors.As(err, &re) {
			r.notify.Notify("회원가입 실패", re.Message)
		}
		r.log.Warn("registration failed", zap.Error(err))
	}
	r.setState(Editing, err)
	return err
}

func (r *Registration) setState(s RegistrationState, failure error) {
	r.mu.Lock()
	r.state = s
	r.failure = failure
	r.mu.Unlock()
}
