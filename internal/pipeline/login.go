/**
* Name: 			login.go
* Description: 		로그인 파이프라인
* Workflow: 		형식 검사 -> 아이디 저장 여부 반영 -> 로그인 요청 -> 세션 생성 -> 홈으로 이동
 */
package pipeline

import (
	"context"
	"net/http"
	"time"

	"siack/internal/apperr"
	"siack/internal/client"
	"siack/internal/models"
	"siack/internal/session"
	"siack/internal/validation"

	"go.uber.org/zap"
)

// Authenticator exchanges credentials for a token.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*models.LoginResponse, error)
}

type Login struct {
	api    Authenticator
	store  *session.Store
	prefs  session.Storage
	nav    Navigator
	notify Notifier
	log    *zap.Logger
	busy   inflight
}

func NewLogin(api Authenticator, store *session.Store, prefs session.Storage, nav Navigator, notify Notifier, log *zap.Logger) *Login {
	if log == nil {
		log = zap.NewNop()
	}
	return &Login{api: api, store: store, prefs: prefs, nav: nav, notify: notify, log: log}
}

// Prefill returns the remembered username and whether the remember toggle starts enabled.
func (l *Login) Prefill() (string, bool) {
	username, ok := l.prefs.Get(session.KeySavedUsername)
	if !ok || username == "" {
		return "", false
	}
	return username, true
}

// Submit logs in with form. Rejected credentials mark both fields with the same error.
func (l *Login) Submit(ctx context.Context, form models.LoginForm) error {
	if !l.busy.acquire() {
		return apperr.ErrBusy
	}
	defer l.busy.release()

	if errs := checkCredentials(form); len(errs) > 0 {
		return errs
	}

	if form.Remember {
		if err := l.prefs.Set(session.KeySavedUsername, form.Username, time.Time{}); err != nil {
			l.log.Warn("remember username", zap.Error(err))
		}
	} else if err := l.prefs.Remove(session.KeySavedUsername); err != nil {
		l.log.Warn("forget username", zap.Error(err))
	}

	resp, err := l.api.Login(ctx, form.Username, form.Password)
	if err != nil {
		switch client.StatusOf(err) {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusNotFound:
			l.log.Info("login rejected", zap.String("username", form.Username))
			return invalidCredentials()
		}
		re := requestError(err, apperr.MsgServerError)
		l.notify.Notify("서버 오류", re.Message)
		return re
	}

	if err := l.store.Login(ctx, resp.Token); err != nil {
		l.log.Warn("session not established", zap.Error(err))
		re := requestError(err, apperr.MsgServerError)
		l.notify.Notify("로그인 실패", re.Message)
		return re
	}
	l.nav.Navigate(PathHome)
	return nil
}

func checkCredentials(form models.LoginForm) apperr.FieldErrors {
	var errs apperr.FieldErrors
	for _, f := range []struct {
		field models.Field
		value string
	}{
		{models.FieldUsername, form.Username},
		{models.FieldPassword, form.Password},
	} {
		switch {
		case validation.IsEmpty(f.value):
			errs = append(errs, apperr.NewFieldError(f.field, apperr.EmptyField))
		case !validation.MatchPattern(f.field, f.value):
			errs = append(errs, apperr.NewFieldError(f.field, apperr.PatternMismatch))
		}
	}
	return errs
}

// invalidCredentials does not reveal which of the two fields was wrong.
func invalidCredentials() apperr.FieldErrors {
	return apperr.FieldErrors{
		{Field: models.FieldUsername, Kind: apperr.ServerRejected, Message: apperr.MsgInvalidCredentials},
		{Field: models.FieldPassword, Kind: apperr.ServerRejected, Message: apperr.MsgInvalidCredentials},
	}
}
