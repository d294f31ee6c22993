package pipeline

import (
	"context"
	"net/http"
	"testing"

	"siack/internal/apperr"
	"siack/internal/client"
	"siack/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() models.RegistrationForm {
	return models.RegistrationForm{
		Username:        "newuser",
		Password:        "password1",
		ConfirmPassword: "password1",
		Email:           "new@example.com",
		Nickname:        "새사용자",
		Phone:           " 010-9876-5432 ",
	}
}

func TestRegistration_Success(t *testing.T) {
	api := newFakeAPI()
	scr := &screen{}
	reg := NewRegistration(newEngine(api), api, scr, scr, nil)

	require.NoError(t, reg.Submit(context.Background(), validForm()))

	assert.Equal(t, Succeeded, reg.State())
	assert.NoError(t, reg.Failure())
	assert.Equal(t, []models.Field{models.FieldUsername, models.FieldEmail, models.FieldNickname, models.FieldPhone}, api.checked())
	require.Len(t, api.registered, 1)
	assert.Equal(t, "010-9876-5432", api.registered[0].Phone)
	assert.Equal(t, []notice{{"알림", apperr.MsgRegistered}}, scr.notices)
	assert.Equal(t, []string{PathLogin}, scr.paths)
}

func TestRegistration_TrimsIdentityFields(t *testing.T) {
	api := newFakeAPI()
	scr := &screen{}
	reg := NewRegistration(newEngine(api), api, scr, scr, nil)

	form := validForm()
	form.Username = "  newuser "
	form.Email = " new@example.com\t"
	form.Nickname = " 새사용자 "
	require.NoError(t, reg.Submit(context.Background(), form))

	require.Len(t, api.registered, 1)
	got := api.registered[0]
	assert.Equal(t, "newuser", got.Username)
	assert.Equal(t, "new@example.com", got.Email)
	assert.Equal(t, "새사용자", got.Nickname)
	assert.Equal(t, "password1", got.Password)
}

func TestRegistration_StopsAtTakenUsername(t *testing.T) {
	api := newFakeAPI()
	api.checkStatus[models.FieldUsername] = http.StatusConflict
	scr := &screen{}
	reg := NewRegistration(newEngine(api), api, scr, scr, nil)

	err := reg.Submit(context.Background(), validForm())

	var fields apperr.FieldErrors
	require.ErrorAs(t, err, &fields)
	fe, ok := fields.Get(models.FieldUsername)
	require.True(t, ok)
	assert.Equal(t, apperr.DuplicateValue, fe.Kind)
	assert.Equal(t, "아이디: 이미 사용중인 아이디입니다.", fe.Message)

	// 이후 필드는 검사하지 않는다
	assert.Equal(t, []models.Field{models.FieldUsername}, api.checked())
	assert.Empty(t, api.registered)
	assert.Empty(t, scr.paths)
	assert.Equal(t, Editing, reg.State())
	assert.Equal(t, err, reg.Failure())
}

func TestRegistration_FieldOrder(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*models.RegistrationForm)
		field models.Field
		kind  apperr.Kind
	}{
		{"empty username", func(f *models.RegistrationForm) { f.Username = " " }, models.FieldUsername, apperr.EmptyField},
		{"weak password", func(f *models.RegistrationForm) { f.Password, f.ConfirmPassword = "password", "password" }, models.FieldPassword, apperr.PatternMismatch},
		{"confirm mismatch", func(f *models.RegistrationForm) { f.ConfirmPassword = "password2" }, models.FieldConfirmPassword, apperr.ConfirmMismatch},
		{"bad email", func(f *models.RegistrationForm) { f.Email = "new@" }, models.FieldEmail, apperr.PatternMismatch},
		{"empty nickname", func(f *models.RegistrationForm) { f.Nickname = "" }, models.FieldNickname, apperr.EmptyField},
		{"bad phone", func(f *models.RegistrationForm) { f.Phone = "01098765432" }, models.FieldPhone, apperr.PatternMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI()
			scr := &screen{}
			reg := NewRegistration(newEngine(api), api, scr, scr, nil)
			form := validForm()
			tt.edit(&form)

			err := reg.Submit(context.Background(), form)

			var fields apperr.FieldErrors
			require.ErrorAs(t, err, &fields)
			require.Len(t, fields, 1)
			assert.Equal(t, tt.field, fields[0].Field)
			assert.Equal(t, tt.kind, fields[0].Kind)
			assert.Empty(t, api.registered)
		})
	}
}

func TestRegistration_EmptyPhoneSkipsLookup(t *testing.T) {
	api := newFakeAPI()
	scr := &screen{}
	reg := NewRegistration(newEngine(api), api, scr, scr, nil)
	form := validForm()
	form.Phone = ""

	require.NoError(t, reg.Submit(context.Background(), form))
	assert.NotContains(t, api.checked(), models.FieldPhone)
}

func TestRegistration_ServerRejects(t *testing.T) {
	api := newFakeAPI()
	api.registerErr = &client.StatusError{Status: http.StatusConflict, Message: "이미 사용 중인 이메일입니다."}
	scr := &screen{}
	reg := NewRegistration(newEngine(api), api, scr, scr, nil)

	err := reg.Submit(context.Background(), validForm())

	var reqErr *apperr.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, apperr.ServerRejected, reqErr.Kind)
	assert.Equal(t, http.StatusConflict, reqErr.Status)
	assert.Equal(t, []notice{{"회원가입 실패", "이미 사용 중인 이메일입니다."}}, scr.notices)
	assert.Equal(t, Editing, reg.State())
}

func TestRegistration_CheckUnreachable(t *testing.T) {
	api := newFakeAPI()
	api.checkErr = errNetwork
	scr := &screen{}
	reg := NewRegistration(newEngine(api), api, scr, scr, nil)

	err := reg.Submit(context.Background(), validForm())

	var reqErr *apperr.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, []notice{{"회원가입 실패", apperr.MsgServerError}}, scr.notices)
	assert.Empty(t, api.registered)
}

func TestRegistration_Busy(t *testing.T) {
	api := newFakeAPI()
	scr := &screen{}
	reg := NewRegistration(newEngine(api), api, scr, scr, nil)
	require.True(t, reg.busy.acquire())

	assert.ErrorIs(t, reg.Submit(context.Background(), validForm()), apperr.ErrBusy)
	assert.Empty(t, api.checked())
}
