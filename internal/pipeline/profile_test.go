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

func stage(t *testing.T, p *ProfileEditor, field models.Field, value string) {
	t.Helper()
	require.NoError(t, p.Begin(field))
	require.NoError(t, p.SetDraft(value))
}

func TestProfileEditor_NoChanges(t *testing.T) {
	api := newFakeAPI()
	scr := &screen{}
	store := loggedInStore(t, api, scr)
	p := NewProfileEditor(newEngine(api), api, store, scr, nil)

	stage(t, p, models.FieldEmail, " gd@example.com ")
	err := p.Confirm(context.Background())

	assert.ErrorIs(t, err, apperr.ErrNoChanges)
	assert.Empty(t, api.checked())
	assert.Empty(t, api.modified)
	assert.Equal(t, []notice{{"알림", apperr.MsgNoChanges}}, scr.notices)
	assert.Equal(t, models.Field(""), p.Active())
}

func TestProfileEditor_Success(t *testing.T) {
	api := newFakeAPI()
	scr := &screen{}
	store := loggedInStore(t, api, scr)
	p := NewProfileEditor(newEngine(api), api, store, scr, nil)

	stage(t, p, models.FieldEmail, "new@example.com")
	stage(t, p, models.FieldPhone, "")
	assert.Equal(t, "new@example.com", p.Value(models.FieldEmail))

	require.NoError(t, p.Confirm(context.Background()))

	// 빈 전화번호는 중복 확인 없이 삭제로 전송
	assert.Equal(t, []models.Field{models.FieldEmail}, api.checked())
	require.Len(t, api.modified, 1)
	req := api.modified[0]
	require.NotNil(t, req.Email)
	assert.Equal(t, "new@example.com", *req.Email)
	require.NotNil(t, req.Phone)
	assert.Equal(t, "", *req.Phone)
	assert.Nil(t, req.Nickname)

	profile, _ := store.Profile()
	assert.Equal(t, "new@example.com", profile.Email)
	assert.Equal(t, "", profile.Phone)
	assert.Equal(t, "홍길동", profile.Nickname)
	assert.Equal(t, []notice{{"정보가 변경되었습니다.", apperr.MsgProfileUpdated}}, scr.notices)
}

func TestProfileEditor_DuplicateEmailKeepsCommittedValue(t *testing.T) {
	api := newFakeAPI()
	api.checkStatus[models.FieldEmail] = http.StatusConflict
	scr := &screen{}
	store := loggedInStore(t, api, scr)
	p := NewProfileEditor(newEngine(api), api, store, scr, nil)

	stage(t, p, models.FieldEmail, "taken@example.com")
	err := p.Confirm(context.Background())

	var fields apperr.FieldErrors
	require.ErrorAs(t, err, &fields)
	fe, ok := fields.Get(models.FieldEmail)
	require.True(t, ok)
	assert.Equal(t, "이메일: 이미 사용중인 이메일입니다.", fe.Message)
	assert.Equal(t, []notice{{"알림", "이메일: 이미 사용중인 이메일입니다."}}, scr.notices)

	assert.Empty(t, api.modified)
	profile, _ := store.Profile()
	assert.Equal(t, "gd@example.com", profile.Email)
	assert.Equal(t, "gd@example.com", p.Value(models.FieldEmail))
}

func TestProfileEditor_PatternMismatch(t *testing.T) {
	api := newFakeAPI()
	scr := &screen{}
	store := loggedInStore(t, api, scr)
	p := NewProfileEditor(newEngine(api), api, store, scr, nil)

	stage(t, p, models.FieldNickname, "a")
	err := p.Confirm(context.Background())

	var fields apperr.FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.True(t, fields.Has(models.FieldNickname))
	assert.Empty(t, api.checked())
	assert.Empty(t, api.modified)
}

func TestProfileEditor_EmptyRequiredField(t *testing.T) {
	api := newFakeAPI()
	scr := &screen{}
	store := loggedInStore(t, api, scr)
	p := NewProfileEditor(newEngine(api), api, store, scr, nil)

	stage(t, p, models.FieldEmail, "  ")
	err := p.Confirm(context.Background())

	assert.Equal(t, apperr.EmptyField, apperr.KindOf(err))
	assert.Empty(t, api.modified)
}

func TestProfileEditor_BatchRollback(t *testing.T) {
	api := newFakeAPI()
	api.modifyErr = &client.StatusError{Status: http.StatusInternalServerError}
	scr := &screen{}
	store := loggedInStore(t, api, scr)
	p := NewProfileEditor(newEngine(api), api, store, scr, nil)

	stage(t, p, models.FieldEmail, "new@example.com")
	stage(t, p, models.FieldNickname, "새닉네임")
	err := p.Confirm(context.Background())

	var reqErr *apperr.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, []notice{{"서버 오류", apperr.MsgServerError}}, scr.notices)

	profile, _ := store.Profile()
	assert.Equal(t, "gd@example.com", profile.Email)
	assert.Equal(t, "홍길동", profile.Nickname)
	assert.Equal(t, "gd@example.com", p.Value(models.FieldEmail))
	assert.Equal(t, "홍길동", p.Value(models.FieldNickname))
}

func TestProfileEditor_ServerReportsFailureInBody(t *testing.T) {
	api := newFakeAPI()
	api.modifyResp = &models.APIResponse{StatusCode: http.StatusBadRequest}
	scr := &screen{}
	store := loggedInStore(t, api, scr)
	p := NewProfileEditor(newEngine(api), api, store, scr, nil)

	stage(t, p, models.FieldNickname, "새닉네임")
	err := p.Confirm(context.Background())

	require.Error(t, err)
	assert.Equal(t, []notice{{"업데이트 실패", apperr.MsgUpdateFailed}}, scr.notices)
	profile, _ := store.Profile()
	assert.Equal(t, "홍길동", profile.Nickname)
}

func TestProfileEditor_DuplicateCheckUnreachable(t *testing.T) {
	api := newFakeAPI()
	api.checkErr = errNetwork
	scr := &screen{}
	store := loggedInStore(t, api, scr)
	p := NewProfileEditor(newEngine(api), api, store, scr, nil)

	stage(t, p, models.FieldEmail, "new@example.com")
	err := p.Confirm(context.Background())

	var reqErr *apperr.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, []notice{{"서버 오류", apperr.MsgServerError}}, scr.notices)
	assert.Empty(t, api.modified)
}

func TestProfileEditor_DiscardsResultOfOldSession(t *testing.T) {
	api := newFakeAPI()
	other := gildong()
	other.Username = "other"
	other.Email = "other@example.com"
	api.profiles["xyz"] = other
	scr := &screen{}
	store := loggedInStore(t, api, scr)
	p := NewProfileEditor(newEngine(api), api, store, scr, nil)

	// 요청 도중 다른 계정으로 다시 로그인
	api.onModify = func() {
		require.NoError(t, store.Login(context.Background(), "xyz"))
	}

	stage(t, p, models.FieldEmail, "new@example.com")
	err := p.Confirm(context.Background())

	assert.ErrorIs(t, err, apperr.ErrStaleSession)
	profile, _ := store.Profile()
	assert.Equal(t, "other", profile.Username)
	assert.Equal(t, "other@example.com", profile.Email)
	assert.Empty(t, scr.notices)
}

func TestProfileEditor_RequiresSession(t *testing.T) {
	api := newFakeAPI()
	scr := &screen{}
	p := NewProfileEditor(newEngine(api), api, newStore(api, scr), scr, nil)

	stage(t, p, models.FieldEmail, "new@example.com")
	assert.ErrorIs(t, p.Confirm(context.Background()), apperr.ErrNotLoggedIn)
}

func TestProfileEditor_EditMode(t *testing.T) {
	api := newFakeAPI()
	scr := &screen{}
	store := loggedInStore(t, api, scr)
	p := NewProfileEditor(newEngine(api), api, store, scr, nil)

	assert.ErrorIs(t, p.Begin(models.FieldUsername), ErrNotEditable)
	assert.Error(t, p.SetDraft("x"))

	stage(t, p, models.FieldNickname, "새닉네임")
	assert.Equal(t, models.FieldNickname, p.Active())
	assert.Equal(t, "새닉네임", p.Value(models.FieldNickname))

	p.Cancel()
	assert.Equal(t, models.Field(""), p.Active())
	assert.Equal(t, "홍길동", p.Value(models.FieldNickname))
}

func TestProfileEditor_Busy(t *testing.T) {
	api := newFakeAPI()
	scr := &screen{}
	store := loggedInStore(t, api, scr)
	p := NewProfileEditor(newEngine(api), api, store, scr, nil)
	require.True(t, p.busy.acquire())

	stage(t, p, models.FieldEmail, "new@example.com")
	assert.ErrorIs(t, p.Confirm(context.Background()), apperr.ErrBusy)
	assert.Empty(t, api.modified)
}

func TestProfileEditor_KeepsDraftStagedDuringRequest(t *testing.T) {
	api := newFakeAPI()
	scr := &screen{}
	store := loggedInStore(t, api, scr)
	p := NewProfileEditor(newEngine(api), api, store, scr, nil)

	api.onModify = func() {
		require.NoError(t, p.Begin(models.FieldEmail))
		require.NoError(t, p.SetDraft("later@example.com"))
	}

	stage(t, p, models.FieldEmail, "new@example.com")
	stage(t, p, models.FieldNickname, "길동이")
	require.NoError(t, p.Confirm(context.Background()))

	profile, _ := store.Profile()
	assert.Equal(t, "new@example.com", profile.Email)
	assert.Equal(t, "later@example.com", p.Value(models.FieldEmail))
	assert.Equal(t, "길동이", p.Value(models.FieldNickname))

	// 남은 값은 다음 확인에서 제출된다
	api.onModify = nil
	require.NoError(t, p.Confirm(context.Background()))
	require.Len(t, api.modified, 2)
	req := api.modified[1]
	require.NotNil(t, req.Email)
	assert.Equal(t, "later@example.com", *req.Email)
	assert.Nil(t, req.Nickname)
	assert.Nil(t, req.Phone)
}
