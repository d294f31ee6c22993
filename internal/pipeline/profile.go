/**
* Name: 			profile.go
* Description: 		프로필 수정 파이프라인 (낙관적 수정 + 실패 시 일괄 복원)
* Workflow: 		필드별 임시 값 -> 변경 확인 -> 형식 -> 중복 -> 수정 요청 -> 캐시 반영 또는 복원
 */
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"siack/internal/apperr"
	"siack/internal/models"
	"siack/internal/session"
	"siack/internal/validation"

	"go.uber.org/zap"
)

var ErrNotEditable = errors.New("field is not editable")

// ProfileAPI persists profile changes.
type ProfileAPI interface {
	ModifyProfile(ctx context.Context, token string, req models.ModifyRequest) (*models.APIResponse, error)
}

// binding pairs a field with its accessor and mutator on the cached profile.
type binding struct {
	field models.Field
	get   func(*models.UserProfile) string
	set   func(*models.UserProfile, string)
}

var bindings = map[models.Field]binding{
	models.FieldEmail: {
		field: models.FieldEmail,
		get:   func(p *models.UserProfile) string { return p.Email },
		set:   func(p *models.UserProfile, v string) { p.Email = v },
	},
	models.FieldNickname: {
		field: models.FieldNickname,
		get:   func(p *models.UserProfile) string { return p.Nickname },
		set:   func(p *models.UserProfile, v string) { p.Nickname = v },
	},
	models.FieldPhone: {
		field: models.FieldPhone,
		get:   func(p *models.UserProfile) string { return p.Phone },
		set:   func(p *models.UserProfile, v string) { p.Phone = v },
	},
}

// edit is one field change inside a submission.
type edit struct {
	binding
	from string
	to   string
}

type ProfileEditor struct {
	engine *validation.Engine
	api    ProfileAPI
	store  *session.Store
	notify Notifier
	log    *zap.Logger

	busy   inflight
	mu     sync.Mutex
	active models.Field
	drafts map[models.Field]string
}

func NewProfileEditor(engine *validation.Engine, api ProfileAPI, store *session.Store, notify Notifier, log *zap.Logger) *ProfileEditor {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProfileEditor{
		engine: engine,
		api:    api,
		store:  store,
		notify: notify,
		log:    log,
		drafts: make(map[models.Field]string),
	}
}

// Begin switches edit mode to field. Drafts already staged on other fields stay staged.
func (p *ProfileEditor) Begin(field models.Field) error {
	if _, ok := bindings[field]; !ok {
		return fmt.Errorf("%w: %s", ErrNotEditable, field)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.active = field
	return nil
}

// Active returns the field in edit mode, empty when none is.
func (p *ProfileEditor) Active() models.Field {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// SetDraft stages value for the field in edit mode.
func (p *ProfileEditor) SetDraft(value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active == "" {
		return errors.New("no field in edit mode")
	}
	p.drafts[p.active] = value
	return nil
}

// Value returns what the field currently shows: its draft if staged, else the committed value.
func (p *ProfileEditor) Value(field models.Field) string {
	p.mu.Lock()
	draft, ok := p.drafts[field]
	p.mu.Unlock()
	if ok {
		return draft
	}
	profile, _ := p.store.Profile()
	return profile.Value(field)
}

// Cancel drops every staged draft and leaves edit mode.
func (p *ProfileEditor) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.active = ""
	clear(p.drafts)
}

// Confirm submits every staged change as one batch.
// Any failure reverts all fields of the batch to their committed values.
func (p *ProfileEditor) Confirm(ctx context.Context) error {
	if !p.busy.acquire() {
		return apperr.ErrBusy
	}
	defer p.busy.release()

	// 요청 시점의 토큰으로 응답을 검증한다
	token := p.store.Token()
	profile, ok := p.store.Profile()
	if token == "" || !ok {
		return apperr.ErrNotLoggedIn
	}

	edits := p.collect(&profile)
	if len(edits) == 0 {
		p.notify.Notify("알림", apperr.MsgNoChanges)
		return apperr.ErrNoChanges
	}

	return p.attemptCommit(token, edits, func() error {
		if err := p.checkPatterns(edits); err != nil {
			return err
		}
		if err := p.checkDuplicates(ctx, edits); err != nil {
			return err
		}
		return p.submit(ctx, token, edits)
	})
}

// collect closes edit mode and returns the staged values that differ from the committed ones.
func (p *ProfileEditor) collect(profile *models.UserProfile) []edit {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.active = ""

	var edits []edit
	for _, field := range models.EditableFields {
		draft, ok := p.drafts[field]
		if !ok {
			continue
		}
		b := bindings[field]
		from := b.get(profile)
		to := strings.TrimSpace(draft)
		if to == from {
			delete(p.drafts, field)
			continue
		}
		edits = append(edits, edit{binding: b, from: from, to: to})
	}
	return edits
}

// attemptCommit runs attempt and either commits every edit into the session cache
// or reverts every edit to its committed value.
func (p *ProfileEditor) attemptCommit(token string, edits []edit, attempt func() error) error {
	err := attempt()

	// 요청 중에 다시 입력된 값은 남겨 둔다
	p.mu.Lock()
	for _, e := range edits {
		if draft, ok := p.drafts[e.field]; ok && strings.TrimSpace(draft) == e.to {
			delete(p.drafts, e.field)
		}
	}
	p.mu.Unlock()

	if err != nil {
		p.log.Info("profile edit reverted", zap.Int("fields", len(edits)), zap.Error(err))
		return err
	}

	err = p.store.CommitProfile(token, func(profile *models.UserProfile) {
		for _, e := range edits {
			e.set(profile, e.to)
		}
	})
	if err != nil {
		p.log.Warn("profile edit discarded", zap.Error(err))
		return err
	}
	p.notify.Notify("정보가 변경되었습니다.", apperr.MsgProfileUpdated)
	return nil
}

func (p *ProfileEditor) checkPatterns(edits []edit) error {
	for _, e := range edits {
		if e.to == "" {
			if validation.Optional(e.field) {
				continue
			}
			return p.reject(apperr.NewFieldError(e.field, apperr.EmptyField))
		}
		if !validation.MatchPattern(e.field, e.to) {
			return p.reject(apperr.NewFieldError(e.field, apperr.PatternMismatch))
		}
	}
	return nil
}

func (p *ProfileEditor) checkDuplicates(ctx context.Context, edits []edit) error {
	for _, e := range edits {
		if e.to == "" {
			continue
		}
		err := validation.OutcomeError(e.field, p.engine.CheckDuplicate(ctx, e.field, e.to))
		if err == nil {
			continue
		}
		var fe *apperr.FieldError
		if errors.As(err, &fe) {
			return p.reject(fe)
		}
		p.notify.Notify("서버 오류", apperr.MsgServerError)
		return err
	}
	return nil
}

func (p *ProfileEditor) submit(ctx context.Context, token string, edits []edit) error {
	var req models.ModifyRequest
	for _, e := range edits {
		req.Set(e.field, e.to)
	}

	resp, err := p.api.ModifyProfile(ctx, token, req)
	if err != nil {
		re := requestError(err, apperr.MsgServerError)
		p.notify.Notify("서버 오류", re.Message)
		return re
	}
	if resp.StatusCode != http.StatusOK {
		msg := resp.Message
		if msg == "" {
			msg = apperr.MsgUpdateFailed
		}
		p.notify.Notify("업데이트 실패", msg)
		return &apperr.RequestError{Kind: apperr.ServerRejected, Status: resp.StatusCode, Message: msg}
	}
	return nil
}

func (p *ProfileEditor) reject(fe *apperr.FieldError) error {
	p.notify.Notify("알림", fe.Message)
	return apperr.FieldErrors{fe}
}
