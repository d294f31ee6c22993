package validation

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"siack/internal/apperr"
	"siack/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChecker struct {
	mu      sync.Mutex
	calls   []models.Field
	status  map[models.Field]int
	err     error
	entered chan struct{}
	release chan struct{}
}

func (f *fakeChecker) CheckDuplicate(ctx context.Context, field models.Field, value string) (int, error) {
	f.mu.Lock()
	f.calls = append(f.calls, field)
	f.mu.Unlock()
	if f.entered != nil {
		f.entered <- struct{}{}
		<-f.release
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if f.err != nil {
		return 0, f.err
	}
	if s, ok := f.status[field]; ok {
		return s, nil
	}
	return http.StatusOK, nil
}

func (f *fakeChecker) called() []models.Field {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Field(nil), f.calls...)
}

func TestMatchPattern(t *testing.T) {
	tests := []struct {
		field models.Field
		value string
		want  bool
	}{
		{models.FieldUsername, "user01", true},
		{models.FieldUsername, "a_b@c9", true},
		{models.FieldUsername, "ab", false},
		{models.FieldUsername, "_user", false},
		{models.FieldUsername, "user_", false},
		{models.FieldUsername, "us__er", false},
		{models.FieldUsername, "us_@er", false},
		{models.FieldPassword, "password1", true},
		{models.FieldPassword, "Passw0rd!", true},
		{models.FieldPassword, "PASSWORD1", false},
		{models.FieldPassword, "password", false},
		{models.FieldPassword, "pass1", false},
		{models.FieldEmail, "a@b.co", true},
		{models.FieldEmail, "a@b", false},
		{models.FieldEmail, "a b@c.d", false},
		{models.FieldNickname, "길동_01", true},
		{models.FieldNickname, "a", false},
		{models.FieldNickname, "nick name", false},
		{models.FieldPhone, "010-1234-5678", true},
		{models.FieldPhone, "010-123-4567", true},
		{models.FieldPhone, "01012345678", false},
		{models.FieldConfirmPassword, "anything", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.field)+"/"+tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchPattern(tt.field, tt.value))
		})
	}
}

func TestClassify(t *testing.T) {
	assert.Equal(t, Available, Classify(http.StatusOK))
	assert.Equal(t, Taken, Classify(http.StatusConflict))
	assert.Equal(t, InvalidFormat, Classify(http.StatusBadRequest))
	assert.Equal(t, ServerFailure, Classify(http.StatusInternalServerError))
	assert.Equal(t, ServerFailure, Classify(0))
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("empty required field skips the server", func(t *testing.T) {
		c := &fakeChecker{}
		e := NewEngine(c, nil)
		assert.Equal(t, Empty, e.Validate(ctx, models.FieldEmail, "   "))
		assert.Empty(t, c.called())
	})

	t.Run("empty phone is valid without a lookup", func(t *testing.T) {
		c := &fakeChecker{}
		e := NewEngine(c, nil)
		assert.Equal(t, Valid, e.Validate(ctx, models.FieldPhone, ""))
		assert.Empty(t, c.called())
	})

	t.Run("pattern mismatch skips the server", func(t *testing.T) {
		c := &fakeChecker{}
		e := NewEngine(c, nil)
		assert.Equal(t, PatternMismatch, e.Validate(ctx, models.FieldEmail, "nope"))
		assert.Empty(t, c.called())
	})

	t.Run("conflict is duplicate", func(t *testing.T) {
		c := &fakeChecker{status: map[models.Field]int{models.FieldEmail: http.StatusConflict}}
		e := NewEngine(c, nil)
		assert.Equal(t, Duplicate, e.Validate(ctx, models.FieldEmail, "a@b.co"))
	})

	t.Run("transport error is server error", func(t *testing.T) {
		c := &fakeChecker{err: errors.New("connection refused")}
		e := NewEngine(c, nil)
		assert.Equal(t, ServerError, e.Validate(ctx, models.FieldEmail, "a@b.co"))
	})
}

func TestRun_StopsAtFirstFailure(t *testing.T) {
	c := &fakeChecker{status: map[models.Field]int{models.FieldUsername: http.StatusConflict}}
	e := NewEngine(c, nil)
	password := "password1"

	err := e.Run(context.Background(), []Step{
		{Field: models.FieldUsername, Value: "taken01", Duplicate: true},
		{Field: models.FieldPassword, Value: password},
		{Field: models.FieldConfirmPassword, Value: password, Compare: &password},
		{Field: models.FieldEmail, Value: "a@b.co", Duplicate: true},
	})

	var fe *apperr.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, models.FieldUsername, fe.Field)
	assert.Equal(t, apperr.DuplicateValue, fe.Kind)
	assert.Equal(t, []models.Field{models.FieldUsername}, c.called())
}

func TestRun_ConfirmMismatch(t *testing.T) {
	e := NewEngine(&fakeChecker{}, nil)
	password := "password1"

	err := e.Run(context.Background(), []Step{
		{Field: models.FieldPassword, Value: password},
		{Field: models.FieldConfirmPassword, Value: "password2", Compare: &password},
	})

	var fe *apperr.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, apperr.ConfirmMismatch, fe.Kind)
	assert.Equal(t, "비밀번호확인: 비밀번호가 일치하지 않습니다.", fe.Message)
}

func TestRun_ServerFailureIsRequestError(t *testing.T) {
	c := &fakeChecker{status: map[models.Field]int{models.FieldNickname: http.StatusInternalServerError}}
	e := NewEngine(c, nil)

	err := e.Run(context.Background(), []Step{{Field: models.FieldNickname, Value: "gildong", Duplicate: true}})

	var reqErr *apperr.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, apperr.MsgServerError, reqErr.Message)
}

func TestCheckDuplicate_SharesConcurrentLookups(t *testing.T) {
	c := &fakeChecker{entered: make(chan struct{}, 8), release: make(chan struct{})}
	e := NewEngine(c, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make([]Outcome, 5)
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0] = e.CheckDuplicate(ctx, models.FieldEmail, "a@b.co")
	}()
	<-c.entered

	for i := 1; i < len(results); i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = e.CheckDuplicate(ctx, models.FieldEmail, "a@b.co")
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(c.release)
	wg.Wait()

	assert.Len(t, c.called(), 1)
	for _, r := range results {
		assert.Equal(t, Available, r)
	}
}

func TestCheckDuplicate_CancelledCallerDoesNotFailOthers(t *testing.T) {
	c := &fakeChecker{entered: make(chan struct{}, 8), release: make(chan struct{})}
	e := NewEngine(c, nil)

	first, cancel := context.WithCancel(context.Background())
	firstDone := make(chan Outcome, 1)
	go func() { firstDone <- e.CheckDuplicate(first, models.FieldEmail, "a@b.co") }()
	<-c.entered

	secondDone := make(chan Outcome, 1)
	go func() { secondDone <- e.CheckDuplicate(context.Background(), models.FieldEmail, "a@b.co") }()
	time.Sleep(50 * time.Millisecond)

	cancel()
	assert.Equal(t, ServerFailure, <-firstDone)

	close(c.release)
	assert.Equal(t, Available, <-secondDone)
	assert.Len(t, c.called(), 1)
}
