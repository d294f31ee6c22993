package pipeline

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"siack/internal/client"
	"siack/internal/models"
	"siack/internal/session"
	"siack/internal/validation"

	"github.com/stretchr/testify/require"
)

// fakeAPI stands in for the REST client in every flow.
type fakeAPI struct {
	mu sync.Mutex

	checkStatus map[models.Field]int
	checkErr    error
	checks      []models.Field

	registerErr error
	registered  []models.RegisterRequest

	loginResp *models.LoginResponse
	loginErr  error
	logins    int

	profiles map[string]models.UserProfile

	modifyResp *models.APIResponse
	modifyErr  error
	modified   []models.ModifyRequest
	onModify   func()
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		checkStatus: map[models.Field]int{},
		profiles:    map[string]models.UserProfile{"abc": gildong()},
		loginResp: &models.LoginResponse{
			APIResponse: models.APIResponse{StatusCode: http.StatusOK},
			Token:       "abc",
			Username:    "gildong",
		},
		modifyResp: &models.APIResponse{StatusCode: http.StatusOK},
	}
}

func (f *fakeAPI) CheckDuplicate(ctx context.Context, field models.Field, value string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checks = append(f.checks, field)
	if f.checkErr != nil {
		return 0, f.checkErr
	}
	if s, ok := f.checkStatus[field]; ok {
		return s, nil
	}
	return http.StatusOK, nil
}

func (f *fakeAPI) Register(ctx context.Context, req models.RegisterRequest) (*models.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registered = append(f.registered, req)
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &models.APIResponse{StatusCode: http.StatusCreated}, nil
}

func (f *fakeAPI) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logins++
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginResp, nil
}

func (f *fakeAPI) FetchProfile(ctx context.Context, token string) (*models.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[token]
	if !ok {
		return nil, &client.StatusError{Status: http.StatusUnauthorized, Message: "Invalid token"}
	}
	return &p, nil
}

func (f *fakeAPI) ModifyProfile(ctx context.Context, token string, req models.ModifyRequest) (*models.APIResponse, error) {
	f.mu.Lock()
	f.modified = append(f.modified, req)
	hook := f.onModify
	resp, err := f.modifyResp, f.modifyErr
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	return resp, err
}

func (f *fakeAPI) checked() []models.Field {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Field(nil), f.checks...)
}

type notice struct {
	title   string
	message string
}

// screen records notifications and navigation.
type screen struct {
	mu      sync.Mutex
	notices []notice
	paths   []string
}

func (s *screen) Notify(title, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices = append(s.notices, notice{title, message})
}

func (s *screen) Navigate(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths = append(s.paths, path)
}

func gildong() models.UserProfile {
	return models.UserProfile{
		UserID:   7,
		Username: "gildong",
		Email:    "gd@example.com",
		Nickname: "홍길동",
		Phone:    "010-1234-5678",
		Role:     models.RoleMember,
	}
}

func newStore(api *fakeAPI, nav *screen) *session.Store {
	return session.NewStore(api, session.NewMemoryStorage(), nav)
}

func loggedInStore(t *testing.T, api *fakeAPI, nav *screen) *session.Store {
	t.Helper()
	store := newStore(api, nav)
	require.NoError(t, store.Login(context.Background(), "abc"))
	return store
}

func newEngine(api *fakeAPI) *validation.Engine {
	return validation.NewEngine(api, nil)
}

var errNetwork = errors.New("dial tcp: connection refused")
