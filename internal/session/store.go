/**
* Name: 			store.go
* Description: 		세션 저장소 (인증 토큰 + 사용자 프로필 캐시)
* Workflow: 		복원/로그인 시 토큰 저장 후 프로필 조회, 실패하면 로그아웃 상태로 전환
 */
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"siack/internal/apperr"
	"siack/internal/models"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

// DefaultTokenTTL is how long a persisted token survives when the token itself says nothing shorter.
const DefaultTokenTTL = time.Hour

// Navigator moves the front end to another page.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

// ProfileFetcher loads the profile bound to a token.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, token string) (*models.UserProfile, error)
}

// Snapshot is an immutable view of the session handed to observers.
type Snapshot struct {
	Token   string
	Profile *models.UserProfile
}

func (s Snapshot) LoggedIn() bool { return s.Token != "" }

type Store struct {
	mu        sync.RWMutex
	token     string
	profile   *models.UserProfile
	observers map[int]func(Snapshot)
	nextObs   int

	fetcher  ProfileFetcher
	storage  Storage
	nav      Navigator
	tokenTTL time.Duration
	now      func() time.Time
	log      *zap.Logger
}

type Option func(*Store)

func WithTokenTTL(d time.Duration) Option {
	return func(s *Store) { s.tokenTTL = d }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

func NewStore(fetcher ProfileFetcher, storage Storage, nav Navigator, opts ...Option) *Store {
	s := &Store{
		fetcher:   fetcher,
		storage:   storage,
		nav:       nav,
		observers: make(map[int]func(Snapshot)),
		tokenTTL:  DefaultTokenTTL,
		now:       time.Now,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Restore picks up a token persisted by an earlier run and loads its profile.
// A token the server no longer accepts is dropped and ErrSessionExpired returned.
func (s *Store) Restore(ctx context.Context) error {
	token, ok := s.storage.Get(KeyAuthToken)
	if !ok || token == "" {
		return nil
	}
	s.setToken(token)
	if err := s.loadProfile(ctx, token); err != nil {
		if errors.Is(err, apperr.ErrStaleSession) {
			return err
		}
		s.log.Info("persisted session rejected", zap.Error(err))
		return fmt.Errorf("%w: %v", apperr.ErrSessionExpired, err)
	}
	return nil
}

// Login persists token, makes it current and caches its profile.
// When the profile cannot be fetched the store ends logged out.
func (s *Store) Login(ctx context.Context, token string) error {
	if token == "" {
		return errors.New("empty token")
	}
	if err := s.storage.Set(KeyAuthToken, token, s.expiryFor(token)); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	s.setToken(token)
	if err := s.loadProfile(ctx, token); err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	s.log.Info("logged in", zap.String("username", s.currentUsername()))
	return nil
}

// Logout clears the persisted token, the token and the profile.
func (s *Store) Logout() {
	if err := s.storage.Remove(KeyAuthToken); err != nil {
		s.log.Warn("remove persisted token", zap.Error(err))
	}
	s.mu.Lock()
	changed := s.token != "" || s.profile != nil
	s.token = ""
	s.profile = nil
	s.mu.Unlock()
	if changed {
		s.publish()
	}
}

// Guard redirects when the persisted-session presence does not match the page requirement.
// It reports whether a redirect happened.
func (s *Store) Guard(requireLoggedIn bool, redirectPath string) bool {
	_, present := s.storage.Get(KeyAuthToken)
	if present == requireLoggedIn {
		return false
	}
	if s.nav != nil {
		s.nav.Navigate(redirectPath)
	}
	return true
}

// RoleLabel maps the profile role to its display label.
func (s *Store) RoleLabel() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return roleLabel(-1)
	}
	return roleLabel(s.profile.Role)
}

func roleLabel(role int) string {
	switch role {
	case models.RoleAdmin:
		return "관리자"
	case models.RoleMember:
		return "일반 회원"
	}
	return "알 수 없음"
}

// Token returns the current token, empty when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Profile returns a copy of the cached profile.
func (s *Store) Profile() (models.UserProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return models.UserProfile{}, false
	}
	return *s.profile, true
}

// Snapshot returns the current session view.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// CommitProfile applies mutate to the cached profile only while token is still the current session.
// Completions of requests issued under an older session are discarded.
func (s *Store) CommitProfile(token string, mutate func(*models.UserProfile)) error {
	s.mu.Lock()
	if token == "" || s.token != token {
		s.mu.Unlock()
		return apperr.ErrStaleSession
	}
	if s.profile == nil {
		s.mu.Unlock()
		return apperr.ErrNotLoggedIn
	}
	next := *s.profile
	mutate(&next)
	s.profile = &next
	s.mu.Unlock()
	s.publish()
	return nil
}

// Subscribe registers fn for every token or profile change and returns a cancel func.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

func (s *Store) setToken(token string) {
	s.mu.Lock()
	changed := s.token != token
	s.token = token
	if changed {
		s.profile = nil
	}
	s.mu.Unlock()
	if changed {
		s.publish()
	}
}

func (s *Store) loadProfile(ctx context.Context, token string) error {
	profile, err := s.fetcher.FetchProfile(ctx, token)
	if err != nil {
		s.dropIfCurrent(token)
		return err
	}

	s.mu.Lock()
	if s.token != token {
		s.mu.Unlock()
		return apperr.ErrStaleSession
	}
	p := *profile
	s.profile = &p
	s.mu.Unlock()
	s.publish()
	return nil
}

// dropIfCurrent logs out only when token is still the active one, so a newer login survives.
func (s *Store) dropIfCurrent(token string) {
	s.mu.RLock()
	current := s.token == token
	s.mu.RUnlock()
	if current {
		s.Logout()
	}
}

// expiryFor caps the configured TTL by the token's own exp claim when one is readable.
func (s *Store) expiryFor(token string) time.Time {
	expires := s.now().Add(s.tokenTTL)
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return expires
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(expires) {
		return claims.ExpiresAt.Time
	}
	return expires
}

func (s *Store) currentUsername() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return ""
	}
	return s.profile.Username
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{Token: s.token}
	if s.profile != nil {
		p := *s.profile
		snap.Profile = &p
	}
	return snap
}

func (s *Store) publish() {
	s.mu.RLock()
	snap := s.snapshotLocked()
	observers := make([]func(Snapshot), 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.mu.RUnlock()
	for _, fn := range observers {
		fn(snap)
	}
}
