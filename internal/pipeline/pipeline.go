// Package pipeline holds the registration, login and profile-edit flows.
// Each flow receives its navigation and notification capabilities explicitly.
package pipeline

import (
	"errors"
	"sync/atomic"

	"siack/internal/apperr"
	"siack/internal/client"
	"siack/internal/session"
)

// 페이지 경로
const (
	PathHome    = "/"
	PathLogin   = "/login"
	PathJoin    = "/join"
	PathProfile = "/profile"
)

// Notifier shows a modal-style message to the user.
type Notifier interface {
	Notify(title, message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(title, message string)

func (f NotifierFunc) Notify(title, message string) { f(title, message) }

// Navigator is the navigation capability shared with the session store.
type Navigator = session.Navigator

// inflight rejects a second submission while one is outstanding.
type inflight struct {
	busy atomic.Bool
}

func (f *inflight) acquire() bool { return f.busy.CompareAndSwap(false, true) }

func (f *inflight) release() { f.busy.Store(false) }

// requestError classifies a failed API call as a top-level error.
func requestError(err error, fallback string) *apperr.RequestError {
	var re *apperr.RequestError
	if errors.As(err, &re) {
		return re
	}
	status := client.StatusOf(err)
	if status == 0 {
		return &apperr.RequestError{Kind: apperr.NetworkFailure, Message: fallback, Err: err}
	}
	msg := fallback
	var se *client.StatusError
	if errors.As(err, &se) && se.Message != "" {
		msg = se.Message
	}
	return &apperr.RequestError{Kind: apperr.ServerRejected, Status: status, Message: msg, Err: err}
}
