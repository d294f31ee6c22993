package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"siack/internal/apperr"
	"siack/internal/client"
	"siack/internal/config"
	"siack/internal/console"
	"siack/internal/logger"
	"siack/internal/models"
	"siack/internal/pipeline"
	"siack/internal/session"
	"siack/internal/validation"

	"go.uber.org/zap"
)

const usage = `usage: account <command> [flags]

commands:
  register   회원가입
  login      로그인
  logout     로그아웃
  whoami     내 정보 보기
  edit       내 정보 수정 (-email, -nickname, -phone)
  avatar     프로필 이미지 업로드 (-file, jpg/jpeg/png)

환경변수 SIACK_CONFIG 로 설정 파일을 지정할 수 있습니다.`

type app struct {
	log    *zap.Logger
	con    *console.Console
	api    *client.Client
	prefs  session.Storage
	store  *session.Store
	engine *validation.Engine
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load(os.Getenv("SIACK_CONFIG"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	zl := logger.New(cfg.Logging.Level)
	defer zl.Sync()

	a, err := newApp(cfg, zl)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var runErr error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "register":
		runErr = a.register(ctx, args)
	case "login":
		runErr = a.login(ctx, args)
	case "logout":
		runErr = a.logout()
	case "whoami":
		runErr = a.whoami(ctx)
	case "edit":
		runErr = a.edit(ctx, args)
	case "avatar":
		runErr = a.avatar(ctx, args)
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if runErr != nil {
		a.report(runErr)
		stop()
		os.Exit(1)
	}
}

func newApp(cfg *config.Config, zl *zap.Logger) (*app, error) {
	dir := cfg.Client.StateDir
	if dir == "" {
		var err error
		if dir, err = session.DefaultStateDir(); err != nil {
			return nil, err
		}
	}
	prefs, err := session.NewFileStorage(dir)
	if err != nil {
		return nil, err
	}

	con := console.New(os.Stdout, zl)
	api := client.New(cfg.Client.BaseURL,
		client.WithLogger(zl),
		client.WithTimeout(cfg.Client.TimeoutDuration()),
		client.WithInviteCode(cfg.Client.InviteCode))
	store := session.NewStore(api, prefs, con,
		session.WithTokenTTL(cfg.Client.TokenTTLDuration()),
		session.WithLogger(zl))

	return &app{
		log:    zl,
		con:    con,
		api:    api,
		prefs:  prefs,
		store:  store,
		engine: validation.NewEngine(api, zl),
	}, nil
}

// restore loads a session saved by an earlier run; an expired one is dropped with a notice.
func (a *app) restore(ctx context.Context) {
	if err := a.store.Restore(ctx); err != nil {
		a.log.Debug("restore session", zap.Error(err))
		if errors.Is(err, apperr.ErrSessionExpired) {
			a.con.Notify("알림", apperr.MsgSessionExpired)
		}
	}
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	var form models.RegistrationForm
	fs.StringVar(&form.Username, "username", "", "아이디")
	fs.StringVar(&form.Password, "password", "", "비밀번호")
	fs.StringVar(&form.ConfirmPassword, "confirm", "", "비밀번호 확인")
	fs.StringVar(&form.Email, "email", "", "이메일")
	fs.StringVar(&form.Nickname, "nickname", "", "닉네임")
	fs.StringVar(&form.Phone, "phone", "", "휴대전화번호 (선택)")
	fs.Parse(args)

	a.restore(ctx)
	if a.store.Guard(false, pipeline.PathHome) {
		return nil
	}
	reg := pipeline.NewRegistration(a.engine, a.api, a.con, a.con, a.log)
	return reg.Submit(ctx, form)
}

func (a *app) login(ctx context.Context, args []string) error {
	l := pipeline.NewLogin(a.api, a.store, a.prefs, a.con, a.con, a.log)
	saved, remembered := l.Prefill()

	fs := flag.NewFlagSet("login", flag.ExitOnError)
	var form models.LoginForm
	fs.StringVar(&form.Username, "username", saved, "아이디")
	fs.StringVar(&form.Password, "password", "", "비밀번호")
	fs.BoolVar(&form.Remember, "remember", remembered, "아이디 저장")
	fs.Parse(args)

	a.restore(ctx)
	if a.store.Guard(false, pipeline.PathHome) {
		return nil
	}
	if err := l.Submit(ctx, form); err != nil {
		return err
	}
	a.con.Session(a.store.Snapshot(), a.store.RoleLabel())
	return nil
}

func (a *app) logout() error {
	a.store.Logout()
	a.con.Notify("알림", "로그아웃되었습니다.")
	a.con.Navigate(pipeline.PathHome)
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	a.restore(ctx)
	if a.store.Guard(true, pipeline.PathLogin) {
		return nil
	}
	a.con.Session(a.store.Snapshot(), a.store.RoleLabel())
	return nil
}

func (a *app) edit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	values := make(map[models.Field]*string, len(models.EditableFields))
	for _, field := range models.EditableFields {
		values[field] = fs.String(string(field), "", apperr.Label(field))
	}
	fs.Parse(args)

	a.restore(ctx)
	if a.store.Guard(true, pipeline.PathLogin) {
		return nil
	}
	if !a.store.Snapshot().LoggedIn() {
		return apperr.ErrNotLoggedIn
	}

	editor := pipeline.NewProfileEditor(a.engine, a.api, a.store, a.con, a.log)
	var stageErr error
	// 명시한 플래그만 변경 대상
	fs.Visit(func(f *flag.Flag) {
		field := models.Field(f.Name)
		if stageErr != nil {
			return
		}
		if stageErr = editor.Begin(field); stageErr == nil {
			stageErr = editor.SetDraft(*values[field])
		}
	})
	if stageErr != nil {
		return stageErr
	}

	if err := editor.Confirm(ctx); err != nil {
		if errors.Is(err, apperr.ErrNoChanges) {
			return nil
		}
		return err
	}
	a.con.Session(a.store.Snapshot(), a.store.RoleLabel())
	return nil
}

func (a *app) avatar(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("avatar", flag.ExitOnError)
	path := fs.String("file", "", "이미지 파일 경로")
	fs.Parse(args)
	if *path == "" {
		fs.Usage()
		return errors.New("-file is required")
	}

	a.restore(ctx)
	if a.store.Guard(true, pipeline.PathLogin) {
		return nil
	}
	token := a.store.Token()
	if token == "" {
		return apperr.ErrNotLoggedIn
	}

	f, err := os.Open(*path)
	if err != nil {
		return err
	}
	defer f.Close()

	resp, err := a.api.UploadProfileImage(ctx, token, *path, f)
	if err != nil {
		msg := apperr.MsgServerError
		var se *client.StatusError
		if errors.As(err, &se) && se.Message != "" {
			msg = se.Message
		}
		a.con.Notify("업로드 실패", msg)
		return &apperr.RequestError{Kind: apperr.ServerRejected, Status: client.StatusOf(err), Message: msg}
	}
	a.con.Notify("알림", resp.Message)

	if err := a.store.CommitProfile(token, func(p *models.UserProfile) { p.ProfileImageURL = resp.Path }); err != nil {
		return err
	}
	a.con.Session(a.store.Snapshot(), a.store.RoleLabel())
	return nil
}

// report prints what the pipelines did not already show through a notification.
func (a *app) report(err error) {
	var fields apperr.FieldErrors
	if errors.As(err, &fields) {
		a.con.FieldErrors(fields)
		return
	}
	var reqErr *apperr.RequestError
	if errors.As(err, &reqErr) {
		return
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
}
