package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"siack/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"modernc.org/sqlite"
)

// sqlite 확장 에러 코드 SQLITE_CONSTRAINT_UNIQUE
const sqliteUniqueViolation = 2067

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUnknownColumn = errors.New("field is not a unique column")
)

// DuplicateError 는 unique 제약 위반 시 충돌한 필드를 담는다
type DuplicateError struct {
	Field models.Field
}

func (e *DuplicateError) Error() string {
	if e.Field == "" {
		return "value already exists"
	}
	return fmt.Sprintf("%s already exists", e.Field)
}

// 중복 확인이 허용되는 컬럼
var uniqueColumns = map[models.Field]string{
	models.FieldUsername: "username",
	models.FieldEmail:    "email",
	models.FieldNickname: "nickname",
	models.FieldPhone:    "phone",
}

var uniqueFailure = regexp.MustCompile(`UNIQUE constraint failed: users\.(\w+)`)

// User 는 users 테이블의 한 행
type User struct {
	ID            int64  `db:"id"`
	Username      string `db:"username"`
	PasswordHash  string `db:"password_hash"`
	Email         string `db:"email"`
	Phone         string `db:"phone"`
	Nickname      string `db:"nickname"`
	ProfileImg    string `db:"profile_img"`
	StatusMessage string `db:"status_message"`
	Role          int    `db:"role"`
	CreatedAt     int64  `db:"created_at"`
	UpdatedAt     int64  `db:"updated_at"`
}

// Profile converts the row into the public profile shape.
func (u User) Profile() models.UserProfile {
	return models.UserProfile{
		UserID:          u.ID,
		Username:        u.Username,
		Email:           u.Email,
		Phone:           u.Phone,
		Nickname:        u.Nickname,
		ProfileImageURL: u.ProfileImg,
		StatusMessage:   u.StatusMessage,
		Role:            u.Role,
	}
}

type UserStore struct {
	db  *sqlx.DB
	log *zap.Logger
	now func() time.Time
}

func (s *UserStore) Close() error {
	return s.db.Close()
}

func (s *UserStore) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

// Exists reports whether value is already taken for field by a user other than exceptID.
// exceptID 0 은 모든 사용자를 대상으로 한다.
func (s *UserStore) Exists(ctx context.Context, field models.Field, value string, exceptID int64) (bool, error) {
	column, ok := uniqueColumns[field]
	if !ok {
		return false, ErrUnknownColumn
	}
	var n int
	query := fmt.Sprintf("SELECT COUNT(1) FROM users WHERE %s = ? AND id != ?", column)
	if err := s.db.GetContext(ctx, &n, query, value, exceptID); err != nil {
		return false, err
	}
	return n > 0, nil
}

// CreateUser 신규 사용자 저장, 빈 전화번호는 NULL 로 저장
func (s *UserStore) CreateUser(ctx context.Context, u *User) error {
	now := s.clock().Unix()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users(username, password_hash, email, phone, nickname, profile_img, status_message, role, created_at, updated_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.Username, u.PasswordHash, u.Email, nullable(u.Phone), u.Nickname,
		nullable(u.ProfileImg), nullable(u.StatusMessage), u.Role, now, now)
	if err != nil {
		return translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID, u.CreatedAt, u.UpdatedAt = id, now, now
	s.log.Info("user created", zap.String("username", u.Username), zap.Int64("id", id))
	return nil
}

func (s *UserStore) GetUserByUsername(ctx context.Context, username string) (User, error) {
	var user User
	err := s.db.GetContext(ctx, &user,
		`SELECT id, username, password_hash, email, COALESCE(phone, '') AS phone, nickname,
			COALESCE(profile_img, '') AS profile_img, COALESCE(status_message, '') AS status_message,
			role, created_at, updated_at
		FROM users WHERE username = ?`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return user, ErrUserNotFound
	}
	return user, err
}

// UpdateProfile applies the non-nil fields of req to the user; an empty phone clears it.
func (s *UserStore) UpdateProfile(ctx context.Context, id int64, req models.ModifyRequest) error {
	var (
		sets []string
		args []interface{}
	)
	if req.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *req.Email)
	}
	if req.Nickname != nil {
		sets = append(sets, "nickname = ?")
		args = append(args, *req.Nickname)
	}
	if req.Phone != nil {
		sets = append(sets, "phone = ?")
		args = append(args, nullable(*req.Phone))
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, s.clock().Unix(), id)

	res, err := s.db.ExecContext(ctx, "UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return translate(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func nullable(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

// translate unique 제약 위반을 DuplicateError 로 변환
func translate(err error) error {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) || sqliteErr.Code() != sqliteUniqueViolation {
		return err
	}
	m := uniqueFailure.FindStringSubmatch(sqliteErr.Error())
	if m == nil {
		return &DuplicateError{}
	}
	return &DuplicateError{Field: models.Field(m[1])}
}
