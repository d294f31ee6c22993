/**
* Name: 			file_storage.go
* Description: 		업로드 파일 저장(디스크)과 메타데이터(files 테이블)
* Workflow: 		확장자 확인 -> <uuid>.<ext> 로 카테고리 디렉터리에 저장 -> 메타데이터 기록 + 프로필 이미지 갱신
 */
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

var (
	ErrFileNotFound    = errors.New("file not found")
	ErrUnsupportedType = errors.New("unsupported file type")
)

// 확장자별 저장 디렉터리
var fileCategories = map[string]string{
	"jpg":  "images",
	"jpeg": "images",
	"png":  "images",
}

// File 은 files 테이블의 한 행
type File struct {
	ID           int64  `db:"id"`
	UserID       int64  `db:"user_id"`
	OriginalName string `db:"original_name"`
	StoredName   string `db:"stored_name"`
	Path         string `db:"path"`
	Extension    string `db:"extension"`
	Size         int64  `db:"size"`
	ContentType  string `db:"content_type"`
	CreatedAt    int64  `db:"created_at"`
}

// StoredFile describes a file written to disk.
type StoredFile struct {
	Name      string
	Path      string
	Category  string
	Extension string
}

// Disk keeps uploaded files under one root directory.
// Paths are relative to the root and cannot escape it.
type Disk struct {
	fs  afero.Fs
	log *zap.Logger
}

func NewDisk(root string, log *zap.Logger) *Disk {
	return NewDiskOn(afero.NewBasePathFs(afero.NewOsFs(), root), log)
}

// NewDiskOn stores files on fs, e.g. afero.NewMemMapFs() in tests.
func NewDiskOn(fs afero.Fs, log *zap.Logger) *Disk {
	if log == nil {
		log = zap.NewNop()
	}
	return &Disk{fs: fs, log: log}
}

// Category returns the directory files with ext are stored in.
func Category(ext string) (string, error) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	category, ok := fileCategories[ext]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}
	return category, nil
}

// Write saves content as <uuid>.<ext> in the category directory of ext.
func (d *Disk) Write(content []byte, ext string) (StoredFile, error) {
	category, err := Category(ext)
	if err != nil {
		return StoredFile{}, err
	}
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	name := uuid.NewString() + "." + ext
	rel := path.Join(category, name)

	if err := d.fs.MkdirAll(category, 0o755); err != nil {
		return StoredFile{}, fmt.Errorf("create %s: %w", category, err)
	}
	if err := afero.WriteFile(d.fs, rel, content, 0o644); err != nil {
		return StoredFile{}, fmt.Errorf("write %s: %w", rel, err)
	}
	d.log.Info("file written", zap.String("path", rel), zap.Int("size", len(content)))
	return StoredFile{Name: name, Path: rel, Category: category, Extension: ext}, nil
}

func (d *Disk) Read(rel string) ([]byte, error) {
	return afero.ReadFile(d.fs, rel)
}

func (d *Disk) Remove(rel string) error {
	return d.fs.Remove(rel)
}

// SaveProfileImage records f and makes it the owner's profile image in one transaction.
func (s *UserStore) SaveProfileImage(ctx context.Context, f *File) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := s.clock().Unix()
	res, err := tx.ExecContext(ctx,
		`INSERT INTO files(user_id, original_name, stored_name, path, extension, size, content_type, created_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
		f.UserID, f.OriginalName, f.StoredName, f.Path, f.Extension, f.Size, f.ContentType, now)
	if err != nil {
		return fmt.Errorf("insert file: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	res, err = tx.ExecContext(ctx, `UPDATE users SET profile_img = ?, updated_at = ? WHERE id = ?`, f.Path, now, f.UserID)
	if err != nil {
		return fmt.Errorf("update profile image: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrUserNotFound
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	f.ID, f.CreatedAt = id, now
	s.log.Info("profile image saved", zap.Int64("user_id", f.UserID), zap.Int64("file_id", id))
	return nil
}

func (s *UserStore) GetFileByPath(ctx context.Context, p string) (File, error) {
	var f File
	err := s.db.GetContext(ctx, &f,
		`SELECT id, user_id, original_name, stored_name, path, extension, size, content_type, created_at
		FROM files WHERE path = ?`, p)
	if errors.Is(err, sql.ErrNoRows) {
		return f, ErrFileNotFound
	}
	return f, err
}
