package storage

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
		"id" INTEGER PRIMARY KEY AUTOINCREMENT,
		"username" TEXT NOT NULL UNIQUE,
		"password_hash" TEXT NOT NULL,
		"email" TEXT NOT NULL UNIQUE,
		"phone" TEXT UNIQUE,
		"nickname" TEXT NOT NULL UNIQUE,
		"profile_img" TEXT,
		"status_message" TEXT,
		"role" INTEGER NOT NULL DEFAULT 1,
		"created_at" INTEGER NOT NULL,
		"updated_at" INTEGER NOT NULL
);`

const createFilesTable = `
CREATE TABLE IF NOT EXISTS files (
		"id" INTEGER PRIMARY KEY AUTOINCREMENT,
		"user_id" INTEGER NOT NULL REFERENCES users(id),
		"original_name" TEXT NOT NULL,
		"stored_name" TEXT NOT NULL UNIQUE,
		"path" TEXT NOT NULL UNIQUE,
		"extension" TEXT NOT NULL,
		"size" INTEGER NOT NULL,
		"content_type" TEXT NOT NULL,
		"created_at" INTEGER NOT NULL
);`

// Open 데이터베이스 연결 및 테이블 생성
func Open(path string, log *zap.Logger) (*UserStore, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.Open(): failed to open database: %w", err)
	}
	// sqlite 는 단일 writer
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.Open(): failed to connect to database: %w", err)
	}
	if _, err := db.Exec(createUsersTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.Open(): failed to create users table: %w", err)
	}
	if _, err := db.Exec(createFilesTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.Open(): failed to create files table: %w", err)
	}
	log.Info("database ready", zap.String("path", path))
	return &UserStore{db: db, log: log}, nil
}
