/**
* Name: 			file_handler.go
* Description: 		프로필 이미지 업로드 및 파일 읽기 핸들러
* Workflow: 		multipart 업로드 -> 디스크 저장 -> 메타데이터 기록, 읽기는 기록된 경로만 base64 로 반환
 */
package handler

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"siack/internal/models"
	"siack/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UploadFile godoc
// @Summary      프로필 이미지 업로드
// @Description  jpg/jpeg/png 파일을 저장하고 내 프로필 이미지로 지정합니다. (JWT 필요)
// @Tags         Files (Protected)
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file formData file true "이미지 파일"
// @Success      200 {object} models.FileUploadResponse
// @Failure      400 {object} models.APIResponse "파일 없음 또는 지원하지 않는 형식"
// @Failure      401 {object} models.APIResponse "인증 실패"
// @Failure      413 {object} models.APIResponse "파일 크기 초과"
// @Failure      500 {object} models.APIResponse
// @Router       /files/write [post]
func (h *Handler) UploadFile(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil || header.Size == 0 {
		respond(c, http.StatusBadRequest, msgNoFile)
		return
	}
	if header.Size > h.maxUpload {
		respond(c, http.StatusRequestEntityTooLarge, msgFileTooLarge)
		return
	}
	ext := filepath.Ext(header.Filename)
	if _, err := storage.Category(ext); err != nil {
		respond(c, http.StatusBadRequest, fmt.Sprintf(msgUnsupportedType, strings.ToLower(strings.TrimPrefix(ext, "."))))
		return
	}

	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	src, err := header.Open()
	if err != nil {
		h.log.Error("failed to open upload", zap.Error(err))
		respond(c, http.StatusInternalServerError, msgFileIO)
		return
	}
	defer src.Close()
	content, err := io.ReadAll(io.LimitReader(src, h.maxUpload+1))
	if err != nil {
		h.log.Error("failed to read upload", zap.Error(err))
		respond(c, http.StatusInternalServerError, msgFileIO)
		return
	}
	if int64(len(content)) > h.maxUpload {
		respond(c, http.StatusRequestEntityTooLarge, msgFileTooLarge)
		return
	}

	stored, err := h.disk.Write(content, ext)
	if err != nil {
		h.log.Error("failed to store upload", zap.Error(err))
		respond(c, http.StatusInternalServerError, msgFileIO)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(content)
	}
	f := &storage.File{
		UserID:       user.ID,
		OriginalName: header.Filename,
		StoredName:   stored.Name,
		Path:         stored.Path,
		Extension:    stored.Extension,
		Size:         int64(len(content)),
		ContentType:  contentType,
	}
	if err := h.users.SaveProfileImage(c.Request.Context(), f); err != nil {
		// 기록에 실패한 파일은 남기지 않는다
		if rmErr := h.disk.Remove(stored.Path); rmErr != nil {
			h.log.Warn("failed to remove orphan file", zap.String("path", stored.Path), zap.Error(rmErr))
		}
		if errors.Is(err, storage.ErrUserNotFound) {
			respond(c, http.StatusNotFound, msgUserNotFound)
			return
		}
		h.log.Error("failed to save file metadata", zap.Error(err))
		respondInternal(c)
		return
	}

	c.JSON(http.StatusOK, models.FileUploadResponse{
		APIResponse: models.APIResponse{StatusCode: http.StatusOK, Message: fmt.Sprintf(msgUploaded, f.ID)},
		FileID:      f.ID,
		Path:        f.Path,
	})
}

// ReadFile godoc
// @Summary      파일 읽기
// @Description  업로드된 파일 내용을 base64 로 반환합니다. (JWT 필요)
// @Tags         Files (Protected)
// @Produce      json
// @Security     BearerAuth
// @Param        path query string true "업로드 응답의 path"
// @Success      200 {object} models.FileResponse
// @Failure      400 {object} models.APIResponse "경로 누락"
// @Failure      401 {object} models.APIResponse "인증 실패"
// @Failure      404 {object} models.APIResponse "파일 없음"
// @Failure      500 {object} models.APIResponse
// @Router       /files/read [get]
func (h *Handler) ReadFile(c *gin.Context) {
	p := c.Query("path")
	if p == "" {
		respond(c, http.StatusBadRequest, msgMissingPath)
		return
	}

	f, err := h.users.GetFileByPath(c.Request.Context(), p)
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) {
			respond(c, http.StatusNotFound, msgFileNotFound)
			return
		}
		h.log.Error("GetFileByPath failed", zap.Error(err))
		respondInternal(c)
		return
	}

	content, err := h.disk.Read(f.Path)
	if err != nil {
		h.log.Error("failed to read file", zap.String("path", f.Path), zap.Error(err))
		respond(c, http.StatusInternalServerError, msgFileIO)
		return
	}
	c.JSON(http.StatusOK, models.FileResponse{
		APIResponse: models.APIResponse{StatusCode: http.StatusOK},
		Content:     base64.StdEncoding.EncodeToString(content),
	})
}
