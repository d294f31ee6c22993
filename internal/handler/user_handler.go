/**
* Name: 			user_handler.go
* Description: 		중복 확인 및 내 정보 조회/수정 핸들러
* Workflow: 		check-{field} 는 공개, /userinfo 는 JWT 인증 필요
 */
package handler

import (
	"errors"
	"net/http"

	"siack/internal/middleware"
	"siack/internal/models"
	"siack/internal/storage"
	"siack/internal/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CheckDuplicate godoc
// @Summary      중복 확인
// @Description  아이디/이메일/닉네임/전화번호 사용 가능 여부를 확인합니다. field 는 username, email, nickname, phone 중 하나입니다.
// @Tags         User
// @Produce      json
// @Param        field path  string true  "확인할 필드"
// @Param        value query string true  "확인할 값"
// @Success      200 {object} models.APIResponse "사용 가능"
// @Failure      400 {object} models.APIResponse "형식 오류"
// @Failure      409 {object} models.APIResponse "이미 사용 중"
// @Failure      500 {object} models.APIResponse
// @Router       /user/check-{field} [get]
func (h *Handler) CheckDuplicate(field models.Field) gin.HandlerFunc {
	return func(c *gin.Context) {
		value := c.Query("value")
		if value == "" {
			// 필드명 파라미터도 허용 (?email=...)
			value = c.Query(string(field))
		}
		if !validation.MatchPattern(field, value) {
			respond(c, http.StatusBadRequest, formatMessage(field))
			return
		}

		taken, err := h.users.Exists(c.Request.Context(), field, value, 0)
		if err != nil {
			h.log.Error("duplicate lookup failed", zap.String("field", string(field)), zap.Error(err))
			respondInternal(c)
			return
		}
		if taken {
			respond(c, http.StatusConflict, duplicateMessage(field))
			return
		}
		respond(c, http.StatusOK, availableMessages[field])
	}
}

// GetMyInfo godoc
// @Summary      내 정보 조회
// @Description  인증된 사용자의 프로필 정보를 조회합니다. (JWT 필요)
// @Tags         UserInfo (Protected)
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} models.UserInfoResponse
// @Failure      401 {object} models.APIResponse "인증 토큰 누락 또는 만료"
// @Failure      404 {object} models.APIResponse "사용자 없음"
// @Router       /userinfo/ [get]
func (h *Handler) GetMyInfo(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.UserInfoResponse{
		APIResponse: models.APIResponse{StatusCode: http.StatusOK, Message: msgUserInfo},
		UserProfile: user.Profile(),
	})
}

// Modify godoc
// @Summary      내 정보 수정
// @Description  이메일/닉네임/전화번호 중 전달된 항목만 변경합니다. 빈 전화번호는 삭제로 처리합니다. (JWT 필요)
// @Tags         UserInfo (Protected)
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body models.ModifyRequest true "변경할 항목"
// @Success      200 {object} models.APIResponse
// @Failure      400 {object} models.APIResponse "형식 오류 또는 변경 항목 없음"
// @Failure      401 {object} models.APIResponse "인증 실패"
// @Failure      409 {object} models.APIResponse "이미 사용 중"
// @Router       /userinfo/modify [post]
func (h *Handler) Modify(c *gin.Context) {
	var req models.ModifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, formatMessage(bindingField(err)))
		return
	}
	if req.Empty() {
		respond(c, http.StatusBadRequest, msgNothingToApply)
		return
	}

	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	for _, field := range models.EditableFields {
		value, set := modifyValue(req, field)
		if !set || value == "" {
			continue
		}
		taken, err := h.users.Exists(ctx, field, value, user.ID)
		if err != nil {
			h.log.Error("duplicate lookup failed", zap.String("field", string(field)), zap.Error(err))
			respondInternal(c)
			return
		}
		if taken {
			respond(c, http.StatusConflict, duplicateMessage(field))
			return
		}
	}

	if err := h.users.UpdateProfile(ctx, user.ID, req); err != nil {
		var dup *storage.DuplicateError
		if errors.As(err, &dup) {
			respond(c, http.StatusConflict, duplicateMessage(dup.Field))
			return
		}
		h.log.Error("failed to update profile", zap.Int64("user_id", user.ID), zap.Error(err))
		respondInternal(c)
		return
	}

	h.log.Info("profile updated", zap.String("username", user.Username))
	respond(c, http.StatusOK, msgModified)
}

// currentUser loads the authenticated user, writing the error response itself on failure.
func (h *Handler) currentUser(c *gin.Context) (storage.User, bool) {
	username := c.GetString(middleware.CtxUsername)
	user, err := h.users.GetUserByUsername(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			respond(c, http.StatusNotFound, msgUserNotFound)
			return user, false
		}
		h.log.Error("GetUserByUsername failed", zap.Error(err))
		respondInternal(c)
		return user, false
	}
	return user, true
}

func modifyValue(req models.ModifyRequest, field models.Field) (string, bool) {
	var p *string
	switch field {
	case models.FieldEmail:
		p = req.Email
	case models.FieldNickname:
		p = req.Nickname
	case models.FieldPhone:
		p = req.Phone
	}
	if p == nil {
		return "", false
	}
	return *p, true
}
