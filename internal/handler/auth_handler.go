/**
* Name: 			auth_handler.go
* Description: 		Gin 프레임워크의 HTTP 핸들러
* Workflow: 		회원가입, 로그인
 */
package handler

import (
	"errors"
	"net/http"

	"siack/internal/models"
	"siack/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Register godoc
// @Summary      회원가입 (Register)
// @Description  새로운 사용자 계정을 생성합니다. 형식 검사 후 아이디/이메일/닉네임/전화번호 중복을 확인합니다.
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        request body models.RegisterRequest true "회원가입 요청 정보"
// @Success      201 {object} models.APIResponse
// @Failure      400 {object} models.APIResponse "형식 오류"
// @Failure      409 {object} models.APIResponse "중복 값"
// @Failure      500 {object} models.APIResponse
// @Router       /user/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, formatMessage(bindingField(err)))
		return
	}

	ctx := c.Request.Context()
	for _, field := range models.DuplicateCheckable {
		value := registerValue(req, field)
		if value == "" {
			continue
		}
		taken, err := h.users.Exists(ctx, field, value, 0)
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

	// password 해싱
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.cost)
	if err != nil {
		h.log.Error("failed to hash password", zap.Error(err))
		respondInternal(c)
		return
	}

	user := &storage.User{
		Username:     req.Username,
		PasswordHash: string(hashed),
		Email:        req.Email,
		Phone:        req.Phone,
		Nickname:     req.Nickname,
		Role:         models.RoleMember,
	}
	if err := h.users.CreateUser(ctx, user); err != nil {
		// 중복 확인 이후 동시에 가입된 경우
		var dup *storage.DuplicateError
		if errors.As(err, &dup) {
			respond(c, http.StatusConflict, duplicateMessage(dup.Field))
			return
		}
		h.log.Error("failed to create user", zap.Error(err))
		respondInternal(c)
		return
	}

	respond(c, http.StatusCreated, msgRegistered)
}

// Login godoc
// @Summary      로그인 (Login)
// @Description  사용자명과 비밀번호로 로그인하고 JWT 토큰을 발급받습니다.
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        request body models.LoginRequest true "로그인 요청 정보"
// @Success      200 {object} models.LoginResponse
// @Failure      400 {object} models.APIResponse "잘못된 요청"
// @Failure      401 {object} models.APIResponse "인증 실패 (자격 증명 오류)"
// @Failure      500 {object} models.APIResponse "서버 내부 오류"
// @Router       /user/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, msgMissingLogin)
		return
	}

	user, err := h.users.GetUserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			respond(c, http.StatusUnauthorized, msgBadCredentials)
			return
		}
		h.log.Error("GetUserByUsername failed", zap.Error(err))
		respondInternal(c)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respond(c, http.StatusUnauthorized, msgBadCredentials)
		return
	}

	token, err := h.tokens.Generate(user.Username, user.Role)
	if err != nil {
		h.log.Error("failed to generate token", zap.Error(err))
		respondInternal(c)
		return
	}

	h.log.Info("user logged in", zap.String("username", user.Username))
	c.JSON(http.StatusOK, models.LoginResponse{
		APIResponse: models.APIResponse{StatusCode: http.StatusOK, Message: msgLoggedIn},
		Token:       token,
		Username:    user.Username,
		Nickname:    user.Nickname,
	})
}

func registerValue(req models.RegisterRequest, field models.Field) string {
	switch field {
	case models.FieldUsername:
		return req.Username
	case models.FieldEmail:
		return req.Email
	case models.FieldNickname:
		return req.Nickname
	case models.FieldPhone:
		return req.Phone
	}
	return ""
}
