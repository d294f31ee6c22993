package handler

import (
	"siack/internal/auth"
	"siack/internal/middleware"
	"siack/internal/models"
	"siack/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	users  *storage.UserStore
	tokens *auth.TokenManager
	cost   int
	log    *zap.Logger

	inviteCode string
	disk       *storage.Disk
	maxUpload  int64
}

// New builds the account handlers; cost is the bcrypt cost for new passwords.
func New(users *storage.UserStore, tokens *auth.TokenManager, cost int, log *zap.Logger) *Handler {
	return &Handler{users: users, tokens: tokens, cost: cost, log: log}
}

// RequireInviteCode gates registration behind the X-Invite-Code header.
func (h *Handler) RequireInviteCode(code string) *Handler {
	h.inviteCode = code
	return h
}

// ServeFiles enables /v1/files, storing uploads on disk up to maxBytes each.
func (h *Handler) ServeFiles(disk *storage.Disk, maxBytes int64) *Handler {
	h.disk = disk
	h.maxUpload = maxBytes
	return h
}

// Routes mounts the /v1 account API on r.
func (h *Handler) Routes(r gin.IRouter) {
	v1 := r.Group("/v1")

	user := v1.Group("/user")
	{
		user.POST("/register", middleware.InviteCode(h.inviteCode), h.Register)
		user.POST("/login", h.Login)
		for _, field := range models.DuplicateCheckable {
			user.GET("/check-"+string(field), h.CheckDuplicate(field))
		}
	}

	info := v1.Group("/userinfo").Use(middleware.AuthMiddleware(h.tokens))
	{
		info.GET("/", h.GetMyInfo)
		info.POST("/modify", h.Modify)
	}

	if h.disk != nil {
		files := v1.Group("/files").Use(middleware.AuthMiddleware(h.tokens))
		{
			files.POST("/write", h.UploadFile)
			files.GET("/read", h.ReadFile)
		}
	}
}
