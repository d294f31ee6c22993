package middleware

import (
	"crypto/subtle"
	"net/http"

	"siack/internal/models"

	"github.com/gin-gonic/gin"
)

const InviteCodeHeader = "X-Invite-Code"

// InviteCode 회원가입을 초대 코드 보유자로 제한, code 가 비어 있으면 통과
func InviteCode(code string) gin.HandlerFunc {
	if code == "" {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		clientKey := c.GetHeader(InviteCodeHeader)
		if subtle.ConstantTimeCompare([]byte(clientKey), []byte(code)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, models.APIResponse{
				StatusCode: http.StatusForbidden,
				Message:    "초대 코드가 올바르지 않습니다.",
			})
			return
		}
		c.Next()
	}
}
