package handler

import (
	"net/http"

	"siack/internal/models"

	"github.com/gin-gonic/gin"
)

// 서버 응답 문구
const (
	msgRegistered     = "회원가입이 성공적으로 완료되었습니다."
	msgLoggedIn       = "로그인이 성공적으로 완료되었습니다."
	msgBadCredentials = "아이디 또는 비밀번호가 올바르지 않습니다."
	msgMissingLogin   = "아이디와 비밀번호를 입력해 주세요."
	msgInvalidBody    = "요청 형식이 올바르지 않습니다."
	msgUserNotFound   = "사용자를 찾을 수 없습니다."
	msgUserInfo       = "사용자 정보 조회에 성공했습니다."
	msgModified       = "회원 정보가 수정되었습니다."
	msgNothingToApply = "변경할 항목이 없습니다."
	msgInternal       = "서버 오류가 발생했습니다."
	msgDuplicate      = "이미 사용 중인 값입니다."

	msgUploaded        = "파일 업로드 성공. File ID: %d"
	msgNoFile          = "업로드할 파일이 없습니다."
	msgUnsupportedType = "지원하지 않는 파일 형식입니다: %s"
	msgFileTooLarge    = "파일 크기가 너무 큽니다."
	msgMissingPath     = "파일 경로를 입력해 주세요."
	msgFileNotFound    = "파일을 찾을 수 없습니다."
	msgFileIO          = "파일 처리 중 오류가 발생했습니다."
)

var formatMessages = map[models.Field]string{
	models.FieldUsername: "사용자 이름 형식이 올바르지 않습니다.",
	models.FieldPassword: "비밀번호 형식이 올바르지 않습니다. 최소 8자, 소문자, 숫자를 포함해야 합니다.",
	models.FieldEmail:    "이메일 형식이 올바르지 않습니다.",
	models.FieldNickname: "닉네임 형식이 올바르지 않습니다.",
	models.FieldPhone:    "전화번호 형식이 올바르지 않습니다.",
}

var duplicateMessages = map[models.Field]string{
	models.FieldUsername: "이미 사용 중인 사용자 이름입니다.",
	models.FieldEmail:    "이미 사용 중인 이메일입니다.",
	models.FieldNickname: "이미 사용 중인 닉네임입니다.",
	models.FieldPhone:    "이미 사용 중인 전화번호입니다.",
}

var availableMessages = map[models.Field]string{
	models.FieldUsername: "사용 가능한 사용자 이름입니다.",
	models.FieldEmail:    "사용 가능한 이메일입니다.",
	models.FieldNickname: "사용 가능한 닉네임입니다.",
	models.FieldPhone:    "사용 가능한 전화번호입니다.",
}

func formatMessage(field models.Field) string {
	if m, ok := formatMessages[field]; ok {
		return m
	}
	return msgInvalidBody
}

// duplicateMessage falls back to a generic message when the conflicting column is unknown.
func duplicateMessage(field models.Field) string {
	if m, ok := duplicateMessages[field]; ok {
		return m
	}
	return msgDuplicate
}

func respond(c *gin.Context, status int, msg string) {
	c.JSON(status, models.APIResponse{StatusCode: status, Message: msg})
}

func respondInternal(c *gin.Context) {
	respond(c, http.StatusInternalServerError, msgInternal)
}
