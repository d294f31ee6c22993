/**
* Name: 			rules.go
* Description: 		입력 필드 형식 규칙 (클라이언트/서버 공용)
* Workflow: 		필드별 정규식 + 부가 조건 검사, 부수효과 없음
 */
package validation

import (
	"regexp"
	"strings"

	"siack/internal/models"
)

// RE2는 전방탐색을 지원하지 않으므로 조건을 나눠서 검사한다
var (
	usernameShape   = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_@]{2,48}[a-zA-Z0-9]$`)
	usernameRepeats = regexp.MustCompile(`[_.@]{2,}`)
	passwordShape   = regexp.MustCompile(`^[a-zA-Z0-9!@#$%^&*()_+\-=\[\]{};':"|,.<>/?~]{8,}$`)
	hasLower        = regexp.MustCompile(`[a-z]`)
	hasDigit        = regexp.MustCompile(`[0-9]`)
	emailShape      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nicknameShape   = regexp.MustCompile(`^[a-zA-Z0-9가-힣_]{2,30}$`)
	phoneShape      = regexp.MustCompile(`^\d{3}-\d{3,4}-\d{4}$`)
)

// MatchPattern reports whether value satisfies the format rule of field.
// confirmPassword has no pattern of its own; it is compared with ConfirmMatches.
func MatchPattern(field models.Field, value string) bool {
	switch field {
	case models.FieldUsername:
		return usernameShape.MatchString(value) && !usernameRepeats.MatchString(value)
	case models.FieldPassword:
		return passwordShape.MatchString(value) && hasLower.MatchString(value) && hasDigit.MatchString(value)
	case models.FieldEmail:
		return emailShape.MatchString(value)
	case models.FieldNickname:
		return nicknameShape.MatchString(value)
	case models.FieldPhone:
		return phoneShape.MatchString(value)
	}
	return false
}

// ConfirmMatches compares the confirmation against the password.
func ConfirmMatches(password, confirm string) bool {
	return password == confirm
}

// Optional reports whether an empty value is acceptable for field.
func Optional(field models.Field) bool {
	return field == models.FieldPhone
}

// IsEmpty treats whitespace-only input as empty.
func IsEmpty(value string) bool {
	return strings.TrimSpace(value) == ""
}
