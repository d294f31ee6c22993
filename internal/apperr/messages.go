package apperr

import "siack/internal/models"

var fieldLabels = map[models.Field]string{
	models.FieldUsername:        "아이디",
	models.FieldPassword:        "비밀번호",
	models.FieldConfirmPassword: "비밀번호확인",
	models.FieldEmail:           "이메일",
	models.FieldNickname:        "닉네임",
	models.FieldPhone:           "휴대전화번호",
}

var patternHints = map[models.Field]string{
	models.FieldUsername: "아이디는 4~50자이며, 영문/숫자/특수문자(_, @)를 포함하고, 특정 특수문자는 연속으로 사용할 수 없습니다.",
	models.FieldPassword: "비밀번호는 최소 8자 이상이며, 최소 하나의 소문자와 숫자를 포함해야 합니다.",
	models.FieldEmail:    "이메일이 정확한지 확인해 주세요.",
	models.FieldNickname: "닉네임은 2~30자, 영문/숫자/한글/_(언더바)만 가능합니다.",
	models.FieldPhone:    "휴대전화번호가 정확한지 확인해 주세요.",
}

// 사용자에게 보여줄 공통 문구
const (
	MsgInvalidCredentials = "아이디 또는 비밀번호가 올바르지 않습니다."
	MsgServerError        = "서버 오류가 발생했습니다."
	MsgNoChanges          = "변경된 내용이 없습니다."
	MsgProfileUpdated     = "프로필이 정상적으로 업데이트되었습니다."
	MsgUpdateFailed       = "업데이트에 실패했습니다."
	MsgRegistered         = "회원가입 성공!"
	MsgSessionExpired     = "로그인이 만료되었습니다. 다시 로그인해 주세요."
)

// Label returns the display label of field.
func Label(field models.Field) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return string(field)
}

// NewFieldError builds a field error with the standard message for kind.
func NewFieldError(field models.Field, kind Kind) *FieldError {
	return &FieldError{Field: field, Kind: kind, Message: message(field, kind)}
}

func message(field models.Field, kind Kind) string {
	label := Label(field)
	switch kind {
	case EmptyField:
		return label + ": 필수 정보입니다."
	case PatternMismatch:
		return label + ": " + patternHints[field]
	case DuplicateValue:
		return label + ": 이미 사용중인 " + label + "입니다."
	case ConfirmMismatch:
		return label + ": 비밀번호가 일치하지 않습니다."
	case ServerRejected, NetworkFailure:
		return MsgServerError
	case SessionExpired:
		return MsgSessionExpired
	}
	return label
}
