package models

// 입력 필드 식별자
type Field string

const (
	FieldUsername        Field = "username"
	FieldPassword        Field = "password"
	FieldConfirmPassword Field = "confirmPassword"
	FieldEmail           Field = "email"
	FieldNickname        Field = "nickname"
	FieldPhone           Field = "phone"
)

// 중복 확인이 가능한 필드
var DuplicateCheckable = []Field{FieldUsername, FieldEmail, FieldNickname, FieldPhone}

// 프로필 수정이 가능한 필드 (수정 화면 순서)
var EditableFields = []Field{FieldEmail, FieldNickname, FieldPhone}

// 역할 코드
const (
	RoleAdmin  = 0
	RoleMember = 1
)

// 서버에서 조회한 사용자 프로필
type UserProfile struct {
	UserID          int64  `json:"userId"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Nickname        string `json:"nickname"`
	ProfileImageURL string `json:"profileImg"`
	StatusMessage   string `json:"statusMessage"`
	Role            int    `json:"role"`
}

// Value returns the profile value shown for an editable field.
func (p UserProfile) Value(field Field) string {
	switch field {
	case FieldEmail:
		return p.Email
	case FieldNickname:
		return p.Nickname
	case FieldPhone:
		return p.Phone
	case FieldUsername:
		return p.Username
	}
	return ""
}

// 회원가입 입력 값
type RegistrationForm struct {
	Username        string
	Password        string
	ConfirmPassword string
	Email           string
	Nickname        string
	Phone           string
}

// Value returns the entered value for field.
func (f RegistrationForm) Value(field Field) string {
	switch field {
	case FieldUsername:
		return f.Username
	case FieldPassword:
		return f.Password
	case FieldConfirmPassword:
		return f.ConfirmPassword
	case FieldEmail:
		return f.Email
	case FieldNickname:
		return f.Nickname
	case FieldPhone:
		return f.Phone
	}
	return ""
}

// 로그인 입력 값
type LoginForm struct {
	Username string
	Password string
	Remember bool
}
