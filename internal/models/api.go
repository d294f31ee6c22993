package models

// /v1 API 공통 응답 바디
type APIResponse struct {
	StatusCode int    `json:"statusCode" example:"200"`
	Message    string `json:"message,omitempty" example:"요청이 처리되었습니다."`
}

// /v1/user/register 요청 바디
type RegisterRequest struct {
	Username string `json:"username" binding:"required,username" example:"new_user"`
	Password string `json:"password" binding:"required,password" example:"password123"`
	Email    string `json:"email" binding:"required,email_shape" example:"user@example.com"`
	Nickname string `json:"nickname" binding:"required,nickname" example:"gildong"`
	Phone    string `json:"phone,omitempty" binding:"omitempty,phone" example:"010-1234-5678"`
}

// /v1/user/login 요청 바디
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"my_user"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// /v1/user/login 응답 바디
type LoginResponse struct {
	APIResponse
	Token    string `json:"token,omitempty" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	Username string `json:"username,omitempty" example:"my_user"`
	Nickname string `json:"nickname,omitempty" example:"gildong"`
}

// /v1/userinfo/ 응답 바디
type UserInfoResponse struct {
	APIResponse
	UserProfile
}

// /v1/userinfo/modify 요청 바디, nil 필드는 변경하지 않는다
type ModifyRequest struct {
	Email    *string `json:"email,omitempty" binding:"omitempty,email_shape"`
	Nickname *string `json:"nickname,omitempty" binding:"omitempty,nickname"`
	Phone    *string `json:"phone,omitempty" binding:"omitempty,phone_or_empty"`
}

// Set stores value under field; unknown fields are ignored.
func (r *ModifyRequest) Set(field Field, value string) {
	v := value
	switch field {
	case FieldEmail:
		r.Email = &v
	case FieldNickname:
		r.Nickname = &v
	case FieldPhone:
		r.Phone = &v
	}
}

// Empty reports whether no field is set.
func (r ModifyRequest) Empty() bool {
	return r.Email == nil && r.Nickname == nil && r.Phone == nil
}

// /v1/files/write 응답 바디
type FileUploadResponse struct {
	APIResponse
	FileID int64  `json:"fileId" example:"1"`
	Path   string `json:"path" example:"images/0f8fad5b-d9cb-469f-a165-70867728950e.png"`
}

// /v1/files/read 응답 바디, content 는 base64
type FileResponse struct {
	APIResponse
	Content string `json:"content"`
}
