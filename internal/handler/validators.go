package handler

import (
	"errors"
	"strings"

	"siack/internal/models"
	"siack/internal/validation"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators 요청 바디 binding 태그에 필드 형식 규칙을 등록
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("handler: gin validator engine is not go-playground/validator")
	}

	rules := map[string]validator.Func{
		"username":    patternRule(models.FieldUsername),
		"password":    patternRule(models.FieldPassword),
		"email_shape": patternRule(models.FieldEmail),
		"nickname":    patternRule(models.FieldNickname),
		"phone":       patternRule(models.FieldPhone),
		// 빈 문자열은 전화번호 삭제
		"phone_or_empty": func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s == "" || validation.MatchPattern(models.FieldPhone, s)
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func patternRule(field models.Field) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return validation.MatchPattern(field, fl.Field().String())
	}
}

// bindingField returns the field that failed binding, or "" when the body itself is malformed.
func bindingField(err error) models.Field {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return models.Field(strings.ToLower(verrs[0].Field()))
	}
	return ""
}
