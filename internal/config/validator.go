package config

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	apperrors "github.com/darkkaiser/job-dispatcher/internal/pkg/errors"
	"github.com/darkkaiser/job-dispatcher/pkg/cronx"
	"github.com/darkkaiser/job-dispatcher/pkg/validation"
	"github.com/go-playground/validator/v10"
)

// 예: 123456:ABC-DEF1234ghIkl-zyx57W2v1u123ew11
var telegramBotTokenRegex = regexp.MustCompile(`^\d{3,20}:[a-zA-Z0-9_-]{30,50}$`)

var validate = newValidator()

// newValidator JSON 필드명으로 에러를 보고하고 커스텀 태그를 등록한 Validator를 생성합니다.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	custom := map[string]validator.Func{
		"cors_origin": func(fl validator.FieldLevel) bool {
			return validation.ValidateCORSOrigin(fl.Field().String()) == nil
		},
		"remote_url": func(fl validator.FieldLevel) bool {
			return validation.ValidateHTTPURL(fl.Field().String()) == nil
		},
		"cron_spec": func(fl validator.FieldLevel) bool {
			return cronx.Validate(fl.Field().String()) == nil
		},
		"telegram_bot_token": func(fl validator.FieldLevel) bool {
			return telegramBotTokenRegex.MatchString(fl.Field().String())
		},
	}
	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("초기화 치명적 오류: '%s' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", tag, err))
		}
	}

	return v
}

// checkStruct 첫 번째 검증 실패를 사용자가 이해할 수 있는 메시지로 변환합니다.
func checkStruct(s any, contextName string) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("%s 유효성 검증에 실패했습니다", contextName))
	}

	fe := validationErrors[0]
	field := strings.TrimPrefix(fe.Namespace(), "AppConfig.")

	switch fe.Tag() {
	case "unique":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s(%s)에 중복된 ID가 존재합니다", contextName, field))
	case "cron_spec":
		return apperrors.Wrap(cronx.Validate(fmt.Sprint(fe.Value())), apperrors.InvalidInput, fmt.Sprintf("%s의 스케줄(%s) 설정이 유효하지 않습니다", contextName, field))
	case "cors_origin":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("CORS Origin 형식이 올바르지 않습니다: '%v' (형식: Scheme://Host[:Port], 예: https://example.com)", fe.Value()))
	case "remote_url":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s의 URL이 올바르지 않습니다: '%v'", field, fe.Value()))
	case "telegram_bot_token":
		return apperrors.New(apperrors.InvalidInput, "텔레그램 봇 토큰(bot_token) 형식이 올바르지 않습니다")
	case "file":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("지정된 파일(%s)을 찾을 수 없습니다: '%v'", field, fe.Value()))
	case "required", "required_if", "required_with":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s의 필수 항목(%s)이 비어 있습니다", contextName, field))
	}

	return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s의 값이 올바르지 않습니다: %s (조건: %s)", contextName, field, conditionOf(fe)))
}

func conditionOf(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}
