// Package handler API 핸들러가 공유하는 요청 검증 기능을 제공합니다.
package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// 에러 메시지에는 클라이언트가 보낸 JSON 필드명을 사용한다.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	})

	return validate
}

// ValidateRequest validate 태그에 따라 요청 구조체를 검증합니다.
func ValidateRequest(req any) error {
	return getValidator().Struct(req)
}

// FormatValidationError 첫 번째 검증 실패를 클라이언트에게 보여줄 메시지로 변환합니다.
func FormatValidationError(err error) string {
	if err == nil {
		return ""
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err.Error()
	}

	fe := validationErrors[0]
	field := fe.Field()
	if ns := fe.Namespace(); strings.Contains(ns, ".") {
		field = ns[strings.Index(ns, ".")+1:]
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s는 필수입니다", field)
	case "min":
		return fmt.Sprintf("%s는 최소 %s개 이상이어야 합니다", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s는 최대 %s개까지 입력 가능합니다", field, fe.Param())
	case "unique":
		return fmt.Sprintf("%s에 중복된 값이 있습니다", field)
	default:
		return fmt.Sprintf("%s 검증 실패: %s", field, fe.Tag())
	}
}
