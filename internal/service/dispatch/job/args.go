package job

import (
	"github.com/go-viper/mapstructure/v2"
)

// DecodeArg args의 i번째 값을 out이 가리키는 변수로 디코딩합니다.
//
// JSON 숫자(float64)를 정수로, 숫자 문자열을 숫자로 변환하는 등 느슨한 타입 변환을 허용합니다.
// 해당 위치에 값이 없거나 nil이라면 out을 변경하지 않고 false를 반환합니다.
func DecodeArg(args []any, i int, out any) (bool, error) {
	if i < 0 || i >= len(args) || args[i] == nil {
		return false, nil
	}
	if err := mapstructure.WeakDecode(args[i], out); err != nil {
		return true, err
	}
	return true, nil
}
