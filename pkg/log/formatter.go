package log

import "github.com/sirupsen/logrus"

// silentFormatter 표준 출력 경로에서의 포맷팅 비용을 없애기 위한 포맷터입니다.
// 실제 포맷팅과 출력은 routingHook이 담당합니다.
type silentFormatter struct{}

func (silentFormatter) Format(*logrus.Entry) ([]byte, error) {
	return nil, nil
}
