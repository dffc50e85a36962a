// Package log logrus 기반의 애플리케이션 로깅 설정과 헬퍼를 제공합니다.
//
// 모든 로그는 component 필드를 포함하도록 WithComponent 또는 WithComponentAndFields를 통해 기록합니다.
//
//	applog.WithComponentAndFields("dispatch.worker", applog.Fields{
//	    "worker_id": id,
//	}).Info("Worker 준비 완료")
package log

import (
	"github.com/sirupsen/logrus"
)

// StandardLogger logrus 전역 Logger를 반환합니다.
func StandardLogger() *Logger {
	return logrus.StandardLogger()
}

// SetDebugMode Debug 모드이면 Trace, 아니면 Info 레벨로 설정합니다.
func SetDebugMode(debug bool) {
	if debug {
		logrus.SetLevel(TraceLevel)
		return
	}
	logrus.SetLevel(InfoLevel)
}

// WithFields 주어진 필드를 포함한 Entry를 반환합니다.
func WithFields(fields Fields) *Entry {
	return logrus.WithFields(fields)
}

// WithComponent component 필드를 포함한 Entry를 반환합니다.
func WithComponent(component string) *Entry {
	return logrus.WithField("component", component)
}

// WithComponentAndFields component 필드와 추가 필드를 포함한 Entry를 반환합니다.
// 전달된 fields 맵은 변경하지 않습니다.
func WithComponentAndFields(component string, fields Fields) *Entry {
	merged := make(Fields, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged["component"] = component
	return logrus.WithFields(merged)
}

// MaskSensitiveData 토큰, 키 등 민감한 문자열을 로그에 남길 수 있도록 마스킹합니다.
func MaskSensitiveData(data string) string {
	switch {
	case data == "":
		return ""
	case len(data) <= 3:
		return "***"
	case len(data) <= 12:
		return data[:4] + "***"
	default:
		return data[:4] + "***" + data[len(data)-4:]
	}
}
