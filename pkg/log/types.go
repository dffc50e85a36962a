package log

import "github.com/sirupsen/logrus"

// Level logrus.Level의 별칭입니다.
type Level = logrus.Level

// 로그 레벨 (심각도 내림차순)
const (
	PanicLevel Level = logrus.PanicLevel
	FatalLevel Level = logrus.FatalLevel
	ErrorLevel Level = logrus.ErrorLevel
	WarnLevel  Level = logrus.WarnLevel
	InfoLevel  Level = logrus.InfoLevel
	DebugLevel Level = logrus.DebugLevel
	TraceLevel Level = logrus.TraceLevel
)

// AllLevels logrus.AllLevels의 별칭입니다.
var AllLevels = logrus.AllLevels

type (
	// Fields logrus.Fields의 별칭입니다.
	Fields = logrus.Fields

	// Entry logrus.Entry의 별칭입니다.
	Entry = logrus.Entry

	// Logger logrus.Logger의 별칭입니다.
	Logger = logrus.Logger

	// Formatter logrus.Formatter의 별칭입니다.
	Formatter = logrus.Formatter
)

// ParseLevel 문자열을 로그 레벨로 변환합니다. (예: "debug", "info")
func ParseLevel(s string) (Level, error) {
	return logrus.ParseLevel(s)
}
