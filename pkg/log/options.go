package log

import (
	"fmt"
	"os"
)

// Options 로깅 시스템 초기화 옵션입니다.
type Options struct {
	Name  string // 로그 파일명에 사용할 애플리케이션 식별자
	Dir   string // 로그 디렉토리 (빈 값이면 "logs")
	Level Level  // 최소 로그 레벨 (0이면 Info)

	MaxAge     int // 로테이션된 파일 보관 일수 (0: 삭제하지 않음)
	MaxSizeMB  int // 파일 하나의 최대 크기 (0: 100MB)
	MaxBackups int // 보관할 로테이션 파일 수 (0: 20개)

	EnableCriticalLog bool // Error 이상 로그를 별도 파일(*.critical.log)에도 기록
	EnableVerboseLog  bool // Debug/Trace 로그를 별도 파일(*.verbose.log)에 기록
	EnableConsoleLog  bool // 모든 로그를 표준 출력에도 기록

	ReportCaller     bool   // 호출 위치(함수명, 라인) 기록 여부
	CallerPathPrefix string // 호출 위치 출력 시 잘라낼 패키지 경로 접두사
}

// Validate 옵션 값의 유효성을 검사합니다.
func (o *Options) Validate() error {
	if o.Name == "" {
		return fmt.Errorf("애플리케이션 식별자(Name)가 설정되지 않았습니다")
	}

	if o.Dir != "" {
		if info, err := os.Stat(o.Dir); err == nil && !info.IsDir() {
			return fmt.Errorf("로그 디렉토리 경로(%s)가 이미 파일로 존재합니다", o.Dir)
		}
	}

	limits := []struct {
		name  string
		value int
	}{
		{"MaxAge", o.MaxAge},
		{"MaxSizeMB", o.MaxSizeMB},
		{"MaxBackups", o.MaxBackups},
	}
	for _, l := range limits {
		if l.value < 0 {
			return fmt.Errorf("%s는 0 이상이어야 합니다: %d", l.name, l.value)
		}
	}

	return nil
}
