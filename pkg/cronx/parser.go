// Package cronx 애플리케이션 공통 Cron 표현식 파서와 검증 함수를 제공합니다.
package cronx

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// StandardParser 초 단위를 포함하는 6필드 형식과 Descriptor(@daily, @every 1m 등)를 지원하는 파서를 반환합니다.
//
// 필드 순서: [초] [분] [시] [일] [월] [요일]
//
//	"0 */5 * * * *" : 매 5분 0초
//	"@every 30s"    : 30초마다
func StandardParser() cron.Parser {
	return cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
}

// Validate StandardParser 기준으로 Cron 표현식의 유효성을 검사합니다.
func Validate(spec string) error {
	if strings.TrimSpace(spec) == "" {
		return fmt.Errorf("Cron 표현식이 비어 있습니다")
	}
	if _, err := StandardParser().Parse(spec); err != nil {
		return fmt.Errorf("Cron 표현식('%s')이 올바르지 않습니다 (형식: 초 분 시 일 월 요일): %w", spec, err)
	}
	return nil
}
