// Package strutil 작업 결과와 알림 메시지를 다듬는 문자열 유틸리티를 제공합니다.
package strutil

import (
	"strings"
	"unicode/utf8"
)

// Ellipsis Truncate가 잘라낸 문자열 끝에 붙이는 말줄임표입니다.
const Ellipsis = "..."

// NormalizeSpaces 문자열의 앞뒤 공백을 제거하고 연속된 공백(줄바꿈 포함)을 하나로 축약합니다.
// 예: "  hello \n  world  " -> "hello world"
func NormalizeSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate s가 limit 바이트를 넘으면 UTF-8 문자가 깨지지 않는 위치에서 자르고 말줄임표를 붙입니다.
// 말줄임표의 길이는 limit에 포함되지 않습니다.
func Truncate(s string, limit int) string {
	if limit < 0 {
		limit = 0
	}
	if len(s) <= limit {
		return s
	}

	return s[:RuneBoundary(s, limit)] + Ellipsis
}

// RuneBoundary limit 바이트 이내에서 마지막 룬이 시작하는 인덱스를 반환합니다.
// s의 길이가 limit 이하라면 len(s)를 반환합니다.
func RuneBoundary(s string, limit int) int {
	if len(s) <= limit {
		return len(s)
	}

	i := limit
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}
