package job

import (
	"strings"

	"github.com/iancoleman/strcase"
)

// Type 작업 정의에서 허용되는 작업 타입의 열거형입니다.
type Type int

const (
	// Unknown 유효하지 않은 타입
	Unknown Type = iota

	// Echo 지정된 시간만큼 대기한 뒤 메시지를 그대로 돌려주는 작업
	Echo

	// Filter 목록에서 값 또는 부분 객체와 일치하는 항목만 골라내는 작업
	Filter

	// RemoteStatus 원격 상태 API를 한 번 조회하여 상태 코드를 사람이 읽을 수 있는 문구로 변환하는 작업
	RemoteStatus

	// Scrape 웹 페이지에서 CSS 셀렉터와 일치하는 노드의 텍스트를 수집하는 작업
	Scrape
)

var typeNames = map[Type]string{
	Echo:         "echo",
	Filter:       "filter",
	RemoteStatus: "githubStatus",
	Scrape:       "scrape",
}

// typeAliases 정규화(소문자 + 구분자 제거)된 이름과 타입의 대응표
var typeAliases = map[string]Type{
	"echo":         Echo,
	"filter":       Filter,
	"githubstatus": RemoteStatus,
	"remotestatus": RemoteStatus,
	"status":       RemoteStatus,
	"scrape":       Scrape,
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Types 유효한 모든 작업 타입을 반환합니다.
func Types() []Type {
	return []Type{Echo, Filter, RemoteStatus, Scrape}
}

// ParseType 작업 정의의 type 문자열을 Type으로 변환합니다.
//
// "remote-status", "remote_status", "remoteStatus"처럼 표기법이 달라도 같은 타입으로 인식합니다.
func ParseType(s string) (Type, error) {
	key := strings.ToLower(strcase.ToLowerCamel(strings.TrimSpace(s)))
	if t, ok := typeAliases[key]; ok {
		return t, nil
	}
	return Unknown, newErrUnknownType(s)
}
