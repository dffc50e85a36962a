// Package idgen 작업과 Worker에 부여하는 고유 식별자를 생성합니다.
//
// ID는 "접두사-[타임스탬프(Base62)][시퀀스(Base62, 6자리 고정)]" 형태이며
// 같은 Generator에서 생성된 ID는 문자열 정렬 순서가 생성 순서와 대략 일치합니다.
//
//	job-2Xk9pL3m000001
package idgen

import (
	"strings"
	"sync/atomic"
	"time"
)

const (
	// base62Chars ASCII 순서(0-9, A-Z, a-z)를 따르므로 사전순 비교가 수치 비교와 일치한다.
	base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	base62Len   = int64(len(base62Chars))

	seqLength = 6
)

const (
	JobPrefix    = "job"
	WorkerPrefix = "worker"
)

// Generator 접두사가 붙은 고유 ID를 생성합니다. 여러 고루틴에서 동시에 사용해도 안전합니다.
type Generator struct {
	prefix  string
	counter atomic.Uint32
	now     func() time.Time
}

// New prefix로 시작하는 ID를 생성하는 Generator를 반환합니다.
func New(prefix string) *Generator {
	return &Generator{prefix: prefix, now: time.Now}
}

// Next 새로운 ID를 생성합니다.
func (g *Generator) Next() string {
	ts := g.now().UnixNano()
	seq := g.counter.Add(1)

	b := make([]byte, 0, len(g.prefix)+1+18)
	b = append(b, g.prefix...)
	b = append(b, '-')
	b = appendBase62(b, ts)
	b = appendBase62FixedLength(b, int64(seq), seqLength)

	return string(b)
}

// Valid id가 이 Generator의 접두사를 가지고 있는지 확인합니다.
func (g *Generator) Valid(id string) bool {
	rest, ok := strings.CutPrefix(id, g.prefix+"-")
	return ok && len(rest) > seqLength
}

func appendBase62(dst []byte, num int64) []byte {
	if num == 0 {
		return append(dst, base62Chars[0])
	}
	if num < 0 {
		num = -num
	}

	var temp [20]byte
	i := len(temp)
	for num > 0 {
		i--
		temp[i] = base62Chars[num%base62Len]
		num /= base62Len
	}

	return append(dst, temp[i:]...)
}

// appendBase62FixedLength 앞자리를 '0'으로 채워 length 자리로 맞춘다. 범위를 넘는 상위 자리는 버린다.
func appendBase62FixedLength(dst []byte, num int64, length int) []byte {
	if num < 0 {
		num = -num
	}

	start := len(dst)
	for i := 0; i < length; i++ {
		dst = append(dst, '0')
	}
	for i := length - 1; i >= 0 && num > 0; i-- {
		dst[start+i] = base62Chars[num%base62Len]
		num /= base62Len
	}

	return dst
}
