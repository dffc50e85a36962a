// Package testutil 서비스 테스트에서 공통으로 사용하는 네트워크 도우미를 제공합니다.
package testutil

import (
	"crypto/tls"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// FreePort 테스트용으로 사용 가능한 임의의 TCP 포트를 반환합니다.
func FreePort(t testing.TB) int {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	return l.Addr().(*net.TCPAddr).Port
}

// WaitForHTTP url이 기대한 상태 코드로 응답할 때까지 대기합니다.
// 자체 서명 인증서를 쓰는 서버도 확인할 수 있도록 인증서 검증은 생략합니다.
func WaitForHTTP(t testing.TB, url string, wantStatus int, timeout time.Duration) {
	t.Helper()

	transport := &http.Transport{TLSClientConfig: &tls.Config{InsecureSkipVerify: true}} //nolint:gosec // 테스트 전용
	defer transport.CloseIdleConnections()

	client := &http.Client{Transport: transport, Timeout: time.Second}

	require.Eventually(t, func() bool {
		resp, err := client.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == wantStatus
	}, timeout, 20*time.Millisecond, "서버가 응답하지 않습니다: %s", url)
}
