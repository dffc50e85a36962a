package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/darkkaiser/job-dispatcher/internal/config"
	"github.com/darkkaiser/job-dispatcher/internal/pkg/version"
	"github.com/darkkaiser/job-dispatcher/internal/service/dispatch"
	"github.com/darkkaiser/job-dispatcher/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, message string) error {
	return m.Called(ctx, message).Error(0)
}

func TestNewService_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { NewService(nil, dispatch.New(), nil, version.Info{}) })
	assert.Panics(t, func() { NewService(&config.AppConfig{}, nil, nil, version.Info{}) })
	assert.NotPanics(t, func() { NewService(&config.AppConfig{}, dispatch.New(), nil, version.Info{}) })
}

func TestService_StartAndShutdown(t *testing.T) {
	port := testutil.FreePort(t)

	appConfig := &config.AppConfig{}
	appConfig.API.ListenPort = port

	s := NewService(appConfig, dispatch.New(), nil, version.Info{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	require.NoError(t, s.Start(ctx, &wg))

	// 이미 실행 중이라면 WaitGroup만 정리하고 반환한다.
	wg.Add(1)
	require.NoError(t, s.Start(ctx, &wg))

	testutil.WaitForHTTP(t, fmt.Sprintf("http://127.0.0.1:%d/health", port), http.StatusOK, 3*time.Second)

	cancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("API 서비스가 종료되지 않았습니다")
	}

	s.runningMu.Lock()
	assert.False(t, s.running)
	s.runningMu.Unlock()
}

func TestService_StartTLS(t *testing.T) {
	port := testutil.FreePort(t)
	certFile, keyFile := testutil.SelfSignedCert(t)

	appConfig := &config.AppConfig{}
	appConfig.API.ListenPort = port
	appConfig.API.TLSServer = true
	appConfig.API.TLSCertFile = certFile
	appConfig.API.TLSKeyFile = keyFile

	s := NewService(appConfig, dispatch.New(), nil, version.Info{})

	ctx, cancel := context.WithCancel(context.Background())

	var wg sync.WaitGroup
	wg.Add(1)
	require.NoError(t, s.Start(ctx, &wg))

	testutil.WaitForHTTP(t, fmt.Sprintf("https://127.0.0.1:%d/health", port), http.StatusOK, 3*time.Second)

	cancel()
	wg.Wait()
}

func TestService_NotifiesOnServerFailure(t *testing.T) {
	// 이미 사용 중인 포트로 시작하면 서버가 즉시 종료되어야 한다.
	l, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer l.Close()

	appConfig := &config.AppConfig{}
	appConfig.API.ListenPort = l.Addr().(*net.TCPAddr).Port

	n := &mockNotifier{}
	n.On("Notify", mock.Anything, mock.AnythingOfType("string")).Return(nil).Once()

	s := NewService(appConfig, dispatch.New(), n, version.Info{})

	var wg sync.WaitGroup
	wg.Add(1)
	require.NoError(t, s.Start(context.Background(), &wg))
	wg.Wait()

	n.AssertExpectations(t)
}
