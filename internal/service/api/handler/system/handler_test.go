package system

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/darkkaiser/job-dispatcher/internal/pkg/version"
	"github.com/darkkaiser/job-dispatcher/internal/service/api/constants"
	"github.com/darkkaiser/job-dispatcher/internal/service/api/model/system"
	"github.com/darkkaiser/job-dispatcher/internal/service/dispatch"
	"github.com/darkkaiser/job-dispatcher/internal/service/dispatch/job"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func call(t *testing.T, h echo.HandlerFunc, out any) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))

	return rec
}

func TestHealthCheckHandler(t *testing.T) {
	t.Parallel()

	d := dispatch.New()
	_, err := d.AddJobs(context.Background(), job.Definition{Type: "echo", Args: []any{"hi"}})
	require.NoError(t, err)
	_, err = d.CreateWorker(context.Background())
	require.NoError(t, err)

	var res system.HealthResponse
	rec := call(t, NewHandler(d, version.Info{}).HealthCheckHandler, &res)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, constants.HealthStatusHealthy, res.Status)
	assert.GreaterOrEqual(t, res.Uptime, int64(0))
	require.Contains(t, res.Dependencies, constants.DependencyDispatcher)
	assert.Equal(t, "workers: 1, jobs: 1", res.Dependencies[constants.DependencyDispatcher].Message)
}

func TestHealthCheckHandler_NoDispatcher(t *testing.T) {
	t.Parallel()

	var res system.HealthResponse
	call(t, NewHandler(nil, version.Info{}).HealthCheckHandler, &res)

	assert.Equal(t, constants.HealthStatusUnhealthy, res.Status)
	assert.Equal(t, constants.ErrMsgDispatcherNotActive, res.Dependencies[constants.DependencyDispatcher].Message)
}

func TestVersionHandler(t *testing.T) {
	t.Parallel()

	info := version.Info{
		Version:     "v1.2.3",
		Commit:      "f25b8bf",
		BuildDate:   "2026-10-01T00:00:00Z",
		BuildNumber: "42",
		GoVersion:   "go1.24.0",
		OS:          "linux",
		Arch:        "amd64",
	}

	var res system.VersionResponse
	call(t, NewHandler(dispatch.New(), info).VersionHandler, &res)

	assert.Equal(t, system.VersionResponse{
		Version:     "v1.2.3",
		Commit:      "f25b8bf",
		BuildDate:   "2026-10-01T00:00:00Z",
		BuildNumber: "42",
		GoVersion:   "go1.24.0",
		Platform:    "linux/amd64",
	}, res)
}
