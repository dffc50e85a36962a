package handler

import (
	"net/http"

	"github.com/darkkaiser/job-dispatcher/internal/service/api/constants"
	"github.com/darkkaiser/job-dispatcher/internal/service/api/httputil"
	"github.com/darkkaiser/job-dispatcher/internal/service/api/model/response"
	"github.com/darkkaiser/job-dispatcher/internal/service/api/v1/model/request"
	applog "github.com/darkkaiser/job-dispatcher/pkg/log"
	"github.com/labstack/echo/v4"
)

// AddJobsHandler godoc
// @Summary 작업 등록
// @Description 작업 정의를 큐에 등록하고 입력 순서대로 발급된 작업 ID를 반환합니다.
// @Description 등록된 작업은 아직 어떤 Worker에도 할당되지 않은 상태입니다.
// @Tags Job
// @Accept json
// @Produce json
// @Param jobs body request.JobsRequest true "작업 정의 목록"
// @Success 200 {object} response.JobIDsResponse
// @Failure 400 {object} response.ErrorResponse "잘못된 요청"
// @Router /api/v1/jobs [post]
func (h *Handler) AddJobsHandler(c echo.Context) error {
	req := new(request.JobsRequest)
	if err := bind(c, req); err != nil {
		return err
	}

	ids, err := h.dispatcher.AddJobs(c.Request().Context(), req.Sources()...)
	if err != nil {
		return err
	}

	h.log(c).WithField("job_ids", ids).Info("작업 등록 요청 성공")

	return c.JSON(http.StatusOK, response.JobIDsResponse{JobIDs: ids})
}

// ListJobsHandler godoc
// @Summary 작업 목록 조회
// @Description 큐에 등록된 작업과 할당된 Worker ID를 등록 순서대로 반환합니다.
// @Tags Job
// @Produce json
// @Success 200 {object} response.EntriesResponse
// @Router /api/v1/jobs [get]
func (h *Handler) ListJobsHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, response.EntriesResponse{Jobs: h.dispatcher.Entries()})
}

// RemoveJobsHandler godoc
// @Summary 작업 제거
// @Description Worker에 할당되지 않은 작업을 큐에서 제거합니다. 하나라도 제거할 수 없다면 아무것도 제거하지 않습니다.
// @Tags Job
// @Accept json
// @Produce json
// @Param job_ids body request.JobIDsRequest true "작업 ID 목록"
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse "존재하지 않는 작업"
// @Failure 409 {object} response.ErrorResponse "Worker에 할당된 작업"
// @Router /api/v1/jobs [delete]
func (h *Handler) RemoveJobsHandler(c echo.Context) error {
	req := new(request.JobIDsRequest)
	if err := bind(c, req); err != nil {
		return err
	}

	if err := h.dispatcher.RemoveJobs(c.Request().Context(), req.JobIDs); err != nil {
		return err
	}

	return httputil.Success(c)
}

// KillJobHandler godoc
// @Summary 실행 중인 작업 중단
// @Description Worker에서 실행 중인 작업의 중단을 요청합니다. 중단은 비동기로 처리됩니다.
// @Tags Job
// @Produce json
// @Param id path string true "작업 ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse "존재하지 않는 작업"
// @Failure 409 {object} response.ErrorResponse "실행 중이 아닌 작업"
// @Router /api/v1/jobs/{id}/kill [post]
func (h *Handler) KillJobHandler(c echo.Context) error {
	jobID := c.Param(constants.ParamJobID)

	if err := h.dispatcher.KillJob(c.Request().Context(), jobID); err != nil {
		return err
	}

	h.log(c).WithFields(applog.Fields{"job_id": jobID}).Info("작업 중단 요청 성공")

	return httputil.Success(c)
}

// RunJobsHandler godoc
// @Summary 작업 일회성 실행
// @Description 전용 Worker를 만들어 작업을 모두 실행한 뒤 Worker와 작업을 정리합니다.
// @Description 결과는 입력 순서대로 {index, result} 또는 {index, error} 형태로 반환됩니다.
// @Description
// @Description ```bash
// @Description curl -X POST "http://localhost:2443/api/v1/run" \
// @Description   -H "Content-Type: application/json" \
// @Description   -d '{"jobs":[{"type":"echo","args":["I love bananas.",1000]}]}'
// @Description ```
// @Tags Job
// @Accept json
// @Produce json
// @Param jobs body request.JobsRequest true "작업 정의 목록"
// @Success 200 {object} response.RunJobsResponse
// @Failure 400 {object} response.ErrorResponse "잘못된 요청"
// @Router /api/v1/run [post]
func (h *Handler) RunJobsHandler(c echo.Context) error {
	req := new(request.JobsRequest)
	if err := bind(c, req); err != nil {
		return err
	}

	results, err := h.dispatcher.RunJobs(c.Request().Context(), req.Sources())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.RunJobsResponse{Results: results})
}
