package handler

import (
	"net/http"
	"strconv"

	"github.com/darkkaiser/job-dispatcher/internal/service/api/constants"
	"github.com/darkkaiser/job-dispatcher/internal/service/api/httputil"
	"github.com/darkkaiser/job-dispatcher/internal/service/api/model/response"
	"github.com/darkkaiser/job-dispatcher/internal/service/api/v1/model/request"
	applog "github.com/darkkaiser/job-dispatcher/pkg/log"
	"github.com/labstack/echo/v4"
)

// CreateWorkerHandler godoc
// @Summary Worker 생성
// @Description 새 Worker를 만들고 초기화가 끝나면 Worker ID를 반환합니다.
// @Tags Worker
// @Produce json
// @Success 200 {object} response.WorkerResponse
// @Router /api/v1/workers [post]
func (h *Handler) CreateWorkerHandler(c echo.Context) error {
	workerID, err := h.dispatcher.CreateWorker(c.Request().Context())
	if err != nil {
		return err
	}

	h.log(c).WithField("worker_id", workerID).Info("Worker 생성 요청 성공")

	return c.JSON(http.StatusOK, response.WorkerResponse{WorkerID: workerID})
}

// ListWorkersHandler godoc
// @Summary Worker 목록 조회
// @Tags Worker
// @Produce json
// @Success 200 {object} response.WorkersResponse
// @Router /api/v1/workers [get]
func (h *Handler) ListWorkersHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, response.WorkersResponse{WorkerIDs: h.dispatcher.WorkerIDs()})
}

// GetWorkerJobsHandler godoc
// @Summary Worker에 할당된 작업 조회
// @Tags Worker
// @Produce json
// @Param id path string true "Worker ID"
// @Success 200 {object} response.JobIDsResponse
// @Failure 404 {object} response.ErrorResponse "존재하지 않는 Worker"
// @Router /api/v1/workers/{id}/jobs [get]
func (h *Handler) GetWorkerJobsHandler(c echo.Context) error {
	ids, err := h.dispatcher.GetWorkerJobIDs(c.Param(constants.ParamWorkerID))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.JobIDsResponse{JobIDs: ids})
}

// AddJobsToWorkerHandler godoc
// @Summary Worker에 작업 할당
// @Description 큐에 등록된 작업을 Worker에 할당합니다. 하나라도 실패하면 아무것도 할당하지 않습니다.
// @Tags Worker
// @Accept json
// @Produce json
// @Param id path string true "Worker ID"
// @Param job_ids body request.JobIDsRequest true "작업 ID 목록"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse "잘못된 작업 정의"
// @Failure 404 {object} response.ErrorResponse "존재하지 않는 Worker 또는 작업"
// @Failure 409 {object} response.ErrorResponse "이미 할당된 작업"
// @Router /api/v1/workers/{id}/jobs [put]
func (h *Handler) AddJobsToWorkerHandler(c echo.Context) error {
	req := new(request.JobIDsRequest)
	if err := bind(c, req); err != nil {
		return err
	}

	workerID := c.Param(constants.ParamWorkerID)
	if err := h.dispatcher.AddJobsToWorker(c.Request().Context(), workerID, req.JobIDs); err != nil {
		return err
	}

	h.log(c).WithFields(applog.Fields{
		"worker_id": workerID,
		"job_ids":   req.JobIDs,
	}).Info("Worker 작업 할당 요청 성공")

	return httputil.Success(c)
}

// RemoveJobsFromWorkerHandler godoc
// @Summary Worker에서 작업 회수
// @Tags Worker
// @Accept json
// @Produce json
// @Param id path string true "Worker ID"
// @Param job_ids body request.JobIDsRequest true "작업 ID 목록"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse "Worker에 할당되지 않은 작업"
// @Failure 409 {object} response.ErrorResponse "실행 중인 작업"
// @Router /api/v1/workers/{id}/jobs [delete]
func (h *Handler) RemoveJobsFromWorkerHandler(c echo.Context) error {
	req := new(request.JobIDsRequest)
	if err := bind(c, req); err != nil {
		return err
	}

	if err := h.dispatcher.RemoveJobsFromWorker(c.Request().Context(), c.Param(constants.ParamWorkerID), req.JobIDs); err != nil {
		return err
	}

	return httputil.Success(c)
}

// RunWorkerJobsHandler godoc
// @Summary Worker 작업 일괄 실행
// @Description Worker에 할당된 작업을 모두 실행하고 done, error, killed로 분류된 결과를 큐 순서대로 반환합니다.
// @Tags Worker
// @Produce json
// @Param id path string true "Worker ID"
// @Success 200 {object} dispatch.Aggregate
// @Failure 404 {object} response.ErrorResponse "존재하지 않는 Worker"
// @Router /api/v1/workers/{id}/run [post]
func (h *Handler) RunWorkerJobsHandler(c echo.Context) error {
	agg, err := h.dispatcher.RunAllWorkerJobs(c.Request().Context(), c.Param(constants.ParamWorkerID))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, agg)
}

// GetJobStateHandler godoc
// @Summary Worker 작업 상태 조회
// @Tags Worker
// @Produce json
// @Param id path string true "Worker ID"
// @Param job_id path string true "작업 ID"
// @Success 200 {object} job.Snapshot
// @Failure 404 {object} response.ErrorResponse "존재하지 않는 Worker 또는 작업"
// @Router /api/v1/workers/{id}/jobs/{job_id} [get]
func (h *Handler) GetJobStateHandler(c echo.Context) error {
	w, err := h.dispatcher.GetWorker(c.Param(constants.ParamWorkerID))
	if err != nil {
		return err
	}

	snapshot, err := w.JobState(c.Param("job_id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, snapshot)
}

// DestroyWorkerHandler godoc
// @Summary Worker 파괴
// @Description 할당된 작업을 회수하고 Worker를 파괴합니다.
// @Description 실행 중인 작업이 있으면 409로 실패하며, force=true이면 실행 중인 작업을 중단시킨 뒤 파괴합니다.
// @Tags Worker
// @Produce json
// @Param id path string true "Worker ID"
// @Param force query bool false "실행 중인 작업 강제 중단 여부"
// @Success 200 {object} response.WorkerResponse
// @Failure 404 {object} response.ErrorResponse "존재하지 않는 Worker"
// @Failure 409 {object} response.ErrorResponse "실행 중인 작업 존재"
// @Router /api/v1/workers/{id} [delete]
func (h *Handler) DestroyWorkerHandler(c echo.Context) error {
	force := false
	if v := c.QueryParam(constants.QueryForce); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return httputil.NewBadRequestError(constants.ErrMsgInvalidForceQuery)
		}
		force = parsed
	}

	workerID := c.Param(constants.ParamWorkerID)
	destroy := h.dispatcher.DestroyWorker
	if force {
		destroy = h.dispatcher.DestroyWorkerForce
	}

	id, err := destroy(c.Request().Context(), workerID)
	if err != nil {
		return err
	}

	h.log(c).WithFields(applog.Fields{
		"worker_id": id,
		"force":     force,
	}).Info("Worker 파괴 요청 성공")

	return c.JSON(http.StatusOK, response.WorkerResponse{WorkerID: id})
}
