package job

import (
	"encoding/json"

	apperrors "github.com/darkkaiser/job-dispatcher/internal/pkg/errors"
)

// Snapshot 특정 시점의 작업 상태입니다.
//
// 실행이 끝난 스냅샷에서는 IsDone, IsError, IsKilled 중 최대 하나만 참입니다.
type Snapshot struct {
	Error     error
	IsDone    bool
	IsError   bool
	IsKilled  bool
	IsRunning bool
	Result    any
	RunCount  int
}

type snapshotJSON struct {
	Error     *apperrors.Payload `json:"error"`
	IsDone    bool               `json:"is_done"`
	IsError   bool               `json:"is_error"`
	IsKilled  bool               `json:"is_killed"`
	IsRunning bool               `json:"is_running"`
	Result    any                `json:"result"`
	RunCount  int                `json:"run_count"`
}

// MarshalJSON 에러는 스택 정보 없이 {type, message} 형태로 직렬화합니다.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(snapshotJSON{
		Error:     apperrors.ToPayload(s.Error),
		IsDone:    s.IsDone,
		IsError:   s.IsError,
		IsKilled:  s.IsKilled,
		IsRunning: s.IsRunning,
		Result:    s.Result,
		RunCount:  s.RunCount,
	})
}

func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var v snapshotJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	*s = Snapshot{
		IsDone:    v.IsDone,
		IsError:   v.IsError,
		IsKilled:  v.IsKilled,
		IsRunning: v.IsRunning,
		Result:    v.Result,
		RunCount:  v.RunCount,
	}
	if v.Error != nil {
		s.Error = apperrors.FromPayload(v.Error)
	}

	return nil
}
