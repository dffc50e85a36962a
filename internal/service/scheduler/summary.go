package scheduler

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/darkkaiser/job-dispatcher/internal/config"
	apperrors "github.com/darkkaiser/job-dispatcher/internal/pkg/errors"
	"github.com/darkkaiser/job-dispatcher/internal/service/dispatch"
	"github.com/darkkaiser/job-dispatcher/pkg/strutil"
)

// maxResultLength 알림에 포함할 작업 결과 한 건의 최대 길이(바이트)
const maxResultLength = 300

func countResults(results []dispatch.RunResult) (succeeded, failed int) {
	for _, r := range results {
		if r.Error != nil {
			failed++
		} else {
			succeeded++
		}
	}
	return succeeded, failed
}

// formatSummary 예약 실행 결과를 텔레그램 HTML 메시지로 만듭니다.
//
//	<b>[nightly]</b> 예약 실행 완료 (성공 1 / 실패 1)
//	#0 echo: "I love bananas."
//	#1 filter: [InvalidInput] Expected value
func formatSummary(sc config.ScheduleConfig, results []dispatch.RunResult) string {
	succeeded, failed := countResults(results)

	var sb strings.Builder
	fmt.Fprintf(&sb, "<b>[%s]</b> 예약 실행 완료 (성공 %d / 실패 %d)", html.EscapeString(sc.ID), succeeded, failed)

	for _, r := range results {
		jobType := ""
		if r.Index >= 0 && r.Index < len(sc.Jobs) {
			jobType = sc.Jobs[r.Index].Type
		}

		var line string
		if r.Error != nil {
			p := apperrors.ToPayload(r.Error)
			line = fmt.Sprintf("[%s] %s", p.Type, p.Message)
		} else {
			line = formatResult(r.Result)
		}

		fmt.Fprintf(&sb, "\n#%d %s: %s", r.Index, html.EscapeString(jobType), html.EscapeString(strutil.Truncate(line, maxResultLength)))
	}

	return sb.String()
}

func formatFailure(scheduleID string, err error) string {
	p := apperrors.ToPayload(err)
	return fmt.Sprintf("<b>[%s]</b> 예약 실행 실패\n[%s] %s", html.EscapeString(scheduleID), p.Type, html.EscapeString(p.Message))
}

func formatResult(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
