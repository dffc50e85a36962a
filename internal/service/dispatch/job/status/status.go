// Package status 원격 상태 API를 한 번 조회하여 상태 코드를 사람이 읽을 수 있는 문구로 변환하는 작업을 제공합니다.
//
// 응답 본문은 다음 형태의 JSON을 기대합니다. 필드 경로는 Options로 바꿀 수 있습니다.
//
//	{"status": "good", "body": "Everything operating normally.", "created_on": "2024-01-02T03:04:05Z"}
package status

import (
	"context"
	"io"
	"time"

	apperrors "github.com/darkkaiser/job-dispatcher/internal/pkg/errors"
	"github.com/darkkaiser/job-dispatcher/internal/service/dispatch/fetcher"
	"github.com/darkkaiser/job-dispatcher/internal/service/dispatch/job"
	"github.com/darkkaiser/job-dispatcher/internal/service/dispatch/task"
	"github.com/tidwall/gjson"
)

// DefaultURL 상태 API의 기본 주소
const DefaultURL = "https://status.github.com/api/last-message.json"

const (
	LabelGood    = "All good!"
	LabelMinor   = "Minor outage"
	LabelMajor   = "Major outage"
	LabelUnknown = "Unknown status"
)

func init() {
	job.Register(job.RemoteStatus, NewFactory(Options{}))
}

// Options status 작업 생성 옵션입니다.
type Options struct {
	// URL 인자로 주소가 주어지지 않았을 때 조회할 기본 주소
	URL string

	// Fetcher 요청에 사용할 Fetcher. nil이면 Timeout으로 기본 체인을 구성합니다.
	Fetcher fetcher.Fetcher

	Timeout time.Duration

	// StatusPath, MessagePath, DatePath 응답 JSON에서 각 값을 읽을 gjson 경로
	StatusPath  string
	MessagePath string
	DatePath    string
}

func (o Options) withDefaults() Options {
	if o.URL == "" {
		o.URL = DefaultURL
	}
	if o.Fetcher == nil {
		o.Fetcher = fetcher.New(fetcher.Options{Timeout: o.Timeout})
	}
	if o.StatusPath == "" {
		o.StatusPath = "status"
	}
	if o.MessagePath == "" {
		o.MessagePath = "body"
	}
	if o.DatePath == "" {
		o.DatePath = "created_on"
	}
	return o
}

// Status 작업의 결과입니다.
type Status struct {
	Date    time.Time `json:"date"`
	Message string    `json:"message"`
	Status  string    `json:"status"`
}

// Runner 조회할 주소와 Fetcher를 보관합니다.
type Runner struct {
	url  string
	opts Options
}

var _ job.Runner = (*Runner)(nil)

// NewFactory args: [url string?]
func NewFactory(opts Options) job.Factory {
	opts = opts.withDefaults()

	return func(args []any) (job.Runner, error) {
		url := opts.URL
		if _, err := job.DecodeArg(args, 0, &url); err != nil {
			return nil, apperrors.Wrap(err, apperrors.InvalidInput, "url must be a string")
		}
		if url == "" {
			url = opts.URL
		}
		return &Runner{url: url, opts: opts}, nil
	}
}

// New 기본 옵션으로 url을 조회하는 Runner를 생성합니다.
func New(url string, opts Options) *Runner {
	opts = opts.withDefaults()
	if url == "" {
		url = opts.URL
	}
	return &Runner{url: url, opts: opts}
}

// NewTask 취소되면 진행 중인 HTTP 요청도 함께 중단됩니다.
func (r *Runner) NewTask(ctx context.Context) *task.Task {
	return task.Start(ctx, func(ctx context.Context) (any, error) {
		return r.fetch(ctx)
	})
}

func (r *Runner) fetch(ctx context.Context) (*Status, error) {
	resp, err := fetcher.Get(ctx, r.opts.Fetcher, r.url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ExecutionFailed, "상태 응답 본문을 읽지 못했습니다")
	}

	return r.parse(body)
}

func (r *Runner) parse(body []byte) (*Status, error) {
	if !gjson.ValidBytes(body) {
		return nil, apperrors.New(apperrors.ParsingFailed, "상태 응답이 올바른 JSON 형식이 아닙니다")
	}

	results := gjson.GetManyBytes(body, r.opts.StatusPath, r.opts.MessagePath, r.opts.DatePath)

	s := &Status{
		Message: results[1].String(),
		Status:  Label(results[0].String()),
	}
	if date := results[2]; date.Exists() {
		// 날짜 형식이 올바르지 않으면 zero time으로 둔다.
		s.Date = date.Time()
	}

	return s, nil
}

// Label 상태 코드를 사람이 읽을 수 있는 문구로 변환합니다.
func Label(code string) string {
	switch code {
	case "good":
		return LabelGood
	case "minor":
		return LabelMinor
	case "major":
		return LabelMajor
	}
	return LabelUnknown
}
