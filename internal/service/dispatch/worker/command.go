package worker

import (
	"context"
	"strings"

	"github.com/darkkaiser/job-dispatcher/internal/service/dispatch/job"
	"github.com/go-viper/mapstructure/v2"
	"github.com/iancoleman/strcase"
)

// Command Exec로 실행할 수 있는 Worker 명령입니다.
type Command int

const (
	CommandInitialize Command = iota + 1
	CommandAddJob
	CommandRemoveJob
	CommandRunAllJobs
	CommandRunJob
	CommandDestroy
)

var commandNames = map[Command]string{
	CommandInitialize: "initialize",
	CommandAddJob:     "addJob",
	CommandRemoveJob:  "removeJob",
	CommandRunAllJobs: "runAllJobs",
	CommandRunJob:     "runJob",
	CommandDestroy:    "destroy",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseCommand "addJob", "add_job", "add-job"을 모두 CommandAddJob으로 인식합니다.
func ParseCommand(s string) (Command, error) {
	name := strcase.ToLowerCamel(strings.TrimSpace(s))
	for c, n := range commandNames {
		if strings.EqualFold(n, name) {
			return c, nil
		}
	}
	return 0, newErrUnknownCommand(s)
}

// ExecName 이름으로 지정된 명령을 실행합니다. 알 수 없는 명령이면 error 이벤트를 발행합니다.
func (w *Worker) ExecName(ctx context.Context, name string, args ...any) (any, error) {
	cmd, err := ParseCommand(name)
	if err != nil {
		w.emit(Event{Type: EventError, Err: err})
		return nil, err
	}
	return w.Exec(ctx, cmd, args...)
}

// Exec Worker의 단일 명령 진입점입니다.
//
//	initialize
//	addJob     id string, src job.Source | map[string]any
//	removeJob  id string
//	runJob     id string            → job.Snapshot
//	runAllJobs                      → map[string]job.Snapshot
//	destroy
func (w *Worker) Exec(ctx context.Context, cmd Command, args ...any) (any, error) {
	switch cmd {
	case CommandInitialize:
		return nil, w.Initialize(ctx)

	case CommandAddJob:
		if len(args) != 2 {
			return nil, newErrInvalidArgs(cmd, "expected (id, job), got %d arguments", len(args))
		}
		id, ok := args[0].(string)
		if !ok {
			return nil, newErrInvalidArgs(cmd, "id must be a string")
		}
		src, err := toSource(args[1])
		if err != nil {
			return nil, newErrInvalidArgs(cmd, "%s", err)
		}
		if err := w.AddJob(ctx, id, src); err != nil {
			return nil, err
		}
		return id, nil

	case CommandRemoveJob, CommandRunJob:
		if len(args) != 1 {
			return nil, newErrInvalidArgs(cmd, "expected (id), got %d arguments", len(args))
		}
		id, ok := args[0].(string)
		if !ok {
			return nil, newErrInvalidArgs(cmd, "id must be a string")
		}
		if cmd == CommandRemoveJob {
			return nil, w.RemoveJob(ctx, id)
		}
		return w.RunJob(ctx, id)

	case CommandRunAllJobs:
		return w.RunAllJobs(ctx)

	case CommandDestroy:
		return nil, w.Destroy(ctx)
	}

	err := newErrUnknownCommand(cmd.String())
	w.emit(Event{Type: EventError, Err: err})

	return nil, err
}

// toSource 명령 인자로 전달된 작업 정의를 job.Source로 변환한다.
func toSource(v any) (job.Source, error) {
	switch src := v.(type) {
	case nil:
		return nil, nil
	case job.Source:
		return src, nil
	case map[string]any:
		if args, ok := src["args"]; ok && args != nil {
			if _, isSlice := args.([]any); !isSlice {
				return nil, job.ErrArgsNotArray
			}
		}

		var def job.Definition
		if err := mapstructure.Decode(src, &def); err != nil {
			return nil, err
		}
		return def, nil
	}
	return nil, job.ErrJobRequired
}
