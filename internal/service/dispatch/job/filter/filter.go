// Package filter 목록에서 주어진 값과 일치하는 항목만 골라내는 작업을 제공합니다.
//
// 값이 객체라면 항목이 그 객체의 모든 필드를 같은 값으로 가지고 있을 때 일치로 봅니다(부분 필드 비교).
// 그 밖의 값(bool, 숫자, 문자열)은 동등 비교합니다.
//
//	{"type": "filter", "args": [[{"type":"fruit","name":"apple"}, {"type":"vegetable","name":"potato"}], {"type":"fruit"}]}
package filter

import (
	"context"
	"reflect"

	apperrors "github.com/darkkaiser/job-dispatcher/internal/pkg/errors"
	"github.com/darkkaiser/job-dispatcher/internal/service/dispatch/job"
	"github.com/darkkaiser/job-dispatcher/internal/service/dispatch/task"
)

var (
	ErrExpectedArray = apperrors.New(apperrors.InvalidInput, "Expected argument to be array")
	ErrExpectedValue = apperrors.New(apperrors.InvalidInput, "Expected value")
)

func init() {
	job.Register(job.Filter, NewFactory())
}

// Runner 필터링할 목록과 비교 값을 보관합니다.
type Runner struct {
	items []any
	value any
}

var _ job.Runner = (*Runner)(nil)

// NewFactory args: [items array, value bool|number|string|object]
func NewFactory() job.Factory {
	return func(args []any) (job.Runner, error) {
		if len(args) == 0 {
			return nil, ErrExpectedArray
		}
		items, ok := toSlice(args[0])
		if !ok {
			return nil, ErrExpectedArray
		}

		if len(args) < 2 || !isValue(args[1]) {
			return nil, ErrExpectedValue
		}

		return New(items, args[1]), nil
	}
}

// New 목록과 비교 값으로 Runner를 생성합니다.
func New(items []any, value any) *Runner {
	return &Runner{items: items, value: value}
}

// NewTask 항목 사이마다 취소 여부를 확인하며 일치하는 항목을 새 슬라이스로 모읍니다.
func (r *Runner) NewTask(ctx context.Context) *task.Task {
	match := r.matcher()

	return task.Start(ctx, func(ctx context.Context) (any, error) {
		result := make([]any, 0, len(r.items))
		for _, item := range r.items {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if match(item) {
				result = append(result, item)
			}
		}
		return result, nil
	})
}

func (r *Runner) matcher() func(item any) bool {
	if fields, ok := toMap(r.value); ok {
		return func(item any) bool {
			m, ok := toMap(item)
			if !ok {
				return false
			}
			for k, want := range fields {
				got, exists := m[k]
				if !exists || !deepEqual(got, want) {
					return false
				}
			}
			return true
		}
	}

	return func(item any) bool {
		return deepEqual(item, r.value)
	}
}

func isValue(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.Map, reflect.Slice, reflect.Array, reflect.Struct, reflect.Pointer:
		return true
	}
	return false
}
