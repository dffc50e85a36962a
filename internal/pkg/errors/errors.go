// Package errors 작업 디스패처 전반에서 사용하는 구조화된 에러 타입을 제공합니다.
//
// 모든 에러는 ErrorType으로 분류되며, 디스패처의 에러 처리 정책은 이 분류를 기준으로 동작합니다.
//
//   - 검증 에러(InvalidInput): 잘못된 작업 ID, 형식이 잘못된 작업 정의, 알 수 없는 작업 타입, 인자 형태 오류
//   - 상태 에러(InvalidState, Conflict): 준비되지 않았거나 이미 파괴된 Worker, 이미 실행 중인 작업에 대한 요청
//   - 조회 에러(NotFound): 등록되지 않은 작업 ID 또는 Worker ID
//   - 실행 에러(ExecutionFailed, Unavailable, ParsingFailed, Timeout, Canceled): 작업 내부에서 발생한 실패
//
// 검증/상태/조회 에러는 해당 요청을 즉시 중단시키고, 실행 에러는 작업 단위로 격리되어
// 배치 결과에 집계됩니다.
//
// 사용 예시:
//
//	err := errors.New(errors.NotFound, "ID job-1 not in job queue")
//
//	if errors.Is(err, errors.NotFound) {
//	    // 조회 에러 처리
//	}
//
//	return errors.Wrap(err, errors.ExecutionFailed, "상태 조회 요청이 실패했습니다")
package errors

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// AppError 타입, 메시지, 원인 에러, 생성 위치의 스택 정보를 함께 보관하는 에러입니다.
type AppError struct {
	errType ErrorType
	message string
	cause   error
	stack   []StackFrame
}

// Type 에러의 타입을 반환합니다.
func (e *AppError) Type() ErrorType {
	return e.errType
}

// Message 원인 에러를 제외한 메시지만 반환합니다.
func (e *AppError) Message() string {
	return e.message
}

// Stack 에러 생성 시점의 스택 정보를 반환합니다.
func (e *AppError) Stack() []StackFrame {
	return e.stack
}

func (e *AppError) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("[%s] %s", e.errType, e.message)
	}
	return fmt.Sprintf("[%s] %s: %v", e.errType, e.message, e.cause)
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// Format %+v 사용 시 스택 정보와 원인 에러 체인을 함께 출력합니다.
func (e *AppError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			fmt.Fprintf(s, "[%s] %s", e.errType, e.message)

			// 스택은 체인의 가장 안쪽 AppError에서만 출력한다.
			var inner *AppError
			if e.cause == nil || !errors.As(e.cause, &inner) {
				e.writeStack(s)
			}

			if e.cause != nil {
				io.WriteString(s, "\nCaused by:\n")
				if f, ok := e.cause.(fmt.Formatter); ok {
					f.Format(s, verb)
				} else {
					fmt.Fprintf(s, "\t%v", e.cause)
				}
			}
			return
		}
		io.WriteString(s, e.Error())
	case 's':
		io.WriteString(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}

func (e *AppError) writeStack(w io.Writer) {
	if len(e.stack) == 0 {
		return
	}

	io.WriteString(w, "\nStack trace:")
	for _, frame := range e.stack {
		fn := frame.Function
		if idx := strings.LastIndex(fn, "/"); idx != -1 {
			fn = fn[idx+1:]
		}
		fmt.Fprintf(w, "\n\t%s:%d %s", frame.File, frame.Line, fn)
	}
}

// New 새로운 에러를 생성합니다.
func New(errType ErrorType, message string) error {
	return &AppError{
		errType: errType,
		message: message,
		stack:   captureStack(defaultCallerSkip),
	}
}

// Newf 포맷 문자열로 메시지를 구성하여 새로운 에러를 생성합니다.
func Newf(errType ErrorType, format string, args ...any) error {
	return &AppError{
		errType: errType,
		message: fmt.Sprintf(format, args...),
		stack:   captureStack(defaultCallerSkip),
	}
}

// Wrap 원인 에러에 타입과 메시지를 덧붙입니다. err가 nil이면 nil을 반환합니다.
func Wrap(err error, errType ErrorType, message string) error {
	if err == nil {
		return nil
	}
	return &AppError{
		errType: errType,
		message: message,
		cause:   err,
		stack:   captureStack(defaultCallerSkip),
	}
}

// Wrapf 포맷 문자열로 메시지를 구성하여 원인 에러를 감쌉니다. err가 nil이면 nil을 반환합니다.
func Wrapf(err error, errType ErrorType, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &AppError{
		errType: errType,
		message: fmt.Sprintf(format, args...),
		cause:   err,
		stack:   captureStack(defaultCallerSkip),
	}
}

// Is 에러 체인 안에 주어진 ErrorType의 AppError가 있는지 확인합니다.
func Is(err error, errType ErrorType) bool {
	for ; err != nil; err = errors.Unwrap(err) {
		if appErr, ok := err.(*AppError); ok && appErr.errType == errType {
			return true
		}
	}
	return false
}

// As 표준 errors.As의 별칭입니다.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// RootCause 에러 체인의 가장 안쪽 에러를 반환합니다.
func RootCause(err error) error {
	if err == nil {
		return nil
	}
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

// UnderlyingType 에러 체인에서 가장 안쪽에 위치한 AppError의 타입을 반환합니다.
// 체인에 AppError가 없으면 Unknown을 반환합니다.
//
// 여러 계층에서 래핑된 에러라도 최초 분류를 기준으로 HTTP 상태 코드나 로그 레벨을 결정할 때 사용합니다.
//
//	err := Wrap(New(NotFound, "ID job-1 not in job queue"), Internal, "작업 제거 실패")
//	UnderlyingType(err) // NotFound
func UnderlyingType(err error) ErrorType {
	t := Unknown
	for ; err != nil; err = errors.Unwrap(err) {
		if appErr, ok := err.(*AppError); ok {
			t = appErr.errType
		}
	}
	return t
}
