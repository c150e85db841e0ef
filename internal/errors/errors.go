package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind 에러 분류. HTTP 상태 코드 매핑의 기준이 된다.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindInvalidArgument
	KindForbidden
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindForbidden:
		return "forbidden"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error 서비스 계층이 반환하는 타입 에러
type Error struct {
	Kind    Kind
	Code    string // codes.go 참조
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound 조회 대상이 없을 때. 메시지에 조회 키를 포함한다.
func NotFound(code, format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: fmt.Sprintf(format, args...)}
}

// InvalidArgument 입력 범위 위반. 메시지에 위반한 제약을 적는다.
func InvalidArgument(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidArgument, Code: ValidationInvalidRange, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(code, message string) *Error {
	return &Error{Kind: KindForbidden, Code: code, Message: message}
}

func Conflict(code, format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: fmt.Sprintf(format, args...)}
}

// Internal 예상하지 못한 저장소 오류를 감싼다
func Internal(err error, format string, args ...interface{}) *Error {
	return &Error{Kind: KindInternal, Code: InternalServerError, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf 에러 체인에서 Kind를 찾는다. 타입 에러가 아니면 KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind err가 주어진 Kind의 타입 에러인지 확인
func IsKind(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	return KindOf(err) == kind
}

// CodeOf 에러 체인에서 코드를 찾는다
func CodeOf(err error) string {
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return InternalServerError
}
