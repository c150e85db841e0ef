package errors

import (
	stderrors "errors"
	"strings"

	"gorm.io/gorm"
)

// Resource 에러 메시지와 코드 매핑에 쓰는 리소스 이름
type Resource string

const (
	ResourceMember  Resource = "member"
	ResourceBoard   Resource = "board"
	ResourceComment Resource = "comment"
	ResourceReview  Resource = "review"
	ResourceLike    Resource = "like"
)

var notFoundCodes = map[Resource]string{
	ResourceMember:  MemberNotFound,
	ResourceBoard:   BoardNotFound,
	ResourceComment: CommentNotFound,
	ResourceReview:  ReviewNotFound,
	ResourceLike:    LikeNotFound,
}

// FromDB gorm/드라이버 에러를 타입 에러로 변환한다.
// key는 진단용으로 메시지에 포함되는 조회 키(id, email 등)이다.
func FromDB(err error, resource Resource, key interface{}) error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if stderrors.As(err, &appErr) {
		return err
	}

	// 1. GORM 기본 에러
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(resource, key)
	}
	if stderrors.Is(err, gorm.ErrDuplicatedKey) {
		return duplicate(resource, key)
	}

	errLower := strings.ToLower(err.Error())

	// 2. PostgreSQL(23505) / SQLite unique 위반
	if strings.Contains(errLower, "duplicate key") || strings.Contains(errLower, "unique constraint") {
		return duplicate(resource, key)
	}

	// 3. 존재하지 않는 참조 (23503)
	if strings.Contains(errLower, "foreign key constraint") {
		return &Error{
			Kind:    KindNotFound,
			Code:    ResourceNotFound,
			Message: "referenced " + string(resource) + " does not exist",
			Err:     err,
		}
	}

	return &Error{
		Kind:    KindInternal,
		Code:    InternalDatabaseError,
		Message: string(resource) + " storage failure",
		Err:     err,
	}
}

func notFound(resource Resource, key interface{}) *Error {
	code, ok := notFoundCodes[resource]
	if !ok {
		code = ResourceNotFound
	}
	return NotFound(code, "%s not found: %v", resource, key)
}

func duplicate(resource Resource, key interface{}) *Error {
	switch resource {
	case ResourceLike:
		return Conflict(LikeAlreadyExists, "like already exists: %v", key)
	case ResourceMember:
		return Conflict(MemberEmailExists, "member already exists: %v", key)
	default:
		return Conflict(ResourceAlreadyExists, "%s already exists: %v", resource, key)
	}
}
