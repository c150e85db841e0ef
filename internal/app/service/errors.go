package service

import (
	"context"
	"fmt"

	"github.com/ikkim/camping-backend/internal/app/model"
	"github.com/ikkim/camping-backend/internal/app/repository"
	apperrors "github.com/ikkim/camping-backend/internal/errors"
	"github.com/ikkim/camping-backend/pkg/logger"
)

// storageError 저장소 에러를 타입 에러로 바꾼다. 예상하지 못한 실패는 여기서 로깅한다.
func storageError(err error, op string, resource apperrors.Resource, key interface{}) error {
	translated := apperrors.FromDB(err, resource, key)
	if apperrors.IsKind(translated, apperrors.KindInternal) {
		logger.Error("Storage operation failed", err, map[string]interface{}{
			"op":       op,
			"resource": string(resource),
			"key":      fmt.Sprint(key),
		})
	}
	return translated
}

// findMemberByEmail 이메일로 회원 조회. 없으면 NotFound (메시지에 이메일 포함).
func findMemberByEmail(ctx context.Context, repo repository.MemberRepository, op, email string) (*model.Member, error) {
	member, err := repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, storageError(err, op, apperrors.ResourceMember, email)
	}
	return member, nil
}

func ownerOnly(action string, resource apperrors.Resource, id uint) error {
	return apperrors.Forbidden(apperrors.AuthzOwnerOnly,
		fmt.Sprintf("only the author can %s %s %d", action, resource, id))
}
