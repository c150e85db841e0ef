package service

import (
	"context"

	"github.com/ikkim/camping-backend/internal/app/model"
	"github.com/ikkim/camping-backend/internal/app/repository"
	apperrors "github.com/ikkim/camping-backend/internal/errors"
	"github.com/ikkim/camping-backend/pkg/logger"
)

// MemberService 회원 등록/조회. 인증은 외부 계층이 담당한다.
type MemberService interface {
	Register(ctx context.Context, member *model.Member) error
	GetByEmail(ctx context.Context, email string) (*model.Member, error)
}

type memberService struct {
	memberRepo repository.MemberRepository
}

func NewMemberService(memberRepo repository.MemberRepository) MemberService {
	return &memberService{memberRepo: memberRepo}
}

// Register 새 회원은 GREEN 등급으로 시작한다
func (s *memberService) Register(ctx context.Context, member *model.Member) error {
	member.MemberGrade = model.GradeGreen
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return storageError(err, "register_member", apperrors.ResourceMember, member.Email)
	}

	logger.Info("Member registered", map[string]interface{}{
		"member_id": member.ID,
	})
	return nil
}

func (s *memberService) GetByEmail(ctx context.Context, email string) (*model.Member, error) {
	return findMemberByEmail(ctx, s.memberRepo, "get_member", email)
}
