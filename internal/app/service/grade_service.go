package service

import (
	"context"
	"time"

	"github.com/ikkim/camping-backend/internal/app/model"
	"github.com/ikkim/camping-backend/internal/app/repository"
	apperrors "github.com/ikkim/camping-backend/internal/errors"
	"github.com/ikkim/camping-backend/internal/metrics"
	"github.com/ikkim/camping-backend/pkg/logger"
)

// GradeService 회원 등급 배치
type GradeService interface {
	// PromoteWeekly 작성 게시글이 받은 좋아요 합계로 전 회원 등급을 다시 계산한다.
	// 등급이 바뀐 회원 수를 반환한다.
	PromoteWeekly(ctx context.Context) (int, error)
}

type gradeService struct {
	memberRepo repository.MemberRepository
}

func NewGradeService(memberRepo repository.MemberRepository) GradeService {
	return &gradeService{memberRepo: memberRepo}
}

func (s *gradeService) PromoteWeekly(ctx context.Context) (int, error) {
	start := time.Now()

	totals, err := s.memberRepo.SumBoardLikesByOwner(ctx)
	if err != nil {
		return 0, storageError(err, "promote_weekly", apperrors.ResourceBoard, "like totals")
	}
	likesByMember := make(map[uint]int64, len(totals))
	for _, total := range totals {
		likesByMember[total.MemberID] = total.TotalLikes
	}

	members, err := s.memberRepo.ListAll(ctx)
	if err != nil {
		return 0, storageError(err, "promote_weekly", apperrors.ResourceMember, "all")
	}

	var changes []repository.GradeChange
	for _, member := range members {
		// 게시글이 없는 회원은 0
		grade := model.GradeForLikes(likesByMember[member.ID])
		if grade != member.MemberGrade {
			changes = append(changes, repository.GradeChange{
				MemberID: member.ID,
				From:     member.MemberGrade,
				To:       grade,
			})
		}
	}

	if err := s.memberRepo.UpdateGrades(ctx, changes); err != nil {
		return 0, storageError(err, "promote_weekly", apperrors.ResourceMember, "grades")
	}

	elapsed := time.Since(start)
	metrics.RecordGradeRun(len(changes), elapsed)
	logger.Info("Member grades recomputed", map[string]interface{}{
		"members":  len(members),
		"changed":  len(changes),
		"duration": elapsed.String(),
	})
	return len(changes), nil
}
