package service

import (
	"context"
	"time"

	"github.com/ikkim/camping-backend/internal/app/model"
	"github.com/ikkim/camping-backend/internal/app/repository"
	apperrors "github.com/ikkim/camping-backend/internal/errors"
)

// MemberRankService 기간 내 받은 좋아요 기준 회원 순위
type MemberRankService interface {
	TopMembersInWindow(ctx context.Context, start, end time.Time) ([]model.MemberRankItem, error)
	TopMembersInWindowLimit(ctx context.Context, start, end time.Time, limit int) ([]model.MemberRankItem, error)
	TopMembersLastWeek(ctx context.Context, limit int) ([]model.MemberRankItem, error)
}

type memberRankService struct {
	memberRepo repository.MemberRepository
	now        func() time.Time
	window     time.Duration
}

// NewMemberRankService now가 nil이면 time.Now, window가 0 이하면 7일
func NewMemberRankService(memberRepo repository.MemberRepository, now func() time.Time, window time.Duration) MemberRankService {
	if now == nil {
		now = time.Now
	}
	if window <= 0 {
		window = DefaultRankingWindow
	}
	return &memberRankService{memberRepo: memberRepo, now: now, window: window}
}

// TopMembersInWindow [start, end] 동안 작성 게시글이 받은 좋아요 수 내림차순
func (s *memberRankService) TopMembersInWindow(ctx context.Context, start, end time.Time) ([]model.MemberRankItem, error) {
	return s.rank(ctx, start, end, 0)
}

func (s *memberRankService) TopMembersInWindowLimit(ctx context.Context, start, end time.Time, limit int) ([]model.MemberRankItem, error) {
	if limit < 1 {
		return nil, apperrors.InvalidArgument("limit must be >= 1 (got %d)", limit)
	}
	return s.rank(ctx, start, end, limit)
}

// TopMembersLastWeek 지금부터 거슬러 올라간 집계 기간의 순위
func (s *memberRankService) TopMembersLastWeek(ctx context.Context, limit int) ([]model.MemberRankItem, error) {
	end := s.now().UTC()
	return s.TopMembersInWindowLimit(ctx, end.Add(-s.window), end, limit)
}

func (s *memberRankService) rank(ctx context.Context, start, end time.Time, limit int) ([]model.MemberRankItem, error) {
	if start.After(end) {
		return nil, apperrors.InvalidArgument("start must not be after end (start=%s, end=%s)",
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}

	totals, err := s.memberRepo.LikeTotalsInWindow(ctx, start.UTC(), end.UTC(), limit)
	if err != nil {
		return nil, storageError(err, "top_members", apperrors.ResourceLike, "window")
	}

	ids := make([]uint, 0, len(totals))
	for _, total := range totals {
		ids = append(ids, total.MemberID)
	}
	members, err := s.memberRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, storageError(err, "top_members", apperrors.ResourceMember, ids)
	}
	byID := make(map[uint]model.Member, len(members))
	for _, member := range members {
		byID[member.ID] = member
	}

	items := make([]model.MemberRankItem, 0, len(totals))
	for _, total := range totals {
		member := byID[total.MemberID]
		items = append(items, model.MemberRankItem{
			MemberID:    total.MemberID,
			Email:       member.Email,
			Nickname:    member.Nickname,
			MemberGrade: member.MemberGrade,
			TotalLikes:  total.TotalLikes,
		})
	}
	return items, nil
}
