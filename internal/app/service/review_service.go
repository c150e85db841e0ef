package service

import (
	"context"
	"errors"

	"github.com/ikkim/camping-backend/internal/app/model"
	"github.com/ikkim/camping-backend/internal/app/repository"
	apperrors "github.com/ikkim/camping-backend/internal/errors"
	"github.com/ikkim/camping-backend/internal/metrics"
	"github.com/ikkim/camping-backend/internal/pagination"
	"github.com/ikkim/camping-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReviewService 캠핑장 리뷰와 좌표별 평점 집계
type ReviewService interface {
	AddReview(ctx context.Context, input model.AddReviewInput) (*model.Review, error)
	UpdateReview(ctx context.Context, reviewID uint, requesterEmail string, input model.UpdateReviewInput) (*model.Review, error)
	RemoveReview(ctx context.Context, reviewID uint) error
	DeleteOwnReview(ctx context.Context, reviewID uint, requesterEmail string) error

	GetAggregate(ctx context.Context, key model.LocationKey) (model.ReviewSummary, error)
	ListReviews(ctx context.Context, key model.LocationKey, page, size int) (pagination.Page[model.ReviewItem], error)
	ListMemberReviews(ctx context.Context, email string, page, size int) (pagination.Page[model.ReviewItem], error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	memberRepo repository.MemberRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, memberRepo repository.MemberRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		memberRepo: memberRepo,
	}
}

// AddReview 리뷰 작성. 리뷰 저장과 집계 갱신은 한 트랜잭션이다.
func (s *reviewService) AddReview(ctx context.Context, input model.AddReviewInput) (*model.Review, error) {
	member, err := findMemberByEmail(ctx, s.memberRepo, "add_review", input.MemberEmail)
	if err != nil {
		return nil, err
	}

	review := &model.Review{
		MapX:        input.Location.MapX,
		MapY:        input.Location.MapY,
		MemberID:    member.ID,
		Score:       input.Score,
		Content:     input.Content,
		ReviewImage: input.ReviewImage,
	}

	agg, err := s.reviewRepo.CreateWithAggregate(ctx, review)
	if err != nil {
		return nil, s.aggregateError(err, "add_review", input.Location)
	}
	review.Member = *member
	metrics.RecordAggregateUpdate("add")

	logger.Info("Review added", map[string]interface{}{
		"review_id": review.ID,
		"map_x":     review.MapX,
		"map_y":     review.MapY,
		"count":     agg.Count,
		"average":   agg.Average.String(),
	})
	return review, nil
}

// UpdateReview 작성자만 수정 가능. 평점이 바뀌면 평균을 같은 락 안에서 다시 계산한다.
func (s *reviewService) UpdateReview(ctx context.Context, reviewID uint, requesterEmail string, input model.UpdateReviewInput) (*model.Review, error) {
	member, err := findMemberByEmail(ctx, s.memberRepo, "update_review", requesterEmail)
	if err != nil {
		return nil, err
	}

	updated, _, err := s.reviewRepo.UpdateWithAggregate(ctx, reviewID, func(review *model.Review) error {
		if review.MemberID != member.ID {
			return ownerOnly("update", apperrors.ResourceReview, reviewID)
		}
		if input.Score != nil {
			review.Score = *input.Score
		}
		if input.Content != nil {
			review.Content = *input.Content
		}
		if input.ReviewImage != nil {
			review.ReviewImage = *input.ReviewImage
		}
		return nil
	})
	if err != nil {
		return nil, s.reviewError(err, "update_review", reviewID)
	}
	updated.Member = *member
	metrics.RecordAggregateUpdate("update")

	return updated, nil
}

// RemoveReview 리뷰 삭제. 마지막 리뷰면 집계 행도 삭제된다.
func (s *reviewService) RemoveReview(ctx context.Context, reviewID uint) error {
	return s.remove(ctx, "remove_review", reviewID, nil)
}

// DeleteOwnReview 작성자 본인의 리뷰 삭제
func (s *reviewService) DeleteOwnReview(ctx context.Context, reviewID uint, requesterEmail string) error {
	member, err := findMemberByEmail(ctx, s.memberRepo, "delete_review", requesterEmail)
	if err != nil {
		return err
	}

	return s.remove(ctx, "delete_review", reviewID, func(review *model.Review) error {
		if review.MemberID != member.ID {
			return ownerOnly("delete", apperrors.ResourceReview, reviewID)
		}
		return nil
	})
}

func (s *reviewService) remove(ctx context.Context, op string, reviewID uint, authorize func(*model.Review) error) error {
	removed, agg, err := s.reviewRepo.DeleteWithAggregate(ctx, reviewID, authorize)
	if err != nil {
		return s.reviewError(err, op, reviewID)
	}
	metrics.RecordAggregateUpdate("remove")

	fields := map[string]interface{}{
		"review_id": reviewID,
		"map_x":     removed.MapX,
		"map_y":     removed.MapY,
	}
	if agg == nil {
		fields["aggregate"] = "deleted"
	} else {
		fields["count"] = agg.Count
		fields["average"] = agg.Average.String()
	}
	logger.Info("Review removed", fields)
	return nil
}

// GetAggregate 좌표별 리뷰 수와 평균. 리뷰가 없으면 {0, 0}.
func (s *reviewService) GetAggregate(ctx context.Context, key model.LocationKey) (model.ReviewSummary, error) {
	agg, err := s.reviewRepo.FindAggregate(ctx, key)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ReviewSummary{Count: 0, Average: decimal.Zero}, nil
	}
	if err != nil {
		return model.ReviewSummary{}, storageError(err, "get_aggregate", apperrors.ResourceReview, key)
	}
	return model.ReviewSummary{Count: agg.Count, Average: agg.Average}, nil
}

// ListReviews 좌표별 리뷰 목록 (최신순)
func (s *reviewService) ListReviews(ctx context.Context, key model.LocationKey, page, size int) (pagination.Page[model.ReviewItem], error) {
	req, err := pagination.New(page, size)
	if err != nil {
		return pagination.Page[model.ReviewItem]{}, err
	}

	reviews, total, err := s.reviewRepo.ListByLocation(ctx, key, req.Offset(), req.Limit())
	if err != nil {
		return pagination.Page[model.ReviewItem]{}, storageError(err, "list_reviews", apperrors.ResourceReview, key)
	}
	return pagination.NewPage(reviewItems(reviews), total, req), nil
}

// ListMemberReviews 회원이 작성한 리뷰 목록 (최신순)
func (s *reviewService) ListMemberReviews(ctx context.Context, email string, page, size int) (pagination.Page[model.ReviewItem], error) {
	req, err := pagination.New(page, size)
	if err != nil {
		return pagination.Page[model.ReviewItem]{}, err
	}

	member, err := findMemberByEmail(ctx, s.memberRepo, "list_member_reviews", email)
	if err != nil {
		return pagination.Page[model.ReviewItem]{}, err
	}

	reviews, total, err := s.reviewRepo.ListByMember(ctx, member.ID, req.Offset(), req.Limit())
	if err != nil {
		return pagination.Page[model.ReviewItem]{}, storageError(err, "list_member_reviews", apperrors.ResourceReview, email)
	}
	return pagination.NewPage(reviewItems(reviews), total, req), nil
}

func reviewItems(reviews []model.Review) []model.ReviewItem {
	items := make([]model.ReviewItem, 0, len(reviews))
	for i := range reviews {
		items = append(items, reviews[i].ToItem())
	}
	return items
}

// reviewError 집계 불일치는 NotFound가 아니라 내부 오류로 다룬다
func (s *reviewService) reviewError(err error, op string, reviewID uint) error {
	if errors.Is(err, repository.ErrAggregateMissing) {
		logger.Error("Review aggregate out of sync", err, map[string]interface{}{
			"op":        op,
			"review_id": reviewID,
		})
		return apperrors.Internal(err, "review aggregate out of sync for review %d", reviewID)
	}
	return storageError(err, op, apperrors.ResourceReview, reviewID)
}

func (s *reviewService) aggregateError(err error, op string, key model.LocationKey) error {
	if errors.Is(err, repository.ErrAggregateMissing) {
		logger.Error("Review aggregate out of sync", err, map[string]interface{}{
			"op":    op,
			"map_x": key.MapX,
			"map_y": key.MapY,
		})
		return apperrors.Internal(err, "review aggregate out of sync for %s/%s", key.MapX, key.MapY)
	}
	return storageError(err, op, apperrors.ResourceReview, key)
}
