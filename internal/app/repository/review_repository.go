package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ikkim/camping-backend/internal/app/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrAggregateMissing 리뷰는 있는데 좌표 집계 행이 없는 경우
var ErrAggregateMissing = errors.New("review aggregate missing")

// ReviewRepository 리뷰와 좌표별 집계 저장소.
// 리뷰 행 변경과 집계 갱신은 항상 같은 트랜잭션 안에서 이루어진다.
type ReviewRepository interface {
	CreateWithAggregate(ctx context.Context, review *model.Review) (*model.ReviewAggregate, error)
	UpdateWithAggregate(ctx context.Context, id uint, update func(review *model.Review) error) (*model.Review, *model.ReviewAggregate, error)
	DeleteWithAggregate(ctx context.Context, id uint, authorize func(review *model.Review) error) (*model.Review, *model.ReviewAggregate, error)

	FindByID(ctx context.Context, id uint) (*model.Review, error)
	FindAggregate(ctx context.Context, key model.LocationKey) (*model.ReviewAggregate, error)
	ListByLocation(ctx context.Context, key model.LocationKey, offset, limit int) ([]model.Review, int64, error)
	ListByMember(ctx context.Context, memberID uint, offset, limit int) ([]model.Review, int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 리뷰 저장소 생성자
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// lockAggregate 집계 행을 SELECT ... FOR UPDATE 로 잠근다
func lockAggregate(tx *gorm.DB, key model.LocationKey) (*model.ReviewAggregate, error) {
	var agg model.ReviewAggregate
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("map_x = ? AND map_y = ?", key.MapX, key.MapY).
		Take(&agg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w for %s/%s", ErrAggregateMissing, key.MapX, key.MapY)
	}
	if err != nil {
		return nil, err
	}
	return &agg, nil
}

// seedAggregateRetries 시드 직후 다른 트랜잭션이 마지막 리뷰를 지워 행이 사라졌을 때 다시 시드하는 횟수
const seedAggregateRetries = 3

// seedAndLockAggregate 첫 리뷰면 집계 행을 만들고, 이미 있으면 같은 값으로 갱신해 행 락을 잡는다.
// 충돌한 행이 그 사이 삭제되어 잠글 행이 없으면 다시 시드한다.
func seedAndLockAggregate(tx *gorm.DB, key model.LocationKey) (*model.ReviewAggregate, error) {
	var lastErr error
	for attempt := 0; attempt < seedAggregateRetries; attempt++ {
		seed := &model.ReviewAggregate{MapX: key.MapX, MapY: key.MapY, Count: 0, Average: decimal.Zero}
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "map_x"}, {Name: "map_y"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"review_count": gorm.Expr("review_aggregates.review_count"),
			}),
		}).Create(seed).Error
		if err != nil {
			return nil, err
		}

		agg, err := lockAggregate(tx, key)
		if err == nil {
			return agg, nil
		}
		if !errors.Is(err, ErrAggregateMissing) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

func saveAggregate(tx *gorm.DB, agg *model.ReviewAggregate) error {
	return tx.Model(&model.ReviewAggregate{}).
		Where("map_x = ? AND map_y = ?", agg.MapX, agg.MapY).
		Updates(map[string]interface{}{
			"review_count":  agg.Count,
			"average_score": agg.Average,
		}).Error
}

// CreateWithAggregate 리뷰 생성 + 집계 upsert
func (r *reviewRepository) CreateWithAggregate(ctx context.Context, review *model.Review) (*model.ReviewAggregate, error) {
	var result *model.ReviewAggregate
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			return err
		}

		agg, err := seedAndLockAggregate(tx, review.Location())
		if err != nil {
			return err
		}
		agg.AddScore(review.Score)
		if err := saveAggregate(tx, agg); err != nil {
			return err
		}

		result = agg
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateWithAggregate 리뷰 수정. 평점이 바뀌면 같은 트랜잭션에서 평균을 다시 계산한다.
// update가 에러를 반환하면 아무것도 저장하지 않는다.
func (r *reviewRepository) UpdateWithAggregate(ctx context.Context, id uint, update func(review *model.Review) error) (*model.Review, *model.ReviewAggregate, error) {
	var (
		updated model.Review
		result  *model.ReviewAggregate
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Take(&updated, id).Error; err != nil {
			return err
		}
		oldScore := updated.Score

		if err := update(&updated); err != nil {
			return err
		}
		if err := tx.Model(&model.Review{}).Where("id = ?", updated.ID).Updates(map[string]interface{}{
			"score":        updated.Score,
			"content":      updated.Content,
			"review_image": updated.ReviewImage,
		}).Error; err != nil {
			return err
		}

		agg, err := lockAggregate(tx, updated.Location())
		if err != nil {
			return err
		}
		if !oldScore.Equal(updated.Score) {
			agg.ReplaceScore(oldScore, updated.Score)
			if err := saveAggregate(tx, agg); err != nil {
				return err
			}
		}

		result = agg
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &updated, result, nil
}

// DeleteWithAggregate 리뷰 삭제 + 집계 감소. 마지막 리뷰였으면 집계 행을 지우고 nil을 반환한다.
func (r *reviewRepository) DeleteWithAggregate(ctx context.Context, id uint, authorize func(review *model.Review) error) (*model.Review, *model.ReviewAggregate, error) {
	var (
		removed model.Review
		result  *model.ReviewAggregate
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Take(&removed, id).Error; err != nil {
			return err
		}
		if authorize != nil {
			if err := authorize(&removed); err != nil {
				return err
			}
		}

		if err := tx.Delete(&model.Review{}, removed.ID).Error; err != nil {
			return err
		}

		agg, err := lockAggregate(tx, removed.Location())
		if err != nil {
			return err
		}

		if agg.RemoveScore(removed.Score) {
			return tx.Where("map_x = ? AND map_y = ?", agg.MapX, agg.MapY).
				Delete(&model.ReviewAggregate{}).Error
		}
		if err := saveAggregate(tx, agg); err != nil {
			return err
		}

		result = agg
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &removed, result, nil
}

// FindByID ID로 리뷰 조회
func (r *reviewRepository) FindByID(ctx context.Context, id uint) (*model.Review, error) {
	var review model.Review
	if err := r.db.WithContext(ctx).Preload("Member").First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// FindAggregate 좌표별 집계 조회. 없으면 gorm.ErrRecordNotFound.
func (r *reviewRepository) FindAggregate(ctx context.Context, key model.LocationKey) (*model.ReviewAggregate, error) {
	var agg model.ReviewAggregate
	if err := r.db.WithContext(ctx).
		Where("map_x = ? AND map_y = ?", key.MapX, key.MapY).
		Take(&agg).Error; err != nil {
		return nil, err
	}
	return &agg, nil
}

// ListByLocation 좌표별 리뷰 목록 (최신순)
func (r *reviewRepository) ListByLocation(ctx context.Context, key model.LocationKey, offset, limit int) ([]model.Review, int64, error) {
	var reviews []model.Review
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Review{}).
		Where("map_x = ? AND map_y = ?", key.MapX, key.MapY)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Member").
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

// ListByMember 회원별 리뷰 목록 (최신순)
func (r *reviewRepository) ListByMember(ctx context.Context, memberID uint, offset, limit int) ([]model.Review, int64, error) {
	var reviews []model.Review
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Review{}).Where("member_id = ?", memberID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Member").
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}
