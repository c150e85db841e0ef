package repository

import (
	"context"
	"time"

	"github.com/ikkim/camping-backend/internal/app/model"
	"github.com/ikkim/camping-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GradeChange 등급 변경 대상
type GradeChange struct {
	MemberID uint
	From     model.MemberGrade
	To       model.MemberGrade
}

type MemberRepository interface {
	Create(ctx context.Context, member *model.Member) error
	BulkCreate(ctx context.Context, members []model.Member, batchSize int) error
	FindByID(ctx context.Context, id uint) (*model.Member, error)
	FindByEmail(ctx context.Context, email string) (*model.Member, error)
	FindByIDs(ctx context.Context, ids []uint) ([]model.Member, error)

	// 등급 배치
	ListAll(ctx context.Context) ([]model.Member, error)
	SumBoardLikesByOwner(ctx context.Context) ([]model.MemberLikeTotal, error)
	UpdateGrades(ctx context.Context, changes []GradeChange) error

	// 기간별 순위
	LikeTotalsInWindow(ctx context.Context, start, end time.Time, limit int) ([]model.MemberLikeTotal, error)
}

type memberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Create(ctx context.Context, member *model.Member) error {
	logger.Debug("Creating member in database", map[string]interface{}{
		"email": member.Email,
	})

	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		logger.Error("Failed to create member in database", err, map[string]interface{}{
			"email": member.Email,
		})
		return err
	}
	return nil
}

// BulkCreate 일괄 등록. 이미 있는 이메일/닉네임은 건너뛴다.
func (r *memberRepository) BulkCreate(ctx context.Context, members []model.Member, batchSize int) error {
	if len(members) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(&members, batchSize).Error
}

func (r *memberRepository) FindByID(ctx context.Context, id uint) (*model.Member, error) {
	var member model.Member
	if err := r.db.WithContext(ctx).First(&member, id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) FindByEmail(ctx context.Context, email string) (*model.Member, error) {
	var member model.Member
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.Member, error) {
	var members []model.Member
	if len(ids) == 0 {
		return members, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// ListAll 전체 회원 (id, 등급만)
func (r *memberRepository) ListAll(ctx context.Context) ([]model.Member, error) {
	var members []model.Member
	err := r.db.WithContext(ctx).
		Select("id", "member_grade").
		Order("id ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

// SumBoardLikesByOwner 작성자별 게시글 좋아요 합계. 게시글이 없는 회원은 포함되지 않는다.
func (r *memberRepository) SumBoardLikesByOwner(ctx context.Context) ([]model.MemberLikeTotal, error) {
	var totals []model.MemberLikeTotal
	err := r.db.WithContext(ctx).Model(&model.Board{}).
		Select("member_id, COALESCE(SUM(like_count), 0) AS total_likes").
		Group("member_id").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return totals, nil
}

// UpdateGrades 등급 일괄 변경. 전부 반영되거나 하나도 반영되지 않는다.
func (r *memberRepository) UpdateGrades(ctx context.Context, changes []GradeChange) error {
	if len(changes) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, change := range changes {
			if err := tx.Model(&model.Member{}).
				Where("id = ?", change.MemberID).
				Update("member_grade", change.To).Error; err != nil {
				logger.Error("Failed to update member grade", err, map[string]interface{}{
					"member_id": change.MemberID,
					"grade":     change.To,
				})
				return err
			}
		}
		return nil
	})
}

// LikeTotalsInWindow [start, end] 동안 각 작성자의 게시글이 받은 좋아요 수.
// 좋아요 수 내림차순, 같으면 회원 ID 오름차순. limit <= 0 이면 전체.
func (r *memberRepository) LikeTotalsInWindow(ctx context.Context, start, end time.Time, limit int) ([]model.MemberLikeTotal, error) {
	var totals []model.MemberLikeTotal

	query := r.db.WithContext(ctx).Table("board_likes").
		Select("boards.member_id AS member_id, COUNT(board_likes.id) AS total_likes").
		Joins("JOIN boards ON boards.id = board_likes.board_id").
		Where("board_likes.created_at BETWEEN ? AND ?", start, end).
		Group("boards.member_id").
		Order("total_likes DESC, boards.member_id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Scan(&totals).Error; err != nil {
		return nil, err
	}
	return totals, nil
}
