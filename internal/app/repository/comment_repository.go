package repository

import (
	"context"

	"github.com/ikkim/camping-backend/internal/app/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentRepository 댓글 저장소 인터페이스
type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	FindByID(ctx context.Context, id uint) (*model.Comment, error)
	ListByBoard(ctx context.Context, boardID uint, offset, limit int) ([]model.Comment, int64, error)
	Delete(ctx context.Context, comment *model.Comment) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository 댓글 저장소 생성자
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create 댓글 생성 + 게시글 댓글 수 증가
func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(comment).Error; err != nil {
			return err
		}

		result := tx.Model(&model.Board{}).
			Where("id = ?", comment.BoardID).
			UpdateColumn("comment_count", gorm.Expr("comment_count + ?", 1))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Preload("Member").First(comment, comment.ID).Error
}

// FindByID 댓글 ID로 조회
func (r *commentRepository) FindByID(ctx context.Context, id uint) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.WithContext(ctx).Preload("Member").First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByBoard 게시글의 댓글 목록 (작성순)
func (r *commentRepository) ListByBoard(ctx context.Context, boardID uint, offset, limit int) ([]model.Comment, int64, error) {
	var comments []model.Comment
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Comment{}).Where("board_id = ?", boardID)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Member").
		Order("created_at ASC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

// Delete 댓글 삭제 + 게시글 댓글 수 감소
func (r *commentRepository) Delete(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.Comment{}, comment.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Model(&model.Board{}).
			Where("id = ? AND comment_count > 0", comment.BoardID).
			UpdateColumn("comment_count", gorm.Expr("comment_count - ?", 1)).
			Error
	})
}
