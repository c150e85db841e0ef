package repository

import (
	"context"
	"strings"
	"time"

	"github.com/ikkim/camping-backend/internal/app/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BoardFilter 게시글 목록 조건. Category는 빈 문자열도 그대로 비교한다.
type BoardFilter struct {
	Category string
	Keyword  *string // nil이면 제목 조건 없음
}

// BoardRepository 게시글 저장소 인터페이스
type BoardRepository interface {
	// Board operations
	Create(ctx context.Context, board *model.Board) error
	FindByID(ctx context.Context, id uint, preload bool) (*model.Board, error)
	Update(ctx context.Context, board *model.Board) error
	Delete(ctx context.Context, id uint) error
	IncrementViewCount(ctx context.Context, id uint) error
	UpdateRank(ctx context.Context, id uint, rank int) error

	// Listing
	FindTopSince(ctx context.Context, since time.Time, limit int) ([]model.Board, error)
	Search(ctx context.Context, filter BoardFilter, offset, limit int) ([]model.Board, int64, error)

	// Like operations
	Like(ctx context.Context, boardID, memberID uint) error
	Unlike(ctx context.Context, boardID, memberID uint) error
	IsLiked(ctx context.Context, boardID, memberID uint) (bool, error)
}

type boardRepository struct {
	db *gorm.DB
}

// NewBoardRepository 게시글 저장소 생성자
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &boardRepository{db: db}
}

// escapeLike LIKE 패턴의 와일드카드를 이스케이프한다 (ESCAPE '\')
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// Create 게시글 생성
func (r *boardRepository) Create(ctx context.Context, board *model.Board) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(board).Error; err != nil {
		return err
	}

	// 작성자 정보를 Preload하여 다시 조회
	return r.db.WithContext(ctx).Preload("Member").First(board, board.ID).Error
}

// FindByID 게시글 ID로 조회
func (r *boardRepository) FindByID(ctx context.Context, id uint, preload bool) (*model.Board, error) {
	var board model.Board
	query := r.db.WithContext(ctx).Where("id = ?", id)
	if preload {
		query = query.Preload("Member")
	}

	if err := query.First(&board).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// Update 게시글 본문 수정. 카운터와 순위 점수는 건드리지 않는다.
func (r *boardRepository) Update(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Model(&model.Board{}).
		Where("id = ?", board.ID).
		Updates(map[string]interface{}{
			"title":       board.Title,
			"content":     board.Content,
			"category":    board.Category,
			"board_image": board.BoardImage,
		}).Error
}

// Delete 게시글 삭제. 좋아요와 댓글을 먼저 지운다.
func (r *boardRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("board_id = ?", id).Delete(&model.BoardLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&model.Board{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// IncrementViewCount 조회수 증가
func (r *boardRepository) IncrementViewCount(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&model.Board{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateRank 인기 점수 갱신
func (r *boardRepository) UpdateRank(ctx context.Context, id uint, rank int) error {
	result := r.db.WithContext(ctx).Model(&model.Board{}).
		Where("id = ?", id).
		UpdateColumn("rank_score", rank)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindTopSince since 이후 작성된 게시글을 순위 점수, 조회수 순으로 조회
func (r *boardRepository) FindTopSince(ctx context.Context, since time.Time, limit int) ([]model.Board, error) {
	var boards []model.Board
	err := r.db.WithContext(ctx).
		Preload("Member").
		Where("created_at >= ?", since).
		Order("rank_score DESC, view_count DESC, id DESC").
		Limit(limit).
		Find(&boards).Error
	if err != nil {
		return nil, err
	}
	return boards, nil
}

// Search 카테고리(+제목 키워드) 조건으로 게시글 목록 조회 (최신순)
func (r *boardRepository) Search(ctx context.Context, filter BoardFilter, offset, limit int) ([]model.Board, int64, error) {
	var boards []model.Board
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Board{}).
		Where("category = ?", filter.Category)
	if filter.Keyword != nil {
		pattern := "%" + escapeLike(strings.ToLower(*filter.Keyword)) + "%"
		db = db.Where(`LOWER(title) LIKE ? ESCAPE '\'`, pattern)
	}

	// 총 개수 조회
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Member").
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&boards).Error
	if err != nil {
		return nil, 0, err
	}

	return boards, total, nil
}

// Like 게시글 좋아요. 이미 누른 경우 gorm.ErrDuplicatedKey.
func (r *boardRepository) Like(ctx context.Context, boardID, memberID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 중복 확인
		var count int64
		if err := tx.Model(&model.BoardLike{}).
			Where("board_id = ? AND member_id = ?", boardID, memberID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return gorm.ErrDuplicatedKey
		}

		// 좋아요 생성. 동시 요청은 unique 인덱스가 막는다.
		like := &model.BoardLike{BoardID: boardID, MemberID: memberID}
		if err := tx.Omit(clause.Associations).Create(like).Error; err != nil {
			return err
		}

		// 게시글의 좋아요 수 증가
		return tx.Model(&model.Board{}).
			Where("id = ?", boardID).
			UpdateColumn("like_count", gorm.Expr("like_count + ?", 1)).
			Error
	})
}

// Unlike 게시글 좋아요 취소. 누른 적 없으면 gorm.ErrRecordNotFound.
func (r *boardRepository) Unlike(ctx context.Context, boardID, memberID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("board_id = ? AND member_id = ?", boardID, memberID).
			Delete(&model.BoardLike{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		// 게시글의 좋아요 수 감소
		return tx.Model(&model.Board{}).
			Where("id = ? AND like_count > 0", boardID).
			UpdateColumn("like_count", gorm.Expr("like_count - ?", 1)).
			Error
	})
}

// IsLiked 게시글 좋아요 여부 확인
func (r *boardRepository) IsLiked(ctx context.Context, boardID, memberID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.BoardLike{}).
		Where("board_id = ? AND member_id = ?", boardID, memberID).
		Count(&count).Error
	return count > 0, err
}
