package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ikkim/camping-backend/internal/app/model"
	"github.com/ikkim/camping-backend/internal/app/repository"
	apperrors "github.com/ikkim/camping-backend/internal/errors"
	"github.com/ikkim/camping-backend/internal/metrics"
	"github.com/ikkim/camping-backend/internal/pagination"
	"github.com/ikkim/camping-backend/pkg/logger"
	"golang.org/x/sync/singleflight"
)

// DefaultRankingWindow 인기 게시글 집계 기간
const DefaultRankingWindow = 7 * 24 * time.Hour

const topBoardsCachePrefix = "boards:top:"

// RankingCache 인기 게시글 캐시 (pkg/redis.Store)
type RankingCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// BoardService 게시글 조회/랭킹 서비스 인터페이스
type BoardService interface {
	// Ranking & listing
	GetTopBoards(ctx context.Context, limit int) ([]model.BoardRankItem, error)
	Search(ctx context.Context, keyword, category string, page, size int) (pagination.Page[model.BoardSummary], error)
	ListByCategory(ctx context.Context, category string, page, size int) (pagination.Page[model.BoardSummary], error)
	GetDetail(ctx context.Context, boardID uint, viewerEmail string) (*model.BoardDetail, error)

	// Board operations
	CreateBoard(ctx context.Context, email string, req *model.CreateBoardRequest) (*model.BoardDetail, error)
	UpdateBoard(ctx context.Context, boardID uint, email string, req *model.UpdateBoardRequest) (*model.BoardDetail, error)
	DeleteBoard(ctx context.Context, boardID uint, email string) error
	UpdateRank(ctx context.Context, boardID uint, rank int) error

	// Like operations
	LikeBoard(ctx context.Context, boardID uint, email string) error
	UnlikeBoard(ctx context.Context, boardID uint, email string) error
}

// BoardOption 게시글 서비스 옵션
type BoardOption func(*boardService)

// WithClock 현재 시각 함수 교체 (테스트용)
func WithClock(now func() time.Time) BoardOption {
	return func(s *boardService) { s.now = now }
}

// WithRankingWindow 인기 게시글 집계 기간
func WithRankingWindow(window time.Duration) BoardOption {
	return func(s *boardService) {
		if window > 0 {
			s.window = window
		}
	}
}

// WithRankingCache 인기 게시글 캐시 사용. ttl <= 0 이면 캐시하지 않는다.
func WithRankingCache(cache RankingCache, ttl time.Duration) BoardOption {
	return func(s *boardService) {
		if cache != nil && ttl > 0 {
			s.cache = cache
			s.cacheTTL = ttl
		}
	}
}

type boardService struct {
	boardRepo  repository.BoardRepository
	memberRepo repository.MemberRepository

	now      func() time.Time
	window   time.Duration
	cache    RankingCache
	cacheTTL time.Duration
	group    singleflight.Group
}

// NewBoardService 게시글 서비스 생성자
func NewBoardService(boardRepo repository.BoardRepository, memberRepo repository.MemberRepository, opts ...BoardOption) BoardService {
	s := &boardService{
		boardRepo:  boardRepo,
		memberRepo: memberRepo,
		now:        time.Now,
		window:     DefaultRankingWindow,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetTopBoards 최근 window 안에 작성된 게시글을 rank, 조회수 순으로 limit개
func (s *boardService) GetTopBoards(ctx context.Context, limit int) ([]model.BoardRankItem, error) {
	if limit < 1 {
		return nil, apperrors.InvalidArgument("limit must be >= 1 (got %d)", limit)
	}
	if s.cache == nil {
		return s.loadTopBoards(ctx, limit)
	}

	key := fmt.Sprintf("%s%d", topBoardsCachePrefix, limit)
	var cached []model.BoardRankItem
	found, err := s.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		logger.Warn("Ranking cache read failed, falling back to database", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
	metrics.RecordCacheLookup("top_boards", found)
	if found {
		return cached, nil
	}

	// 같은 limit에 대한 동시 요청은 한 번만 DB를 조회한다.
	// 채우는 쪽은 첫 호출자의 취소에 묶이지 않는다 (나머지 대기자가 같은 결과를 받음)
	fillCtx := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		items, err := s.loadTopBoards(fillCtx, limit)
		if err != nil {
			return nil, err
		}
		if err := s.cache.SetJSON(fillCtx, key, items, s.cacheTTL); err != nil {
			logger.Warn("Ranking cache write failed", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.BoardRankItem), nil
}

func (s *boardService) loadTopBoards(ctx context.Context, limit int) ([]model.BoardRankItem, error) {
	since := s.now().UTC().Add(-s.window)
	boards, err := s.boardRepo.FindTopSince(ctx, since, limit)
	if err != nil {
		return nil, storageError(err, "get_top_boards", apperrors.ResourceBoard, limit)
	}

	items := make([]model.BoardRankItem, 0, len(boards))
	for i := range boards {
		items = append(items, boards[i].ToRankItem())
	}
	return items, nil
}

func (s *boardService) invalidateTopBoards(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePrefix(ctx, topBoardsCachePrefix); err != nil {
		logger.Warn("Ranking cache invalidation failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// Search 제목 키워드(대소문자 무시) + 카테고리 일치 검색
func (s *boardService) Search(ctx context.Context, keyword, category string, page, size int) (pagination.Page[model.BoardSummary], error) {
	return s.list(ctx, "search_boards", repository.BoardFilter{Category: category, Keyword: &keyword}, keyword, page, size)
}

// ListByCategory 카테고리 목록. 빈 문자열도 하나의 카테고리로 취급한다.
func (s *boardService) ListByCategory(ctx context.Context, category string, page, size int) (pagination.Page[model.BoardSummary], error) {
	return s.list(ctx, "list_boards_by_category", repository.BoardFilter{Category: category}, "", page, size)
}

func (s *boardService) list(ctx context.Context, op string, filter repository.BoardFilter, keyword string, page, size int) (pagination.Page[model.BoardSummary], error) {
	req, err := pagination.New(page, size)
	if err != nil {
		return pagination.Page[model.BoardSummary]{}, err
	}

	boards, total, err := s.boardRepo.Search(ctx, filter, req.Offset(), req.Limit())
	if err != nil {
		return pagination.Page[model.BoardSummary]{}, storageError(err, op, apperrors.ResourceBoard, filter.Category)
	}

	items := make([]model.BoardSummary, 0, len(boards))
	for i := range boards {
		items = append(items, boards[i].ToSummary(keyword))
	}
	return pagination.NewPage(items, total, req), nil
}

// GetDetail 게시글 상세. 조회할 때마다 조회수가 1 증가한다.
func (s *boardService) GetDetail(ctx context.Context, boardID uint, viewerEmail string) (*model.BoardDetail, error) {
	if err := s.boardRepo.IncrementViewCount(ctx, boardID); err != nil {
		return nil, storageError(err, "increment_view_count", apperrors.ResourceBoard, boardID)
	}

	board, err := s.boardRepo.FindByID(ctx, boardID, true)
	if err != nil {
		return nil, storageError(err, "get_board", apperrors.ResourceBoard, boardID)
	}

	isLiked, err := s.isLikedBy(ctx, boardID, viewerEmail)
	if err != nil {
		return nil, err
	}

	detail := board.ToDetail(isLiked)
	return &detail, nil
}

// isLikedBy 로그인하지 않았거나 알 수 없는 이메일이면 false
func (s *boardService) isLikedBy(ctx context.Context, boardID uint, viewerEmail string) (bool, error) {
	if strings.TrimSpace(viewerEmail) == "" {
		return false, nil
	}

	viewer, err := s.memberRepo.FindByEmail(ctx, viewerEmail)
	if err != nil {
		translated := storageError(err, "get_board_viewer", apperrors.ResourceMember, viewerEmail)
		if apperrors.IsKind(translated, apperrors.KindNotFound) {
			return false, nil
		}
		return false, translated
	}

	liked, err := s.boardRepo.IsLiked(ctx, boardID, viewer.ID)
	if err != nil {
		return false, storageError(err, "is_board_liked", apperrors.ResourceLike, boardID)
	}
	return liked, nil
}

// CreateBoard 게시글 작성
func (s *boardService) CreateBoard(ctx context.Context, email string, req *model.CreateBoardRequest) (*model.BoardDetail, error) {
	member, err := findMemberByEmail(ctx, s.memberRepo, "create_board", email)
	if err != nil {
		return nil, err
	}

	board := &model.Board{
		Title:      req.Title,
		Content:    req.Content,
		Category:   req.Category,
		BoardImage: req.BoardImage,
		MemberID:   member.ID,
	}
	if err := s.boardRepo.Create(ctx, board); err != nil {
		return nil, storageError(err, "create_board", apperrors.ResourceBoard, email)
	}
	s.invalidateTopBoards(ctx)

	logger.Info("Board created", map[string]interface{}{
		"board_id":  board.ID,
		"member_id": member.ID,
		"category":  board.Category,
	})

	detail := board.ToDetail(false)
	return &detail, nil
}

// UpdateBoard 작성자만 수정 가능
func (s *boardService) UpdateBoard(ctx context.Context, boardID uint, email string, req *model.UpdateBoardRequest) (*model.BoardDetail, error) {
	board, member, err := s.ownedBoard(ctx, "update_board", "update", boardID, email)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		board.Title = *req.Title
	}
	if req.Content != nil {
		board.Content = *req.Content
	}
	if req.Category != nil {
		board.Category = *req.Category
	}
	if req.BoardImage != nil {
		board.BoardImage = *req.BoardImage
	}

	if err := s.boardRepo.Update(ctx, board); err != nil {
		return nil, storageError(err, "update_board", apperrors.ResourceBoard, boardID)
	}
	s.invalidateTopBoards(ctx)

	updated, err := s.boardRepo.FindByID(ctx, boardID, true)
	if err != nil {
		return nil, storageError(err, "update_board", apperrors.ResourceBoard, boardID)
	}

	isLiked, err := s.boardRepo.IsLiked(ctx, boardID, member.ID)
	if err != nil {
		return nil, storageError(err, "update_board", apperrors.ResourceLike, boardID)
	}
	detail := updated.ToDetail(isLiked)
	return &detail, nil
}

// DeleteBoard 작성자만 삭제 가능. 좋아요와 댓글도 함께 삭제된다.
func (s *boardService) DeleteBoard(ctx context.Context, boardID uint, email string) error {
	if _, _, err := s.ownedBoard(ctx, "delete_board", "delete", boardID, email); err != nil {
		return err
	}

	if err := s.boardRepo.Delete(ctx, boardID); err != nil {
		return storageError(err, "delete_board", apperrors.ResourceBoard, boardID)
	}
	s.invalidateTopBoards(ctx)

	logger.Info("Board deleted", map[string]interface{}{
		"board_id": boardID,
	})
	return nil
}

// UpdateRank 외부에서 계산한 인기 점수 반영
func (s *boardService) UpdateRank(ctx context.Context, boardID uint, rank int) error {
	if err := s.boardRepo.UpdateRank(ctx, boardID, rank); err != nil {
		return storageError(err, "update_rank", apperrors.ResourceBoard, boardID)
	}
	s.invalidateTopBoards(ctx)
	return nil
}

// LikeBoard 좋아요. 이미 누른 경우 Conflict.
func (s *boardService) LikeBoard(ctx context.Context, boardID uint, email string) error {
	member, err := findMemberByEmail(ctx, s.memberRepo, "like_board", email)
	if err != nil {
		return err
	}
	if _, err := s.boardRepo.FindByID(ctx, boardID, false); err != nil {
		return storageError(err, "like_board", apperrors.ResourceBoard, boardID)
	}

	key := fmt.Sprintf("board %d by %s", boardID, email)
	if err := s.boardRepo.Like(ctx, boardID, member.ID); err != nil {
		return storageError(err, "like_board", apperrors.ResourceLike, key)
	}
	return nil
}

// UnlikeBoard 좋아요 취소. 누른 적 없으면 NotFound.
func (s *boardService) UnlikeBoard(ctx context.Context, boardID uint, email string) error {
	member, err := findMemberByEmail(ctx, s.memberRepo, "unlike_board", email)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("board %d by %s", boardID, email)
	if err := s.boardRepo.Unlike(ctx, boardID, member.ID); err != nil {
		return storageError(err, "unlike_board", apperrors.ResourceLike, key)
	}
	return nil
}

// ownedBoard 게시글과 요청자를 조회하고 작성자인지 확인한다
func (s *boardService) ownedBoard(ctx context.Context, op, action string, boardID uint, email string) (*model.Board, *model.Member, error) {
	member, err := findMemberByEmail(ctx, s.memberRepo, op, email)
	if err != nil {
		return nil, nil, err
	}

	board, err := s.boardRepo.FindByID(ctx, boardID, false)
	if err != nil {
		return nil, nil, storageError(err, op, apperrors.ResourceBoard, boardID)
	}
	if board.MemberID != member.ID {
		logger.Warn("Rejected board mutation by non-owner", map[string]interface{}{
			"board_id":  boardID,
			"member_id": member.ID,
		})
		return nil, nil, ownerOnly(action, apperrors.ResourceBoard, boardID)
	}
	return board, member, nil
}
