package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ikkim/camping-backend/internal/app/model"
	"github.com/ikkim/camping-backend/internal/app/repository"
	apperrors "github.com/ikkim/camping-backend/internal/errors"
	redisstore "github.com/ikkim/camping-backend/pkg/redis"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

func setupBoardServiceTest(t *testing.T, opts ...BoardOption) (BoardService, *gorm.DB) {
	testDB := setupServiceDB(t)
	opts = append([]BoardOption{WithClock(func() time.Time { return fixedNow })}, opts...)
	svc := NewBoardService(repository.NewBoardRepository(testDB), repository.NewMemberRepository(testDB), opts...)
	return svc, testDB
}

func TestBoardService_GetTopBoards_InvalidLimit(t *testing.T) {
	svc, _ := setupBoardServiceTest(t)

	for _, limit := range []int{0, -1} {
		_, err := svc.GetTopBoards(context.Background(), limit)
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidArgument))
		assert.Contains(t, err.Error(), "limit must be >= 1")
	}
}

func TestBoardService_GetTopBoards_ExcludesOldBoards(t *testing.T) {
	svc, testDB := setupBoardServiceTest(t)
	owner := seedMember(t, testDB, "ranker")

	seedBoard(t, testDB, owner, boardSeed{title: "r100", rank: 100, createdAt: fixedNow.Add(-time.Hour)})
	seedBoard(t, testDB, owner, boardSeed{title: "r80", rank: 80, image: "https://cdn/80.png", createdAt: fixedNow.Add(-time.Hour)})
	seedBoard(t, testDB, owner, boardSeed{title: "r60", rank: 60, createdAt: fixedNow.Add(-time.Hour)})
	seedBoard(t, testDB, owner, boardSeed{title: "old200", rank: 200, createdAt: fixedNow.Add(-8 * 24 * time.Hour)})

	items, err := svc.GetTopBoards(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "r100", items[0].Title)
	assert.Equal(t, "r80", items[1].Title)
	assert.Nil(t, items[0].BoardImage)
	require.NotNil(t, items[1].BoardImage)
	assert.Equal(t, "ranker", items[0].Nickname)
}

func TestBoardService_GetTopBoards_ViewCountBreaksTies(t *testing.T) {
	svc, testDB := setupBoardServiceTest(t)
	owner := seedMember(t, testDB, "ranker")

	seedBoard(t, testDB, owner, boardSeed{title: "quiet", rank: 10, views: 3, createdAt: fixedNow.Add(-time.Hour)})
	seedBoard(t, testDB, owner, boardSeed{title: "busy", rank: 10, views: 30, createdAt: fixedNow.Add(-2 * time.Hour)})

	items, err := svc.GetTopBoards(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "busy", items[0].Title)
}

func TestBoardService_GetTopBoards_Cache(t *testing.T) {
	mr, cache := setupRankingCache(t)
	svc, testDB := setupBoardServiceTest(t, WithRankingCache(cache, time.Minute))
	ctx := context.Background()
	owner := seedMember(t, testDB, "cached")
	a := seedBoard(t, testDB, owner, boardSeed{title: "a", rank: 5, createdAt: fixedNow.Add(-time.Hour)})
	b := seedBoard(t, testDB, owner, boardSeed{title: "b", rank: 1, createdAt: fixedNow.Add(-time.Hour)})

	items, err := svc.GetTopBoards(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, a.ID, items[0].BoardID)
	assert.True(t, mr.Exists("camping:boards:top:1"))

	// 캐시를 거치지 않은 변경은 TTL 동안 보이지 않는다
	require.NoError(t, testDB.Model(&model.Board{}).Where("id = ?", b.ID).UpdateColumn("rank_score", 50).Error)
	items, err = svc.GetTopBoards(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, a.ID, items[0].BoardID)

	// 서비스를 통한 순위 갱신은 캐시를 비운다
	require.NoError(t, svc.UpdateRank(ctx, b.ID, 60))
	assert.False(t, mr.Exists("camping:boards:top:1"))
	items, err = svc.GetTopBoards(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, b.ID, items[0].BoardID)
	assert.Equal(t, 60, items[0].Rank)
}

func setupRankingCache(t *testing.T) (*miniredis.Miniredis, RankingCache) {
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return mr, redisstore.NewStore(rdb, "camping:")
}

func TestBoardService_GetTopBoards_WritesInvalidateCache(t *testing.T) {
	mr, cache := setupRankingCache(t)
	svc, testDB := setupBoardServiceTest(t, WithRankingCache(cache, time.Minute))
	ctx := context.Background()
	owner := seedMember(t, testDB, "writer")
	seedBoard(t, testDB, owner, boardSeed{title: "first", rank: 5, createdAt: fixedNow.Add(-time.Hour)})

	_, err := svc.GetTopBoards(ctx, 1)
	require.NoError(t, err)
	require.True(t, mr.Exists("camping:boards:top:1"))

	created, err := svc.CreateBoard(ctx, owner.Email, &model.CreateBoardRequest{Title: "new", Content: "body"})
	require.NoError(t, err)
	assert.False(t, mr.Exists("camping:boards:top:1"))

	_, err = svc.GetTopBoards(ctx, 1)
	require.NoError(t, err)
	require.True(t, mr.Exists("camping:boards:top:1"))

	title := "renamed"
	_, err = svc.UpdateBoard(ctx, created.BoardID, owner.Email, &model.UpdateBoardRequest{Title: &title})
	require.NoError(t, err)
	assert.False(t, mr.Exists("camping:boards:top:1"))
}

func TestBoardService_GetTopBoards_FillIgnoresCallerCancel(t *testing.T) {
	mr, cache := setupRankingCache(t)
	svc, testDB := setupBoardServiceTest(t, WithRankingCache(cache, time.Minute))
	owner := seedMember(t, testDB, "cancelled")
	board := seedBoard(t, testDB, owner, boardSeed{title: "kept", rank: 5, createdAt: fixedNow.Add(-time.Hour)})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items, err := svc.GetTopBoards(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, board.ID, items[0].BoardID)
	assert.True(t, mr.Exists("camping:boards:top:1"))
}

func TestBoardService_Search_InvalidPaging(t *testing.T) {
	svc, _ := setupBoardServiceTest(t)
	ctx := context.Background()

	_, err := svc.Search(ctx, "lake", "tip", 0, 3)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidArgument))
	assert.Contains(t, err.Error(), "page must be >= 1")

	_, err = svc.Search(ctx, "lake", "tip", 1, 0)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidArgument))
	assert.Contains(t, err.Error(), "size must be >= 1")

	_, err = svc.ListByCategory(ctx, "tip", 0, 1)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidArgument))
}

func TestBoardService_Search(t *testing.T) {
	svc, testDB := setupBoardServiceTest(t)
	ctx := context.Background()
	owner := seedMember(t, testDB, "searcher")

	seedBoard(t, testDB, owner, boardSeed{title: "Winter LAKE camping", category: "tip", createdAt: fixedNow.Add(-3 * time.Hour)})
	seedBoard(t, testDB, owner, boardSeed{title: "lake fishing", category: "tip", createdAt: fixedNow.Add(-2 * time.Hour)})
	seedBoard(t, testDB, owner, boardSeed{title: "lake in free talk", category: "", createdAt: fixedNow.Add(-time.Hour)})
	seedBoard(t, testDB, owner, boardSeed{title: "forest", category: "tip", createdAt: fixedNow})

	page, err := svc.Search(ctx, "Lake", "tip", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalElements)
	require.Len(t, page.Content, 2)
	assert.Equal(t, "lake fishing", page.Content[0].Title)
	assert.Equal(t, "Winter LAKE camping", page.Content[1].Title)
	assert.Equal(t, "Lake", page.Content[0].Keyword)
	assert.Equal(t, "", page.Content[0].BoardImage)
	assert.Equal(t, "searcher", page.Content[0].Nickname)

	// 빈 카테고리는 "전체"가 아니라 빈 문자열 카테고리
	page, err = svc.Search(ctx, "lake", "", 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "lake in free talk", page.Content[0].Title)

	page, err = svc.ListByCategory(ctx, "", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalElements)

	page, err = svc.ListByCategory(ctx, "tip", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalPages)
	assert.True(t, page.IsLast)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "Winter LAKE camping", page.Content[0].Title)

	page, err = svc.ListByCategory(ctx, "tip", 9, 2)
	require.NoError(t, err)
	assert.Empty(t, page.Content)
	assert.True(t, page.IsLast)
}

func TestBoardService_GetDetail(t *testing.T) {
	svc, testDB := setupBoardServiceTest(t)
	ctx := context.Background()
	owner := seedMember(t, testDB, "author")
	fan := seedMember(t, testDB, "fan")
	board := seedBoard(t, testDB, owner, boardSeed{title: "detail", category: "tip", views: 4})

	require.NoError(t, svc.LikeBoard(ctx, board.ID, fan.Email))

	detail, err := svc.GetDetail(ctx, board.ID, fan.Email)
	require.NoError(t, err)
	assert.Equal(t, 5, detail.ViewCount)
	assert.True(t, detail.IsLiked)
	assert.Equal(t, 1, detail.LikeCount)
	assert.Equal(t, "author", detail.Nickname)
	assert.Nil(t, detail.BoardImage)

	detail, err = svc.GetDetail(ctx, board.ID, "  ")
	require.NoError(t, err)
	assert.Equal(t, 6, detail.ViewCount)
	assert.False(t, detail.IsLiked)

	detail, err = svc.GetDetail(ctx, board.ID, "stranger@camp.test")
	require.NoError(t, err)
	assert.False(t, detail.IsLiked)

	var stored model.Board
	require.NoError(t, testDB.First(&stored, board.ID).Error)
	assert.Equal(t, 7, stored.ViewCount)

	_, err = svc.GetDetail(ctx, 9999, "")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	assert.Contains(t, err.Error(), "9999")
}

func TestBoardService_Likes(t *testing.T) {
	svc, testDB := setupBoardServiceTest(t)
	ctx := context.Background()
	owner := seedMember(t, testDB, "author")
	fan := seedMember(t, testDB, "fan")
	board := seedBoard(t, testDB, owner, boardSeed{title: "liked"})

	require.NoError(t, svc.LikeBoard(ctx, board.ID, fan.Email))

	err := svc.LikeBoard(ctx, board.ID, fan.Email)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	assert.Equal(t, apperrors.LikeAlreadyExists, apperrors.CodeOf(err))

	err = svc.LikeBoard(ctx, 555, fan.Email)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	assert.Contains(t, err.Error(), "555")

	require.NoError(t, svc.UnlikeBoard(ctx, board.ID, fan.Email))
	err = svc.UnlikeBoard(ctx, board.ID, fan.Email)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	err = svc.LikeBoard(ctx, board.ID, "ghost@camp.test")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	assert.Contains(t, err.Error(), "ghost@camp.test")
}

func TestBoardService_CreateUpdateDelete(t *testing.T) {
	svc, testDB := setupBoardServiceTest(t)
	ctx := context.Background()
	owner := seedMember(t, testDB, "author")
	other := seedMember(t, testDB, "other")

	created, err := svc.CreateBoard(ctx, owner.Email, &model.CreateBoardRequest{
		Title:    "new site",
		Content:  "body",
		Category: "review",
	})
	require.NoError(t, err)
	assert.Equal(t, "author", created.Nickname)
	assert.Equal(t, model.GradeGreen, created.MemberGrade)

	title := "hijacked"
	_, err = svc.UpdateBoard(ctx, created.BoardID, other.Email, &model.UpdateBoardRequest{Title: &title})
	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))
	assert.Equal(t, apperrors.AuthzOwnerOnly, apperrors.CodeOf(err))

	title = "renamed site"
	updated, err := svc.UpdateBoard(ctx, created.BoardID, owner.Email, &model.UpdateBoardRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "renamed site", updated.Title)
	assert.Equal(t, "body", updated.Content)

	err = svc.DeleteBoard(ctx, created.BoardID, other.Email)
	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))

	require.NoError(t, svc.LikeBoard(ctx, created.BoardID, other.Email))
	require.NoError(t, svc.DeleteBoard(ctx, created.BoardID, owner.Email))

	var likes int64
	testDB.Model(&model.BoardLike{}).Count(&likes)
	assert.Zero(t, likes)

	err = svc.DeleteBoard(ctx, created.BoardID, owner.Email)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestBoardService_UpdateRankMissingBoard(t *testing.T) {
	svc, _ := setupBoardServiceTest(t)

	err := svc.UpdateRank(context.Background(), 31, 10)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	assert.Contains(t, err.Error(), "31")
}
