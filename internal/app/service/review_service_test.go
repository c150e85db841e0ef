package service

import (
	"context"
	"sync"
	"testing"

	"github.com/ikkim/camping-backend/internal/app/model"
	"github.com/ikkim/camping-backend/internal/app/repository"
	apperrors "github.com/ikkim/camping-backend/internal/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var pineSite = model.LocationKey{MapX: "128.4512", MapY: "35.8821"}

func setupReviewServiceTest(t *testing.T) (ReviewService, *gorm.DB) {
	testDB := setupServiceDB(t)
	svc := NewReviewService(repository.NewReviewRepository(testDB), repository.NewMemberRepository(testDB))
	return svc, testDB
}

func addReview(t *testing.T, svc ReviewService, member *model.Member, score string) *model.Review {
	t.Helper()
	review, err := svc.AddReview(context.Background(), model.AddReviewInput{
		Location:    pineSite,
		Score:       dec(score),
		Content:     "quiet site",
		MemberEmail: member.Email,
	})
	require.NoError(t, err)
	return review
}

func TestReviewService_RoundTrip(t *testing.T) {
	svc, testDB := setupReviewServiceTest(t)
	ctx := context.Background()
	member := seedMember(t, testDB, "reviewer")

	// 빈 좌표에 5점 → {1, 5}
	only := addReview(t, svc, member, "5")
	summary, err := svc.GetAggregate(ctx, pineSite)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.Count)
	assertDecimal(t, "5", summary.Average)

	require.NoError(t, svc.RemoveReview(ctx, only.ID))

	// {1, 3} 에 5점 → {2, 4}
	three := addReview(t, svc, member, "3")
	addReview(t, svc, member, "5")
	summary, err = svc.GetAggregate(ctx, pineSite)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.Count)
	assertDecimal(t, "4", summary.Average)

	// {2, 4} 에서 3점 삭제 → (4*2-3)/1 = 5
	require.NoError(t, svc.RemoveReview(ctx, three.ID))
	summary, err = svc.GetAggregate(ctx, pineSite)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.Count)
	assertDecimal(t, "5", summary.Average)
}

func TestReviewService_RemovingLastReviewDeletesAggregate(t *testing.T) {
	svc, testDB := setupReviewServiceTest(t)
	ctx := context.Background()
	member := seedMember(t, testDB, "solo")

	review := addReview(t, svc, member, "4.5")
	require.NoError(t, svc.RemoveReview(ctx, review.ID))

	var rows int64
	testDB.Model(&model.ReviewAggregate{}).Count(&rows)
	assert.Zero(t, rows)

	summary, err := svc.GetAggregate(ctx, pineSite)
	require.NoError(t, err)
	assert.Equal(t, int64(0), summary.Count)
	assert.True(t, summary.Average.IsZero())
}

func TestReviewService_NotFoundMessages(t *testing.T) {
	svc, _ := setupReviewServiceTest(t)
	ctx := context.Background()

	_, err := svc.AddReview(ctx, model.AddReviewInput{
		Location:    pineSite,
		Score:       dec("4"),
		MemberEmail: "ghost@camp.test",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	assert.Contains(t, err.Error(), "ghost@camp.test")

	err = svc.RemoveReview(ctx, 4242)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	assert.Equal(t, apperrors.ReviewNotFound, apperrors.CodeOf(err))
	assert.Contains(t, err.Error(), "4242")
}

func TestReviewService_ConcurrentAddRemoveKeepsInvariant(t *testing.T) {
	svc, testDB := setupReviewServiceTest(t)
	ctx := context.Background()
	member := seedMember(t, testDB, "crowd")

	scores := []string{"0.5", "1", "1.5", "2", "2.5", "3", "3.5", "4", "4.5", "5"}
	var seeded []*model.Review
	for _, s := range scores {
		seeded = append(seeded, addReview(t, svc, member, s))
	}

	var wg sync.WaitGroup
	errs := make(chan error, 40)
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.AddReview(ctx, model.AddReviewInput{
				Location:    pineSite,
				Score:       dec(scores[i%len(scores)]),
				MemberEmail: member.Email,
			})
			errs <- err
		}(i)
	}
	for _, review := range seeded[:5] {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			errs <- svc.RemoveReview(ctx, id)
		}(review.ID)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var surviving []model.Review
	require.NoError(t, testDB.Where("map_x = ? AND map_y = ?", pineSite.MapX, pineSite.MapY).Find(&surviving).Error)
	sum := decimal.Zero
	for _, r := range surviving {
		sum = sum.Add(r.Score)
	}
	mean := sum.Div(decimal.NewFromInt(int64(len(surviving))))

	summary, err := svc.GetAggregate(ctx, pineSite)
	require.NoError(t, err)
	assert.Equal(t, int64(len(surviving)), summary.Count)
	assert.True(t, summary.Average.Sub(mean).Abs().LessThan(dec("0.01")),
		"average %s drifted from mean %s", summary.Average, mean)
}

func TestReviewService_OwnerOnlyMutations(t *testing.T) {
	svc, testDB := setupReviewServiceTest(t)
	ctx := context.Background()
	owner := seedMember(t, testDB, "owner")
	other := seedMember(t, testDB, "other")

	review := addReview(t, svc, owner, "3")
	addReview(t, svc, other, "5")

	err := svc.DeleteOwnReview(ctx, review.ID, other.Email)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))

	newScore := dec("4")
	_, err = svc.UpdateReview(ctx, review.ID, other.Email, model.UpdateReviewInput{Score: &newScore})
	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))

	// 거절된 수정은 집계를 바꾸지 않는다
	summary, err := svc.GetAggregate(ctx, pineSite)
	require.NoError(t, err)
	assertDecimal(t, "4", summary.Average)

	updated, err := svc.UpdateReview(ctx, review.ID, owner.Email, model.UpdateReviewInput{Score: &newScore})
	require.NoError(t, err)
	assertDecimal(t, "4", updated.Score)
	summary, err = svc.GetAggregate(ctx, pineSite)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.Count)
	assertDecimal(t, "4.5", summary.Average)

	require.NoError(t, svc.DeleteOwnReview(ctx, review.ID, owner.Email))
	summary, err = svc.GetAggregate(ctx, pineSite)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.Count)
	assertDecimal(t, "5", summary.Average)
}

func TestReviewService_ListReviews(t *testing.T) {
	svc, testDB := setupReviewServiceTest(t)
	ctx := context.Background()
	member := seedMember(t, testDB, "lister")

	for _, s := range []string{"1", "2", "3", "4", "5"} {
		addReview(t, svc, member, s)
	}

	page, err := svc.ListReviews(ctx, pineSite, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, int64(5), page.TotalElements)
	assert.Equal(t, 2, page.PageNumber)
	assert.True(t, page.IsLast)
	assert.False(t, page.IsFirst)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "lister", page.Content[0].Nickname)
	assert.Nil(t, page.Content[0].ReviewImage)

	_, err = svc.ListReviews(ctx, pineSite, 0, 2)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidArgument))

	mine, err := svc.ListMemberReviews(ctx, member.Email, 1, 10)
	require.NoError(t, err)
	assert.Len(t, mine.Content, 5)

	empty, err := svc.ListReviews(ctx, model.LocationKey{MapX: "0", MapY: "0"}, 1, 10)
	require.NoError(t, err)
	assert.NotNil(t, empty.Content)
	assert.Empty(t, empty.Content)
}
