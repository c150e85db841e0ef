package service

import (
	"context"
	"testing"

	"github.com/ikkim/camping-backend/internal/app/model"
	"github.com/ikkim/camping-backend/internal/app/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupGradeServiceTest(t *testing.T) (GradeService, *gorm.DB) {
	testDB := setupServiceDB(t)
	return NewGradeService(repository.NewMemberRepository(testDB)), testDB
}

func gradeOf(t *testing.T, testDB *gorm.DB, member *model.Member) model.MemberGrade {
	var found model.Member
	require.NoError(t, testDB.First(&found, member.ID).Error)
	return found.MemberGrade
}

func TestGradeService_PromoteWeekly_Empty(t *testing.T) {
	svc, _ := setupGradeServiceTest(t)

	changed, err := svc.PromoteWeekly(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, changed)
}

func TestGradeService_PromoteWeekly(t *testing.T) {
	svc, testDB := setupGradeServiceTest(t)
	ctx := context.Background()

	black := seedMember(t, testDB, "black")
	red := seedMember(t, testDB, "red")
	blue := seedMember(t, testDB, "blue")
	green := seedMember(t, testDB, "green")
	fallen := seedMember(t, testDB, "fallen")
	require.NoError(t, testDB.Model(fallen).Update("member_grade", model.GradeRed).Error)

	// 여러 게시글의 좋아요가 합산된다
	seedBoard(t, testDB, black, boardSeed{title: "b1", likes: 60})
	seedBoard(t, testDB, black, boardSeed{title: "b2", likes: 40})
	seedBoard(t, testDB, red, boardSeed{title: "r1", likes: 50})
	seedBoard(t, testDB, blue, boardSeed{title: "u1", likes: 20})
	seedBoard(t, testDB, green, boardSeed{title: "g1", likes: 19})

	changed, err := svc.PromoteWeekly(ctx)
	require.NoError(t, err)
	// black, red, blue 승급 + 게시글 없는 fallen 강등
	assert.Equal(t, 4, changed)

	assert.Equal(t, model.GradeBlack, gradeOf(t, testDB, black))
	assert.Equal(t, model.GradeRed, gradeOf(t, testDB, red))
	assert.Equal(t, model.GradeBlue, gradeOf(t, testDB, blue))
	assert.Equal(t, model.GradeGreen, gradeOf(t, testDB, green))
	assert.Equal(t, model.GradeGreen, gradeOf(t, testDB, fallen))

	changed, err = svc.PromoteWeekly(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, changed)
}

func TestGradeService_PromoteWeekly_CountsOwnedNotLiked(t *testing.T) {
	svc, testDB := setupGradeServiceTest(t)
	ctx := context.Background()

	author := seedMember(t, testDB, "author")
	liker := seedMember(t, testDB, "liker")
	board := seedBoard(t, testDB, author, boardSeed{title: "popular"})

	boards := repository.NewBoardRepository(testDB)
	for i := 0; i < 20; i++ {
		fan := seedMember(t, testDB, "fan"+string(rune('a'+i)))
		require.NoError(t, boards.Like(ctx, board.ID, fan.ID))
	}
	require.NoError(t, boards.Like(ctx, board.ID, liker.ID))

	changed, err := svc.PromoteWeekly(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, changed)
	assert.Equal(t, model.GradeBlue, gradeOf(t, testDB, author))
	assert.Equal(t, model.GradeGreen, gradeOf(t, testDB, liker))
}
