package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/ikkim/camping-backend/internal/app/model"
	"github.com/ikkim/camping-backend/internal/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupServiceDB(t *testing.T) *gorm.DB {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	return testDB
}

func seedMember(t *testing.T, testDB *gorm.DB, name string) *model.Member {
	member := &model.Member{
		Email:       fmt.Sprintf("%s@camp.test", name),
		Nickname:    name,
		Name:        name,
		MemberGrade: model.GradeGreen,
	}
	require.NoError(t, testDB.Create(member).Error)
	return member
}

type boardSeed struct {
	title     string
	category  string
	rank      int
	views     int
	likes     int
	image     string
	createdAt time.Time
}

func seedBoard(t *testing.T, testDB *gorm.DB, owner *model.Member, seed boardSeed) *model.Board {
	if seed.createdAt.IsZero() {
		seed.createdAt = time.Now().UTC()
	}
	board := &model.Board{
		Title:      seed.title,
		Content:    seed.title + " content",
		Category:   seed.category,
		BoardImage: seed.image,
		MemberID:   owner.ID,
		Rank:       seed.rank,
		ViewCount:  seed.views,
		LikeCount:  seed.likes,
		CreatedAt:  seed.createdAt,
	}
	require.NoError(t, testDB.Omit("Member").Create(board).Error)
	return board
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}
