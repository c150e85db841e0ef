package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/ikkim/camping-backend/internal/app/model"
	"github.com/ikkim/camping-backend/internal/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRepoTest(t *testing.T) *gorm.DB {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })
	return testDB
}

func createMember(t *testing.T, testDB *gorm.DB, name string) *model.Member {
	member := &model.Member{
		Email:       fmt.Sprintf("%s@camp.test", name),
		Nickname:    name,
		Name:        name,
		MemberGrade: model.GradeGreen,
	}
	require.NoError(t, testDB.Create(member).Error)
	return member
}

func createBoard(t *testing.T, testDB *gorm.DB, owner *model.Member, title, category string, createdAt time.Time) *model.Board {
	board := &model.Board{
		Title:     title,
		Content:   title + " content",
		Category:  category,
		MemberID:  owner.ID,
		CreatedAt: createdAt,
	}
	require.NoError(t, testDB.Omit("Member").Create(board).Error)
	return board
}

func createLike(t *testing.T, testDB *gorm.DB, board *model.Board, member *model.Member, at time.Time) {
	like := &model.BoardLike{BoardID: board.ID, MemberID: member.ID, CreatedAt: at}
	require.NoError(t, testDB.Omit("Board", "Member").Create(like).Error)
	require.NoError(t, testDB.Model(&model.Board{}).Where("id = ?", board.ID).
		UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error)
}
