// Package report reads and writes the XLSX workbooks used by the operator commands.
package report

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ikkim/camping-backend/internal/app/model"
	"github.com/xuri/excelize/v2"
)

const (
	boardsSheet  = "Top Boards"
	membersSheet = "Top Members"
)

// BoardRanker service.BoardService
type BoardRanker interface {
	GetTopBoards(ctx context.Context, limit int) ([]model.BoardRankItem, error)
}

// MemberRanker service.MemberRankService
type MemberRanker interface {
	TopMembersInWindowLimit(ctx context.Context, start, end time.Time, limit int) ([]model.MemberRankItem, error)
}

// Weekly 주간 랭킹 스냅샷
type Weekly struct {
	Start   time.Time
	End     time.Time
	Boards  []model.BoardRankItem
	Members []model.MemberRankItem
}

// BuildWeekly end 기준 window 동안의 인기 게시글/회원 순위를 모은다
func BuildWeekly(ctx context.Context, boards BoardRanker, members MemberRanker, end time.Time, window time.Duration, limit int) (*Weekly, error) {
	start := end.Add(-window)

	topBoards, err := boards.GetTopBoards(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("top boards: %w", err)
	}
	topMembers, err := members.TopMembersInWindowLimit(ctx, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("top members: %w", err)
	}

	return &Weekly{Start: start, End: end, Boards: topBoards, Members: topMembers}, nil
}

// Write 두 개의 시트로 된 xlsx를 out에 쓴다
func (w *Weekly) Write(out io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), boardsSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(membersSheet); err != nil {
		return err
	}

	period := fmt.Sprintf("%s ~ %s", w.Start.UTC().Format(time.RFC3339), w.End.UTC().Format(time.RFC3339))

	boardRows := [][]interface{}{
		{"Period", period},
		{"Rank", "Board ID", "Title", "Category", "Nickname", "Score", "Views", "Likes", "Created At"},
	}
	for i, b := range w.Boards {
		boardRows = append(boardRows, []interface{}{
			i + 1, b.BoardID, b.Title, b.Category, b.Nickname, b.Rank, b.ViewCount, b.LikeCount,
			b.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	if err := writeRows(f, boardsSheet, boardRows); err != nil {
		return err
	}

	memberRows := [][]interface{}{
		{"Period", period},
		{"Rank", "Member ID", "Nickname", "Grade", "Likes"},
	}
	for i, m := range w.Members {
		memberRows = append(memberRows, []interface{}{
			i + 1, m.MemberID, m.Nickname, string(m.MemberGrade), m.TotalLikes,
		})
	}
	if err := writeRows(f, membersSheet, memberRows); err != nil {
		return err
	}

	_, err := f.WriteTo(out)
	return err
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
