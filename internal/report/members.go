package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/ikkim/camping-backend/internal/app/model"
	"github.com/xuri/excelize/v2"
)

// ReadMembers 첫 시트의 (email, nickname, name) 행을 회원으로 읽는다.
// 첫 행은 헤더. 이메일이나 닉네임이 비었거나 중복된 행은 건너뛴다.
func ReadMembers(r io.Reader) ([]model.Member, int, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, 0, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("no data found in XLSX file")
	}

	var members []model.Member
	seenEmails := make(map[string]bool)
	seenNicknames := make(map[string]bool)
	skipped := 0

	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) < 2 {
			skipped++
			continue
		}

		email := strings.ToLower(strings.TrimSpace(row[0]))
		nickname := strings.TrimSpace(row[1])
		name := ""
		if len(row) > 2 {
			name = strings.TrimSpace(row[2])
		}

		if email == "" || nickname == "" || seenEmails[email] || seenNicknames[nickname] {
			skipped++
			continue
		}
		seenEmails[email] = true
		seenNicknames[nickname] = true

		members = append(members, model.Member{
			Email:       email,
			Nickname:    nickname,
			Name:        name,
			MemberGrade: model.GradeGreen,
		})
	}

	return members, skipped, nil
}
