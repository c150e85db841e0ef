package model

import (
	"time"
)

// Board 커뮤니티 게시글
type Board struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title      string `gorm:"type:varchar(200);not null" json:"title"`
	Content    string `gorm:"type:text;not null" json:"content"`
	Category   string `gorm:"type:varchar(50);not null;default:'';index" json:"category"`
	BoardImage string `gorm:"type:varchar(500)" json:"board_image"` // 없으면 빈 문자열

	// 작성자
	MemberID uint   `gorm:"not null;index" json:"member_id"`
	Member   Member `gorm:"foreignKey:MemberID" json:"member"`

	// 통계
	ViewCount    int `gorm:"not null;default:0" json:"view_count"`
	LikeCount    int `gorm:"not null;default:0" json:"like_count"`
	CommentCount int `gorm:"not null;default:0" json:"comment_count"`

	// 외부에서 갱신하는 인기 점수
	Rank int `gorm:"column:rank_score;not null;default:0;index" json:"rank"`
}

func (Board) TableName() string {
	return "boards"
}

// BoardLike 게시글 좋아요. (board_id, member_id) 당 한 행.
type BoardLike struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	BoardID  uint `gorm:"not null;uniqueIndex:idx_board_member_like" json:"board_id"`
	MemberID uint `gorm:"not null;uniqueIndex:idx_board_member_like" json:"member_id"`

	Board  Board  `gorm:"foreignKey:BoardID" json:"-"`
	Member Member `gorm:"foreignKey:MemberID" json:"-"`
}

func (BoardLike) TableName() string {
	return "board_likes"
}
