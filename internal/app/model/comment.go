package model

import (
	"time"
)

// Comment 게시글 댓글
type Comment struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Content string `gorm:"type:text;not null" json:"content"`

	BoardID  uint   `gorm:"not null;index" json:"board_id"`
	MemberID uint   `gorm:"not null;index" json:"member_id"`
	Member   Member `gorm:"foreignKey:MemberID" json:"member"`
}

func (Comment) TableName() string {
	return "comments"
}
