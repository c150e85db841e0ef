package model

import (
	"time"
)

// MemberGrade 회원 등급 (GREEN < BLUE < RED < BLACK)
type MemberGrade string

const (
	GradeGreen MemberGrade = "GREEN"
	GradeBlue  MemberGrade = "BLUE"
	GradeRed   MemberGrade = "RED"
	GradeBlack MemberGrade = "BLACK"
)

// 등급 승급 기준 (작성 게시글이 받은 좋아요 합계)
const (
	BlackGradeLikes = 100
	RedGradeLikes   = 50
	BlueGradeLikes  = 20
)

// GradeForLikes 좋아요 합계에 해당하는 등급. 높은 등급부터 비교한다.
func GradeForLikes(totalLikes int64) MemberGrade {
	switch {
	case totalLikes >= BlackGradeLikes:
		return GradeBlack
	case totalLikes >= RedGradeLikes:
		return GradeRed
	case totalLikes >= BlueGradeLikes:
		return GradeBlue
	default:
		return GradeGreen
	}
}

// Member 회원. 좋아요 합계는 저장하지 않고 배치에서 매번 다시 계산한다.
type Member struct {
	ID           uint        `gorm:"primarykey" json:"id"`
	Email        string      `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Nickname     string      `gorm:"type:varchar(50);uniqueIndex;not null" json:"nickname"`
	Name         string      `gorm:"type:varchar(50)" json:"name"`
	ProfileImage string      `json:"profile_image"`
	MemberGrade  MemberGrade `gorm:"type:varchar(10);not null;default:'GREEN'" json:"member_grade"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func (Member) TableName() string {
	return "members"
}

// MemberLikeTotal 회원별 좋아요 합계 (집계 쿼리 결과)
type MemberLikeTotal struct {
	MemberID   uint  `json:"member_id"`
	TotalLikes int64 `json:"total_likes"`
}
