package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AverageScale 저장되는 평균 평점의 소수 자릿수
const AverageScale = 4

var (
	MinScore  = decimal.RequireFromString("0.5")
	MaxScore  = decimal.NewFromInt(5)
	scoreStep = decimal.RequireFromString("0.5")
)

// ValidScore 0.5 ~ 5.0 사이의 0.5 단위 평점인지
func ValidScore(score decimal.Decimal) bool {
	if score.LessThan(MinScore) || score.GreaterThan(MaxScore) {
		return false
	}
	return score.Mod(scoreStep).IsZero()
}

// LocationKey 캠핑장 좌표 (mapX, mapY). 외부 디렉터리의 값을 그대로 쓰는 불변 키.
type LocationKey struct {
	MapX string `json:"mapX"`
	MapY string `json:"mapY"`
}

// Review 캠핑장 리뷰
type Review struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	MapX string `gorm:"type:varchar(50);not null;index:idx_review_location" json:"map_x"`
	MapY string `gorm:"type:varchar(50);not null;index:idx_review_location" json:"map_y"`

	MemberID uint   `gorm:"not null;index" json:"member_id"`
	Member   Member `gorm:"foreignKey:MemberID" json:"member"`

	Score       decimal.Decimal `gorm:"type:decimal(2,1);not null" json:"score"` // 0.5 ~ 5.0, 0.5 단위
	Content     string          `gorm:"type:text" json:"content"`
	ReviewImage string          `gorm:"type:varchar(500)" json:"review_image"`
}

func (Review) TableName() string {
	return "reviews"
}

// Location 리뷰 대상 좌표
func (r *Review) Location() LocationKey {
	return LocationKey{MapX: r.MapX, MapY: r.MapY}
}

// ReviewAggregate 좌표별 리뷰 수와 평균 평점.
// 행이 존재하면 Count >= 1 이고, 마지막 리뷰가 지워지면 행도 삭제된다.
type ReviewAggregate struct {
	MapX      string          `gorm:"primaryKey;type:varchar(50)" json:"map_x"`
	MapY      string          `gorm:"primaryKey;type:varchar(50)" json:"map_y"`
	Count     int64           `gorm:"column:review_count;not null;default:0" json:"count"`
	Average   decimal.Decimal `gorm:"column:average_score;type:decimal(6,4);not null;default:0" json:"average"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (ReviewAggregate) TableName() string {
	return "review_aggregates"
}

// AddScore count+1, (average*count + score) / (count+1)
func (a *ReviewAggregate) AddScore(score decimal.Decimal) {
	total := a.Average.Mul(decimal.NewFromInt(a.Count)).Add(score)
	a.Count++
	a.Average = total.DivRound(decimal.NewFromInt(a.Count), AverageScale)
}

// RemoveScore count-1, (average*count - score) / (count-1).
// Returns true when the last review is gone and the row should be deleted.
func (a *ReviewAggregate) RemoveScore(score decimal.Decimal) bool {
	if a.Count <= 1 {
		a.Count = 0
		a.Average = decimal.Zero
		return true
	}
	total := a.Average.Mul(decimal.NewFromInt(a.Count)).Sub(score)
	a.Count--
	a.Average = total.DivRound(decimal.NewFromInt(a.Count), AverageScale)
	return false
}

// ReplaceScore keeps the count and swaps one score for another
func (a *ReviewAggregate) ReplaceScore(oldScore, newScore decimal.Decimal) {
	if a.Count == 0 {
		return
	}
	count := decimal.NewFromInt(a.Count)
	total := a.Average.Mul(count).Sub(oldScore).Add(newScore)
	a.Average = total.DivRound(count, AverageScale)
}
