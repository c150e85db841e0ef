package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ==================== Requests ====================

// CreateBoardRequest 게시글 생성 요청
type CreateBoardRequest struct {
	Title      string `json:"title" binding:"required,min=1,max=200"`
	Content    string `json:"content" binding:"required"`
	Category   string `json:"category"`
	BoardImage string `json:"boardImage"`
}

// UpdateBoardRequest 게시글 수정 요청
type UpdateBoardRequest struct {
	Title      *string `json:"title,omitempty" binding:"omitempty,min=1,max=200"`
	Content    *string `json:"content,omitempty"`
	Category   *string `json:"category,omitempty"`
	BoardImage *string `json:"boardImage,omitempty"`
}

// CreateCommentRequest 댓글 작성 요청
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1"`
}

// UpdateRankRequest 인기 점수 갱신 요청 (외부 랭킹 잡)
type UpdateRankRequest struct {
	Rank *int `json:"rank" binding:"required"`
}

// RegisterMemberRequest 회원 등록 요청. 이메일은 인증 게이트웨이가 넘겨준 값을 쓴다.
type RegisterMemberRequest struct {
	Nickname     string `json:"nickname" binding:"required,min=2,max=50"`
	Name         string `json:"name" binding:"omitempty,max=50"`
	ProfileImage string `json:"profileImage"`
}

// AddReviewRequest 리뷰 작성 요청
type AddReviewRequest struct {
	MapX        string          `json:"mapX" binding:"required,max=50"`
	MapY        string          `json:"mapY" binding:"required,max=50"`
	Score       decimal.Decimal `json:"score"`
	Content     string          `json:"content"`
	ReviewImage string          `json:"reviewImage"`
}

// UpdateReviewRequest 리뷰 수정 요청
type UpdateReviewRequest struct {
	Score       *decimal.Decimal `json:"score,omitempty"`
	Content     *string          `json:"content,omitempty"`
	ReviewImage *string          `json:"reviewImage,omitempty"`
}

// PresignUploadRequest 업로드 URL 발급 요청
type PresignUploadRequest struct {
	Folder      string `json:"folder" binding:"required"`
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}

// AddReviewInput 리뷰 작성 입력. 평점 범위는 요청 검증 계층에서 확인한다.
type AddReviewInput struct {
	Location    LocationKey
	Score       decimal.Decimal
	Content     string
	ReviewImage string
	MemberEmail string
}

// UpdateReviewInput 리뷰 수정 입력
type UpdateReviewInput struct {
	Score       *decimal.Decimal
	Content     *string
	ReviewImage *string
}

// ==================== Responses ====================

// BoardRankItem 인기 게시글 항목. 이미지가 없으면 boardImage는 null.
type BoardRankItem struct {
	BoardID    uint      `json:"boardId"`
	Title      string    `json:"title"`
	Category   string    `json:"category"`
	Nickname   string    `json:"nickname"`
	BoardImage *string   `json:"boardImage"`
	ViewCount  int       `json:"viewCount"`
	LikeCount  int       `json:"likeCount"`
	Rank       int       `json:"rank"`
	CreatedAt  time.Time `json:"createdAt"`
}

// BoardSummary 검색/카테고리 목록 항목. 이미지가 없으면 boardImage는 "".
type BoardSummary struct {
	BoardID      uint      `json:"boardId"`
	Title        string    `json:"title"`
	Category     string    `json:"category"`
	Nickname     string    `json:"nickname"`
	BoardImage   string    `json:"boardImage"`
	ViewCount    int       `json:"viewCount"`
	LikeCount    int       `json:"likeCount"`
	CommentCount int       `json:"commentCount"`
	Keyword      string    `json:"keyword,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// BoardDetail 게시글 상세
type BoardDetail struct {
	BoardID      uint        `json:"boardId"`
	Title        string      `json:"title"`
	Content      string      `json:"content"`
	Category     string      `json:"category"`
	BoardImage   *string     `json:"boardImage"`
	Email        string      `json:"email"`
	Nickname     string      `json:"nickname"`
	MemberGrade  MemberGrade `json:"memberGrade"`
	ViewCount    int         `json:"viewCount"`
	LikeCount    int         `json:"likeCount"`
	CommentCount int         `json:"commentCount"`
	IsLiked      bool        `json:"isLiked"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// CommentItem 댓글 항목
type CommentItem struct {
	CommentID uint      `json:"commentId"`
	BoardID   uint      `json:"boardId"`
	Email     string    `json:"email"`
	Nickname  string    `json:"nickname"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReviewItem 리뷰 목록 항목
type ReviewItem struct {
	ReviewID    uint            `json:"reviewId"`
	MapX        string          `json:"mapX"`
	MapY        string          `json:"mapY"`
	Email       string          `json:"email"`
	Nickname    string          `json:"nickname"`
	Score       decimal.Decimal `json:"score"`
	Content     string          `json:"content"`
	ReviewImage *string         `json:"reviewImage"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// MemberProfile 회원 정보
type MemberProfile struct {
	MemberID     uint        `json:"memberId"`
	Email        string      `json:"email"`
	Nickname     string      `json:"nickname"`
	Name         string      `json:"name"`
	ProfileImage string      `json:"profileImage"`
	MemberGrade  MemberGrade `json:"memberGrade"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// ReviewSummary 좌표별 리뷰 수/평균. 리뷰가 없으면 0/0.
type ReviewSummary struct {
	Count   int64           `json:"count"`
	Average decimal.Decimal `json:"average"`
}

// MemberRankItem 기간 내 받은 좋아요 순위 항목
type MemberRankItem struct {
	MemberID    uint        `json:"memberId"`
	Email       string      `json:"email"`
	Nickname    string      `json:"nickname"`
	MemberGrade MemberGrade `json:"memberGrade"`
	TotalLikes  int64       `json:"totalLikes"`
}

// nullable 빈 문자열을 nil로
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ToRankItem 인기 게시글 항목으로 변환
func (b *Board) ToRankItem() BoardRankItem {
	return BoardRankItem{
		BoardID:    b.ID,
		Title:      b.Title,
		Category:   b.Category,
		Nickname:   b.Member.Nickname,
		BoardImage: nullable(b.BoardImage),
		ViewCount:  b.ViewCount,
		LikeCount:  b.LikeCount,
		Rank:       b.Rank,
		CreatedAt:  b.CreatedAt,
	}
}

// ToSummary 목록 항목으로 변환. keyword는 그대로 돌려준다.
func (b *Board) ToSummary(keyword string) BoardSummary {
	return BoardSummary{
		BoardID:      b.ID,
		Title:        b.Title,
		Category:     b.Category,
		Nickname:     b.Member.Nickname,
		BoardImage:   b.BoardImage,
		ViewCount:    b.ViewCount,
		LikeCount:    b.LikeCount,
		CommentCount: b.CommentCount,
		Keyword:      keyword,
		CreatedAt:    b.CreatedAt,
	}
}

// ToDetail 상세 응답으로 변환
func (b *Board) ToDetail(isLiked bool) BoardDetail {
	return BoardDetail{
		BoardID:      b.ID,
		Title:        b.Title,
		Content:      b.Content,
		Category:     b.Category,
		BoardImage:   nullable(b.BoardImage),
		Email:        b.Member.Email,
		Nickname:     b.Member.Nickname,
		MemberGrade:  b.Member.MemberGrade,
		ViewCount:    b.ViewCount,
		LikeCount:    b.LikeCount,
		CommentCount: b.CommentCount,
		IsLiked:      isLiked,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func (c *Comment) ToItem() CommentItem {
	return CommentItem{
		CommentID: c.ID,
		BoardID:   c.BoardID,
		Email:     c.Member.Email,
		Nickname:  c.Member.Nickname,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (r *Review) ToItem() ReviewItem {
	return ReviewItem{
		ReviewID:    r.ID,
		MapX:        r.MapX,
		MapY:        r.MapY,
		Email:       r.Member.Email,
		Nickname:    r.Member.Nickname,
		Score:       r.Score,
		Content:     r.Content,
		ReviewImage: nullable(r.ReviewImage),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (m *Member) ToProfile() MemberProfile {
	return MemberProfile{
		MemberID:     m.ID,
		Email:        m.Email,
		Nickname:     m.Nickname,
		Name:         m.Name,
		ProfileImage: m.ProfileImage,
		MemberGrade:  m.MemberGrade,
		CreatedAt:    m.CreatedAt,
	}
}
