package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/camping-backend/internal/app/model"
	"github.com/ikkim/camping-backend/internal/app/repository"
	"github.com/ikkim/camping-backend/internal/app/service"
	"github.com/ikkim/camping-backend/internal/db"
	"github.com/ikkim/camping-backend/internal/middleware"
	"github.com/ikkim/camping-backend/internal/storage"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const emailHeader = "X-Member-Email"

// fakePresigner S3 없이 업로드 URL을 만든다
type fakePresigner struct{}

func (fakePresigner) PresignUpload(_ context.Context, folder storage.Folder, filename, _ string) (*storage.PresignedUpload, error) {
	key := fmt.Sprintf("%s/test-%s", folder, filename)
	return &storage.PresignedUpload{
		UploadURL: "https://upload.test/" + key,
		FileURL:   "https://cdn.test/" + key,
		Key:       key,
		ExpiresAt: time.Date(2026, 6, 1, 0, 15, 0, 0, time.UTC),
	}, nil
}

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
}

func setupControllerTest(t *testing.T) *testServer {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	boardRepo := repository.NewBoardRepository(testDB)
	commentRepo := repository.NewCommentRepository(testDB)
	memberRepo := repository.NewMemberRepository(testDB)
	reviewRepo := repository.NewReviewRepository(testDB)

	boards := NewBoardController(service.NewBoardService(boardRepo, memberRepo))
	comments := NewCommentController(service.NewCommentService(commentRepo, boardRepo, memberRepo))
	reviews := NewReviewController(service.NewReviewService(reviewRepo, memberRepo))
	members := NewMemberController(
		service.NewMemberService(memberRepo),
		service.NewMemberRankService(memberRepo, time.Now, 7*24*time.Hour),
	)
	uploads := NewUploadController(service.NewImageService(fakePresigner{}))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	identity := middleware.NewIdentityMiddleware(emailHeader)
	router.Use(identity.Identify())

	auth := identity.RequireMember()
	router.GET("/boards/top", boards.GetTopBoards)
	router.GET("/boards/search", boards.Search)
	router.GET("/boards", boards.ListByCategory)
	router.GET("/boards/:id", boards.GetDetail)
	router.POST("/boards", auth, boards.CreateBoard)
	router.PUT("/boards/:id", auth, boards.UpdateBoard)
	router.DELETE("/boards/:id", auth, boards.DeleteBoard)
	router.POST("/boards/:id/like", auth, boards.LikeBoard)
	router.DELETE("/boards/:id/like", auth, boards.UnlikeBoard)
	router.PUT("/internal/boards/:id/rank", boards.UpdateRank)

	router.GET("/boards/:id/comments", comments.ListComments)
	router.POST("/boards/:id/comments", auth, comments.CreateComment)
	router.DELETE("/comments/:commentId", auth, comments.DeleteComment)

	router.GET("/reviews", reviews.ListReviews)
	router.GET("/reviews/summary", reviews.GetSummary)
	router.POST("/reviews", auth, reviews.AddReview)
	router.PUT("/reviews/:id", auth, reviews.UpdateReview)
	router.DELETE("/reviews/:id", auth, reviews.DeleteReview)
	router.DELETE("/internal/reviews/:id", reviews.RemoveReview)

	router.POST("/members", auth, members.Register)
	router.GET("/members/me", auth, members.GetMe)
	router.GET("/members/me/reviews", auth, reviews.ListMyReviews)
	router.GET("/members/rank", members.GetRanking)
	router.GET("/members/rank/weekly", members.GetWeeklyRanking)

	router.POST("/uploads/presigned-url", auth, uploads.GeneratePresignedURL)

	return &testServer{router: router, db: testDB}
}

// do 요청을 보내고 응답을 돌려준다. email이 비어 있으면 익명 요청.
func (s *testServer) do(t *testing.T, method, path, email string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if email != "" {
		req.Header.Set(emailHeader, email)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) seedMember(t *testing.T, name string) *model.Member {
	member := &model.Member{
		Email:       name + "@camp.test",
		Nickname:    name,
		MemberGrade: model.GradeGreen,
	}
	require.NoError(t, s.db.Create(member).Error)
	return member
}

func jsonUnmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	code, _ := decode(t, w)["error"].(string)
	return code
}
