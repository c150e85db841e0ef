package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ikkim/camping-backend/config"
	"github.com/ikkim/camping-backend/internal/app/controller"
	"github.com/ikkim/camping-backend/internal/app/repository"
	"github.com/ikkim/camping-backend/internal/app/service"
	"github.com/ikkim/camping-backend/internal/db"
	"github.com/ikkim/camping-backend/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) http.Handler {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	boardRepo := repository.NewBoardRepository(testDB)
	commentRepo := repository.NewCommentRepository(testDB)
	memberRepo := repository.NewMemberRepository(testDB)
	reviewRepo := repository.NewReviewRepository(testDB)

	cfg := &config.Config{
		Server:   config.ServerConfig{GinMode: "test"},
		CORS:     config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		Identity: config.IdentityConfig{EmailHeader: "X-Member-Email"},
	}

	r := NewRouter(
		controller.NewBoardController(service.NewBoardService(boardRepo, memberRepo)),
		controller.NewCommentController(service.NewCommentService(commentRepo, boardRepo, memberRepo)),
		controller.NewReviewController(service.NewReviewService(reviewRepo, memberRepo)),
		controller.NewMemberController(
			service.NewMemberService(memberRepo),
			service.NewMemberRankService(memberRepo, time.Now, 7*24*time.Hour),
		),
		controller.NewUploadController(service.NewImageService(nil)),
		middleware.NewIdentityMiddleware(cfg.Identity.EmailHeader),
		cfg,
	)
	return r.Setup()
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	h := setupRouter(t)

	w := serve(h, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = serve(h, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "camping_http_requests_total")
}

func TestRouter_PublicAndProtectedRoutes(t *testing.T) {
	h := setupRouter(t)

	w := serve(h, httptest.NewRequest(http.MethodGet, "/api/v1/boards/top", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = serve(h, httptest.NewRequest(http.MethodGet, "/api/v1/reviews/summary?mapX=1&mapY=2", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(h, httptest.NewRequest(http.MethodPost, "/api/v1/boards", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(h, httptest.NewRequest(http.MethodDelete, "/api/v1/comments/1", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_CORS(t *testing.T) {
	h := setupRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/boards", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := serve(h, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.test")
	w = serve(h, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
