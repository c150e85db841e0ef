package controller

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/ikkim/camping-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *testServer) createBoard(t *testing.T, email string, req model.CreateBoardRequest) uint {
	t.Helper()
	w := s.do(t, http.MethodPost, "/boards", email, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return uint(decode(t, w)["boardId"].(float64))
}

func TestBoardController_CreateAndDetail(t *testing.T) {
	s := setupControllerTest(t)
	author := s.seedMember(t, "author")
	viewer := s.seedMember(t, "viewer")

	w := s.do(t, http.MethodPost, "/boards", author.Email, model.CreateBoardRequest{
		Title:    "Lakeside site",
		Content:  "quiet at night",
		Category: "review",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	assert.Equal(t, "author", created["nickname"])
	assert.Contains(t, created, "boardImage")
	assert.Nil(t, created["boardImage"])
	boardID := uint(created["boardId"].(float64))

	path := fmt.Sprintf("/boards/%d", boardID)
	require.Equal(t, http.StatusNoContent, s.do(t, http.MethodPost, path+"/like", viewer.Email, nil).Code)

	w = s.do(t, http.MethodGet, path, viewer.Email, nil)
	require.Equal(t, http.StatusOK, w.Code)
	detail := decode(t, w)
	assert.Equal(t, float64(1), detail["viewCount"])
	assert.Equal(t, float64(1), detail["likeCount"])
	assert.Equal(t, true, detail["isLiked"])

	// 익명 조회는 isLiked=false, 조회수는 계속 증가
	w = s.do(t, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	detail = decode(t, w)
	assert.Equal(t, float64(2), detail["viewCount"])
	assert.Equal(t, false, detail["isLiked"])
}

func TestBoardController_CreateRequiresMember(t *testing.T) {
	s := setupControllerTest(t)

	w := s.do(t, http.MethodPost, "/boards", "", model.CreateBoardRequest{Title: "t", Content: "c"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTH_UNAUTHORIZED", errorCode(t, w))
}

func TestBoardController_CreateValidation(t *testing.T) {
	s := setupControllerTest(t)
	author := s.seedMember(t, "author")

	w := s.do(t, http.MethodPost, "/boards", author.Email, map[string]string{"content": "no title"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_INVALID_INPUT", errorCode(t, w))
}

func TestBoardController_DetailNotFoundAndBadID(t *testing.T) {
	s := setupControllerTest(t)

	w := s.do(t, http.MethodGet, "/boards/999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "BOARD_NOT_FOUND", errorCode(t, w))

	w = s.do(t, http.MethodGet, "/boards/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBoardController_OwnerOnly(t *testing.T) {
	s := setupControllerTest(t)
	author := s.seedMember(t, "author")
	other := s.seedMember(t, "other")
	boardID := s.createBoard(t, author.Email, model.CreateBoardRequest{Title: "mine", Content: "c"})
	path := fmt.Sprintf("/boards/%d", boardID)

	title := "hijacked"
	w := s.do(t, http.MethodPut, path, other.Email, model.UpdateBoardRequest{Title: &title})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "AUTHZ_OWNER_ONLY", errorCode(t, w))

	w = s.do(t, http.MethodDelete, path, other.Email, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	title = "renamed"
	w = s.do(t, http.MethodPut, path, author.Email, model.UpdateBoardRequest{Title: &title})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "renamed", decode(t, w)["title"])

	assert.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, path, author.Email, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, path, "", nil).Code)
}

func TestBoardController_LikeTwiceConflicts(t *testing.T) {
	s := setupControllerTest(t)
	author := s.seedMember(t, "author")
	fan := s.seedMember(t, "fan")
	boardID := s.createBoard(t, author.Email, model.CreateBoardRequest{Title: "t", Content: "c"})
	path := fmt.Sprintf("/boards/%d/like", boardID)

	require.Equal(t, http.StatusNoContent, s.do(t, http.MethodPost, path, fan.Email, nil).Code)

	w := s.do(t, http.MethodPost, path, fan.Email, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "LIKE_ALREADY_EXISTS", errorCode(t, w))

	require.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, path, fan.Email, nil).Code)
	w = s.do(t, http.MethodDelete, path, fan.Email, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "LIKE_NOT_FOUND", errorCode(t, w))
}

func TestBoardController_SearchPageContract(t *testing.T) {
	s := setupControllerTest(t)
	author := s.seedMember(t, "author")
	for i := 0; i < 3; i++ {
		s.createBoard(t, author.Email, model.CreateBoardRequest{
			Title:    fmt.Sprintf("Tent tips %d", i),
			Content:  "c",
			Category: "gear",
		})
	}
	s.createBoard(t, author.Email, model.CreateBoardRequest{Title: "Stove", Content: "c", Category: "gear"})

	w := s.do(t, http.MethodGet, "/boards/search?keyword=TENT&category=gear&page=2&size=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	page := decode(t, w)

	for _, key := range []string{"content", "totalPages", "totalElements", "pageNumber", "pageSize", "isFirst", "isLast"} {
		assert.Contains(t, page, key)
	}
	assert.Equal(t, float64(3), page["totalElements"])
	assert.Equal(t, float64(2), page["totalPages"])
	assert.Equal(t, float64(1), page["pageNumber"])
	assert.Equal(t, false, page["isFirst"])
	assert.Equal(t, true, page["isLast"])

	content := page["content"].([]interface{})
	require.Len(t, content, 1)
	item := content[0].(map[string]interface{})
	assert.Equal(t, "", item["boardImage"])
	assert.Equal(t, "TENT", item["keyword"])
}

func TestBoardController_ListByCategoryEmptyPage(t *testing.T) {
	s := setupControllerTest(t)

	w := s.do(t, http.MethodGet, "/boards?category=none", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode(t, w)
	assert.Equal(t, []interface{}{}, page["content"])
	assert.Equal(t, float64(0), page["totalPages"])
	assert.Equal(t, float64(0), page["pageNumber"])
}

func TestBoardController_PageParams(t *testing.T) {
	s := setupControllerTest(t)

	w := s.do(t, http.MethodGet, "/boards?page=0", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_INVALID_RANGE", errorCode(t, w))

	w = s.do(t, http.MethodGet, "/boards?size=ten", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_INVALID_INPUT", errorCode(t, w))

	w = s.do(t, http.MethodGet, "/boards?size=101", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_INVALID_RANGE", errorCode(t, w))
}

func TestBoardController_TopBoardsAfterRankUpdate(t *testing.T) {
	s := setupControllerTest(t)
	author := s.seedMember(t, "author")
	low := s.createBoard(t, author.Email, model.CreateBoardRequest{Title: "low", Content: "c"})
	high := s.createBoard(t, author.Email, model.CreateBoardRequest{Title: "high", Content: "c", BoardImage: "https://cdn.test/a.png"})

	w := s.do(t, http.MethodPut, fmt.Sprintf("/internal/boards/%d/rank", high), "", map[string]int{"rank": 50})
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/boards/top?limit=5", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var items []model.BoardRankItem
	require.NoError(t, jsonUnmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 2)
	assert.Equal(t, high, items[0].BoardID)
	assert.Equal(t, 50, items[0].Rank)
	require.NotNil(t, items[0].BoardImage)
	assert.Equal(t, low, items[1].BoardID)
	assert.Nil(t, items[1].BoardImage)

	w = s.do(t, http.MethodGet, "/boards/top?limit=0", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPut, "/internal/boards/999/rank", "", map[string]int{"rank": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPut, fmt.Sprintf("/internal/boards/%d/rank", high), "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
