package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/camping-backend/internal/app/model"
	"github.com/ikkim/camping-backend/internal/app/service"
	apperrors "github.com/ikkim/camping-backend/internal/errors"
	"github.com/ikkim/camping-backend/internal/middleware"
)

const defaultTopLimit = 10

type BoardController struct {
	boardService service.BoardService
}

func NewBoardController(boardService service.BoardService) *BoardController {
	return &BoardController{
		boardService: boardService,
	}
}

// GetTopBoards godoc
// @Summary 인기 게시글
// @Description 최근 집계 기간에 작성된 게시글을 인기 점수, 조회수 순으로 반환
// @Tags Boards
// @Produce json
// @Param limit query int false "개수" default(10)
// @Success 200 {array} model.BoardRankItem
// @Router /boards/top [get]
func (ctrl *BoardController) GetTopBoards(ctx *gin.Context) {
	limit, ok := queryInt(ctx, "limit", defaultTopLimit)
	if !ok {
		return
	}

	items, err := ctrl.boardService.GetTopBoards(ctx.Request.Context(), limit)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, items)
}

// Search godoc
// @Summary 게시글 검색
// @Description 카테고리 안에서 제목에 키워드가 포함된 게시글 (대소문자 무시, 최신순)
// @Tags Boards
// @Produce json
// @Param keyword query string true "제목 키워드"
// @Param category query string false "카테고리"
// @Param page query int false "페이지 (1부터)" default(1)
// @Param size query int false "페이지 크기" default(10)
// @Success 200 {object} pagination.Page[model.BoardSummary]
// @Router /boards/search [get]
func (ctrl *BoardController) Search(ctx *gin.Context) {
	page, size, ok := pageParams(ctx)
	if !ok {
		return
	}

	result, err := ctrl.boardService.Search(ctx.Request.Context(),
		ctx.Query("keyword"), ctx.Query("category"), page, size)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// ListByCategory godoc
// @Summary 카테고리별 게시글 목록
// @Tags Boards
// @Produce json
// @Param category query string false "카테고리"
// @Param page query int false "페이지 (1부터)" default(1)
// @Param size query int false "페이지 크기" default(10)
// @Success 200 {object} pagination.Page[model.BoardSummary]
// @Router /boards [get]
func (ctrl *BoardController) ListByCategory(ctx *gin.Context) {
	page, size, ok := pageParams(ctx)
	if !ok {
		return
	}

	result, err := ctrl.boardService.ListByCategory(ctx.Request.Context(), ctx.Query("category"), page, size)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetDetail godoc
// @Summary 게시글 상세
// @Description 조회수를 1 올리고, 로그인한 회원이면 좋아요 여부를 함께 반환
// @Tags Boards
// @Produce json
// @Param id path int true "게시글 ID"
// @Success 200 {object} model.BoardDetail
// @Router /boards/{id} [get]
func (ctrl *BoardController) GetDetail(ctx *gin.Context) {
	boardID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	viewer, _ := middleware.GetMemberEmail(ctx)
	detail, err := ctrl.boardService.GetDetail(ctx.Request.Context(), boardID, viewer)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

// CreateBoard godoc
// @Summary 게시글 작성
// @Tags Boards
// @Accept json
// @Produce json
// @Param request body model.CreateBoardRequest true "게시글"
// @Success 201 {object} model.BoardDetail
// @Router /boards [post]
func (ctrl *BoardController) CreateBoard(ctx *gin.Context) {
	email, ok := requesterEmail(ctx)
	if !ok {
		return
	}

	var req model.CreateBoardRequest
	if !bindJSON(ctx, &req) {
		return
	}

	detail, err := ctrl.boardService.CreateBoard(ctx.Request.Context(), email, &req)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, detail)
}

// UpdateBoard godoc
// @Summary 게시글 수정 (작성자만)
// @Tags Boards
// @Accept json
// @Produce json
// @Param id path int true "게시글 ID"
// @Param request body model.UpdateBoardRequest true "수정 내용"
// @Success 200 {object} model.BoardDetail
// @Router /boards/{id} [put]
func (ctrl *BoardController) UpdateBoard(ctx *gin.Context) {
	email, ok := requesterEmail(ctx)
	if !ok {
		return
	}
	boardID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req model.UpdateBoardRequest
	if !bindJSON(ctx, &req) {
		return
	}

	detail, err := ctrl.boardService.UpdateBoard(ctx.Request.Context(), boardID, email, &req)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

// DeleteBoard godoc
// @Summary 게시글 삭제 (작성자만)
// @Tags Boards
// @Param id path int true "게시글 ID"
// @Success 204
// @Router /boards/{id} [delete]
func (ctrl *BoardController) DeleteBoard(ctx *gin.Context) {
	email, ok := requesterEmail(ctx)
	if !ok {
		return
	}
	boardID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := ctrl.boardService.DeleteBoard(ctx.Request.Context(), boardID, email); err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// UpdateRank godoc
// @Summary 인기 점수 갱신
// @Description 외부 랭킹 잡이 계산한 점수를 저장한다
// @Tags Internal
// @Accept json
// @Param id path int true "게시글 ID"
// @Param request body model.UpdateRankRequest true "점수"
// @Success 204
// @Router /internal/boards/{id}/rank [put]
func (ctrl *BoardController) UpdateRank(ctx *gin.Context) {
	boardID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req model.UpdateRankRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := ctrl.boardService.UpdateRank(ctx.Request.Context(), boardID, *req.Rank); err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// LikeBoard godoc
// @Summary 게시글 좋아요
// @Tags Boards
// @Param id path int true "게시글 ID"
// @Success 204
// @Failure 409 {object} errors.ErrorResponse
// @Router /boards/{id}/like [post]
func (ctrl *BoardController) LikeBoard(ctx *gin.Context) {
	email, ok := requesterEmail(ctx)
	if !ok {
		return
	}
	boardID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := ctrl.boardService.LikeBoard(ctx.Request.Context(), boardID, email); err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// UnlikeBoard godoc
// @Summary 게시글 좋아요 취소
// @Tags Boards
// @Param id path int true "게시글 ID"
// @Success 204
// @Router /boards/{id}/like [delete]
func (ctrl *BoardController) UnlikeBoard(ctx *gin.Context) {
	email, ok := requesterEmail(ctx)
	if !ok {
		return
	}
	boardID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := ctrl.boardService.UnlikeBoard(ctx.Request.Context(), boardID, email); err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
