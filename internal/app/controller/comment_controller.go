package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/camping-backend/internal/app/model"
	"github.com/ikkim/camping-backend/internal/app/service"
	apperrors "github.com/ikkim/camping-backend/internal/errors"
)

type CommentController struct {
	commentService service.CommentService
}

func NewCommentController(commentService service.CommentService) *CommentController {
	return &CommentController{
		commentService: commentService,
	}
}

// ListComments godoc
// @Summary 게시글 댓글 목록 (작성순)
// @Tags Comments
// @Produce json
// @Param id path int true "게시글 ID"
// @Param page query int false "페이지 (1부터)" default(1)
// @Param size query int false "페이지 크기" default(10)
// @Success 200 {object} pagination.Page[model.CommentItem]
// @Router /boards/{id}/comments [get]
func (ctrl *CommentController) ListComments(ctx *gin.Context) {
	boardID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	page, size, ok := pageParams(ctx)
	if !ok {
		return
	}

	result, err := ctrl.commentService.ListComments(ctx.Request.Context(), boardID, page, size)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// CreateComment godoc
// @Summary 댓글 작성
// @Tags Comments
// @Accept json
// @Produce json
// @Param id path int true "게시글 ID"
// @Param request body model.CreateCommentRequest true "댓글"
// @Success 201 {object} model.CommentItem
// @Router /boards/{id}/comments [post]
func (ctrl *CommentController) CreateComment(ctx *gin.Context) {
	email, ok := requesterEmail(ctx)
	if !ok {
		return
	}
	boardID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req model.CreateCommentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	item, err := ctrl.commentService.CreateComment(ctx.Request.Context(), boardID, email, &req)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, item)
}

// DeleteComment godoc
// @Summary 댓글 삭제 (작성자만)
// @Tags Comments
// @Param commentId path int true "댓글 ID"
// @Success 204
// @Router /comments/{commentId} [delete]
func (ctrl *CommentController) DeleteComment(ctx *gin.Context) {
	email, ok := requesterEmail(ctx)
	if !ok {
		return
	}
	commentID, ok := parseID(ctx, "commentId")
	if !ok {
		return
	}

	if err := ctrl.commentService.DeleteComment(ctx.Request.Context(), commentID, email); err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
