package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/camping-backend/internal/app/model"
	"github.com/ikkim/camping-backend/internal/app/service"
	apperrors "github.com/ikkim/camping-backend/internal/errors"
)

type ReviewController struct {
	reviewService service.ReviewService
}

func NewReviewController(reviewService service.ReviewService) *ReviewController {
	return &ReviewController{
		reviewService: reviewService,
	}
}

func invalidRating(ctx *gin.Context) {
	apperrors.BadRequest(ctx, apperrors.ReviewInvalidRating, "score must be between 0.5 and 5.0 in steps of 0.5")
}

// locationParams mapX, mapY 쿼리 (둘 다 필수)
func locationParams(ctx *gin.Context) (model.LocationKey, bool) {
	key := model.LocationKey{MapX: ctx.Query("mapX"), MapY: ctx.Query("mapY")}
	if key.MapX == "" || key.MapY == "" {
		apperrors.BadRequest(ctx, apperrors.ValidationRequired, "mapX and mapY are required")
		return model.LocationKey{}, false
	}
	return key, true
}

// AddReview godoc
// @Summary 캠핑장 리뷰 작성
// @Tags Reviews
// @Accept json
// @Produce json
// @Param request body model.AddReviewRequest true "리뷰"
// @Success 201 {object} model.ReviewItem
// @Failure 400 {object} errors.ErrorResponse
// @Router /reviews [post]
func (ctrl *ReviewController) AddReview(ctx *gin.Context) {
	email, ok := requesterEmail(ctx)
	if !ok {
		return
	}

	var req model.AddReviewRequest
	if !bindJSON(ctx, &req) {
		return
	}
	if !model.ValidScore(req.Score) {
		invalidRating(ctx)
		return
	}

	review, err := ctrl.reviewService.AddReview(ctx.Request.Context(), model.AddReviewInput{
		Location:    model.LocationKey{MapX: req.MapX, MapY: req.MapY},
		Score:       req.Score,
		Content:     req.Content,
		ReviewImage: req.ReviewImage,
		MemberEmail: email,
	})
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, review.ToItem())
}

// UpdateReview godoc
// @Summary 리뷰 수정 (작성자만)
// @Tags Reviews
// @Accept json
// @Produce json
// @Param id path int true "리뷰 ID"
// @Param request body model.UpdateReviewRequest true "수정 내용"
// @Success 200 {object} model.ReviewItem
// @Router /reviews/{id} [put]
func (ctrl *ReviewController) UpdateReview(ctx *gin.Context) {
	email, ok := requesterEmail(ctx)
	if !ok {
		return
	}
	reviewID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req model.UpdateReviewRequest
	if !bindJSON(ctx, &req) {
		return
	}
	if req.Score != nil && !model.ValidScore(*req.Score) {
		invalidRating(ctx)
		return
	}

	review, err := ctrl.reviewService.UpdateReview(ctx.Request.Context(), reviewID, email, model.UpdateReviewInput{
		Score:       req.Score,
		Content:     req.Content,
		ReviewImage: req.ReviewImage,
	})
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, review.ToItem())
}

// DeleteReview godoc
// @Summary 리뷰 삭제 (작성자만)
// @Tags Reviews
// @Param id path int true "리뷰 ID"
// @Success 204
// @Router /reviews/{id} [delete]
func (ctrl *ReviewController) DeleteReview(ctx *gin.Context) {
	email, ok := requesterEmail(ctx)
	if !ok {
		return
	}
	reviewID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := ctrl.reviewService.DeleteOwnReview(ctx.Request.Context(), reviewID, email); err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// RemoveReview godoc
// @Summary 리뷰 강제 삭제 (운영)
// @Tags Internal
// @Param id path int true "리뷰 ID"
// @Success 204
// @Router /internal/reviews/{id} [delete]
func (ctrl *ReviewController) RemoveReview(ctx *gin.Context) {
	reviewID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := ctrl.reviewService.RemoveReview(ctx.Request.Context(), reviewID); err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// GetSummary godoc
// @Summary 캠핑장 평점 요약
// @Description 리뷰가 없으면 count 0, average 0
// @Tags Reviews
// @Produce json
// @Param mapX query string true "경도"
// @Param mapY query string true "위도"
// @Success 200 {object} model.ReviewSummary
// @Router /reviews/summary [get]
func (ctrl *ReviewController) GetSummary(ctx *gin.Context) {
	key, ok := locationParams(ctx)
	if !ok {
		return
	}

	summary, err := ctrl.reviewService.GetAggregate(ctx.Request.Context(), key)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, summary)
}

// ListReviews godoc
// @Summary 캠핑장 리뷰 목록 (최신순)
// @Tags Reviews
// @Produce json
// @Param mapX query string true "경도"
// @Param mapY query string true "위도"
// @Param page query int false "페이지 (1부터)" default(1)
// @Param size query int false "페이지 크기" default(10)
// @Success 200 {object} pagination.Page[model.ReviewItem]
// @Router /reviews [get]
func (ctrl *ReviewController) ListReviews(ctx *gin.Context) {
	key, ok := locationParams(ctx)
	if !ok {
		return
	}
	page, size, ok := pageParams(ctx)
	if !ok {
		return
	}

	result, err := ctrl.reviewService.ListReviews(ctx.Request.Context(), key, page, size)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// ListMyReviews godoc
// @Summary 내가 쓴 리뷰 목록
// @Tags Reviews
// @Produce json
// @Param page query int false "페이지 (1부터)" default(1)
// @Param size query int false "페이지 크기" default(10)
// @Success 200 {object} pagination.Page[model.ReviewItem]
// @Router /members/me/reviews [get]
func (ctrl *ReviewController) ListMyReviews(ctx *gin.Context) {
	email, ok := requesterEmail(ctx)
	if !ok {
		return
	}
	page, size, ok := pageParams(ctx)
	if !ok {
		return
	}

	result, err := ctrl.reviewService.ListMemberReviews(ctx.Request.Context(), email, page, size)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}
