package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/camping-backend/internal/app/model"
	"github.com/ikkim/camping-backend/internal/app/service"
	apperrors "github.com/ikkim/camping-backend/internal/errors"
)

type MemberController struct {
	memberService     service.MemberService
	memberRankService service.MemberRankService
}

func NewMemberController(memberService service.MemberService, memberRankService service.MemberRankService) *MemberController {
	return &MemberController{
		memberService:     memberService,
		memberRankService: memberRankService,
	}
}

// Register godoc
// @Summary 회원 등록
// @Description 게이트웨이 인증을 마친 이메일로 커뮤니티 회원을 만든다 (GREEN 등급)
// @Tags Members
// @Accept json
// @Produce json
// @Param request body model.RegisterMemberRequest true "회원 정보"
// @Success 201 {object} model.MemberProfile
// @Failure 409 {object} errors.ErrorResponse
// @Router /members [post]
func (ctrl *MemberController) Register(ctx *gin.Context) {
	email, ok := requesterEmail(ctx)
	if !ok {
		return
	}

	var req model.RegisterMemberRequest
	if !bindJSON(ctx, &req) {
		return
	}

	member := &model.Member{
		Email:        email,
		Nickname:     req.Nickname,
		Name:         req.Name,
		ProfileImage: req.ProfileImage,
	}
	if err := ctrl.memberService.Register(ctx.Request.Context(), member); err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, member.ToProfile())
}

// GetMe godoc
// @Summary 내 정보
// @Tags Members
// @Produce json
// @Success 200 {object} model.MemberProfile
// @Router /members/me [get]
func (ctrl *MemberController) GetMe(ctx *gin.Context) {
	email, ok := requesterEmail(ctx)
	if !ok {
		return
	}

	member, err := ctrl.memberService.GetByEmail(ctx.Request.Context(), email)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, member.ToProfile())
}

// GetRanking godoc
// @Summary 기간별 회원 순위
// @Description [start, end] 동안 작성 게시글이 받은 좋아요 수 순위. limit이 없으면 전체.
// @Tags Members
// @Produce json
// @Param start query string true "시작 (RFC3339)"
// @Param end query string true "끝 (RFC3339)"
// @Param limit query int false "개수"
// @Success 200 {array} model.MemberRankItem
// @Router /members/rank [get]
func (ctrl *MemberController) GetRanking(ctx *gin.Context) {
	start, ok := queryTime(ctx, "start")
	if !ok {
		return
	}
	end, ok := queryTime(ctx, "end")
	if !ok {
		return
	}

	var (
		items []model.MemberRankItem
		err   error
	)
	if _, hasLimit := ctx.GetQuery("limit"); hasLimit {
		limit, ok := queryInt(ctx, "limit", 0)
		if !ok {
			return
		}
		items, err = ctrl.memberRankService.TopMembersInWindowLimit(ctx.Request.Context(), start, end, limit)
	} else {
		items, err = ctrl.memberRankService.TopMembersInWindow(ctx.Request.Context(), start, end)
	}
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, items)
}

// GetWeeklyRanking godoc
// @Summary 최근 일주일 회원 순위
// @Tags Members
// @Produce json
// @Param limit query int false "개수" default(10)
// @Success 200 {array} model.MemberRankItem
// @Router /members/rank/weekly [get]
func (ctrl *MemberController) GetWeeklyRanking(ctx *gin.Context) {
	limit, ok := queryInt(ctx, "limit", defaultTopLimit)
	if !ok {
		return
	}

	items, err := ctrl.memberRankService.TopMembersLastWeek(ctx.Request.Context(), limit)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, items)
}

func queryTime(ctx *gin.Context, name string) (time.Time, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		apperrors.BadRequest(ctx, apperrors.ValidationRequired, name+" is required")
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		apperrors.BadRequest(ctx, apperrors.ValidationInvalidInput, name+" must be RFC3339")
		return time.Time{}, false
	}
	return t, true
}
