package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"
	apperrors "github.com/ikkim/camping-backend/internal/errors"
	"github.com/ikkim/camping-backend/internal/middleware"
)

const (
	defaultPage = 1
	defaultSize = 10
)

// parseID 경로 파라미터를 ID로 변환. 실패하면 400을 쓰고 false.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// queryInt 정수 쿼리 파라미터. 없으면 기본값, 숫자가 아니면 400.
// 범위 검증은 서비스가 한다.
func queryInt(c *gin.Context, name string, fallback int) (int, bool) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, name+" must be an integer")
		return 0, false
	}
	return n, true
}

func pageParams(c *gin.Context) (page, size int, ok bool) {
	if page, ok = queryInt(c, "page", defaultPage); !ok {
		return 0, 0, false
	}
	if size, ok = queryInt(c, "size", defaultSize); !ok {
		return 0, 0, false
	}
	return page, size, true
}

// requesterEmail RequireMember 뒤에서만 호출한다
func requesterEmail(c *gin.Context) (string, bool) {
	email, ok := middleware.GetMemberEmail(c)
	if !ok {
		apperrors.Unauthorized(c, "login required")
	}
	return email, ok
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.GetLoggerFromContext(c).Warn("Invalid request body", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid request body")
		return false
	}
	return true
}
