package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/ikkim/camping-backend/internal/errors"
)

// MemberEmailKey 요청한 회원의 이메일이 저장되는 컨텍스트 키
const MemberEmailKey = "member_email"

// IdentityMiddleware 인증은 앞단 게이트웨이가 끝내고, 확인된 회원 이메일을 헤더로 넘겨준다.
type IdentityMiddleware struct {
	header string
}

func NewIdentityMiddleware(header string) *IdentityMiddleware {
	return &IdentityMiddleware{header: header}
}

// Identify 헤더에 이메일이 있으면 컨텍스트에 넣는다 (optional)
func (m *IdentityMiddleware) Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		if email, ok := m.emailFromHeader(c); ok {
			c.Set(MemberEmailKey, email)
		}
		c.Next()
	}
}

// RequireMember 이메일이 없으면 401로 중단한다
func (m *IdentityMiddleware) RequireMember() gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := m.emailFromHeader(c)
		if !ok {
			GetLoggerFromContext(c).Warn("Missing member identity", map[string]interface{}{
				"path":   c.Request.URL.Path,
				"header": m.header,
			})
			errors.Unauthorized(c, "login required")
			c.Abort()
			return
		}

		c.Set(MemberEmailKey, email)
		c.Next()
	}
}

func (m *IdentityMiddleware) emailFromHeader(c *gin.Context) (string, bool) {
	raw := strings.TrimSpace(c.GetHeader(m.header))
	if raw == "" {
		return "", false
	}
	// 요청 바인딩과 같은 검증기(binding:"email")로 확인한다
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok || v.Var(raw, "required,email") != nil {
		return "", false
	}
	return raw, true
}

// GetMemberEmail 컨텍스트의 회원 이메일
func GetMemberEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(MemberEmailKey)
	if !exists {
		return "", false
	}
	s, ok := email.(string)
	return s, ok && s != ""
}
