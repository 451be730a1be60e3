package middleware

import (
	"strings"

	"docspace/internal/models"
	"docspace/internal/services"
	"docspace/pkg/jwt"
	"docspace/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 身份解析中间件
type AuthMiddleware struct {
	userService *services.UserService
	jwtManager  *jwt.JWTManager
}

func NewAuthMiddleware(userService *services.UserService, jwtManager *jwt.JWTManager) *AuthMiddleware {
	return &AuthMiddleware{
		userService: userService,
		jwtManager:  jwtManager,
	}
}

// RequireLogin 解析Bearer令牌并加载用户。
// 认证头缺失、格式错误、令牌无效/过期、用户不存在或被禁用都按401处理
func (m *AuthMiddleware) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "请先登录")
			c.Abort()
			return
		}

		// 必须是 "Bearer <token>" 格式
		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Unauthorized(c, "认证头格式错误")
			c.Abort()
			return
		}

		tokenString := authHeader[7:] // 去掉 "Bearer "

		claims, err := m.jwtManager.VerifyToken(tokenString)
		if err != nil {
			response.Unauthorized(c, "Token无效或已过期")
			c.Abort()
			return
		}

		// 软删除或被禁用的账号在这里被拒绝
		user, err := m.userService.GetActiveByID(claims.UserID)
		if err != nil {
			response.Unauthorized(c, "用户不存在或已被禁用")
			c.Abort()
			return
		}

		// 将用户信息保存到上下文
		c.Set("user", user)
		c.Set("user_id", user.ID)
		c.Set("tenant_id", user.TenantID)

		c.Next()
	}
}

// CurrentUser 从上下文取出已认证用户
func CurrentUser(c *gin.Context) *models.User {
	user, exists := c.Get("user")
	if !exists {
		return nil
	}
	return user.(*models.User)
}
