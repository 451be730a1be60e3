package handlers

import (
	"strings"

	"docspace/internal/middleware"
	"docspace/internal/models"
	"docspace/internal/services"
	"docspace/pkg/jwt"
	"docspace/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	userService *services.UserService
	jwtManager  *jwt.JWTManager
}

func NewAuthHandler(userService *services.UserService, jwtManager *jwt.JWTManager) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtManager:  jwtManager,
	}
}

type RegisterRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Username   string `json:"username" binding:"required,min=3,max=50"`
	Password   string `json:"password" binding:"required,min=8"`
	TenantName string `json:"tenant_name" binding:"omitempty,max=100"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RegisterResponse struct {
	User   *models.User   `json:"user"`
	Tenant *models.Tenant `json:"tenant"`
	TokenPair
}

type LoginRequest struct {
	EmailOrUsername string `json:"email_or_username" binding:"required"`
	Password        string `json:"password" binding:"required"`
}

type LoginResponse struct {
	User *models.User `json:"user"`
	TokenPair
}

// issueTokens 签发访问/刷新令牌对
func (h *AuthHandler) issueTokens(userID uint) (*TokenPair, error) {
	accessToken, err := h.jwtManager.GenerateAccessToken(userID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := h.jwtManager.GenerateRefreshToken(userID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Register 注册用户，可同时创建新租户
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// 解析验证错误，提供更友好的提示
		if validationErr, ok := err.(validator.ValidationErrors); ok {
			errorMsg := "参数验证失败"
			for _, fieldErr := range validationErr {
				switch fieldErr.Field() {
				case "Email":
					errorMsg = "邮箱格式不正确"
				case "Username":
					errorMsg = "用户名不能为空，且长度在3-50个字符之间"
				case "Password":
					errorMsg = "密码长度至少8个字符"
				case "TenantName":
					errorMsg = "租户名称长度不能超过100个字符"
				}
			}
			response.BadRequest(c, errorMsg)
			return
		}
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	user, tenant, err := h.userService.Register(req.Email, req.Username, req.Password, req.TenantName)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	tokens, err := h.issueTokens(user.ID)
	if err != nil {
		response.ServerError(c, "生成Token失败")
		return
	}

	response.Success(c, RegisterResponse{
		User:      user,
		Tenant:    tenant,
		TokenPair: *tokens,
	})
}

// Login 用户登录，邮箱或用户名均可
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	user, err := h.userService.Authenticate(req.EmailOrUsername, req.Password)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	tokens, err := h.issueTokens(user.ID)
	if err != nil {
		response.ServerError(c, "生成Token失败")
		return
	}

	response.Success(c, LoginResponse{
		User:      user,
		TokenPair: *tokens,
	})
}

// Logout 用户登出，只做审计。令牌无吊销列表，到期前仍然有效，
// 前端应删除本地保存的令牌
func (h *AuthHandler) Logout(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if err := h.userService.RecordLogout(user); err != nil {
		response.HandleError(c, err)
		return
	}

	response.SuccessWithMessage(c, "登出成功", nil)
}

// RefreshToken 用刷新令牌换取新的令牌对，签发前重新校验账号状态
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		response.Unauthorized(c, "缺少认证头")
		return
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		response.Unauthorized(c, "认证头格式错误")
		return
	}

	tokenString := authHeader[7:] // 去掉 "Bearer "

	claims, err := h.jwtManager.VerifyToken(tokenString)
	if err != nil {
		response.Unauthorized(c, "Token无效或已过期")
		return
	}

	user, err := h.userService.GetActiveByID(claims.UserID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	tokens, err := h.issueTokens(user.ID)
	if err != nil {
		response.ServerError(c, "生成Token失败")
		return
	}

	response.Success(c, tokens)
}

// Me 返回当前用户及其租户
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)

	tenant, err := h.userService.GetTenant(user)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, gin.H{
		"user":   user,
		"tenant": tenant,
	})
}
