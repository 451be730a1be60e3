package handlers

import (
	"docspace/internal/middleware"
	"docspace/internal/services"
	"docspace/pkg/response"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// DeleteMe 注销当前账号（软删除），之后的令牌在身份解析阶段被拒绝
func (h *UserHandler) DeleteMe(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if err := h.userService.SoftDelete(user); err != nil {
		response.HandleError(c, err)
		return
	}

	response.SuccessWithMessage(c, "账号已注销", nil)
}
