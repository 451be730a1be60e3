package handlers

import (
	"strconv"

	"docspace/internal/middleware"
	"docspace/internal/models"
	"docspace/internal/services"
	"docspace/pkg/response"

	"github.com/gin-gonic/gin"
)

// WorkspaceHandler 工作区与成员管理处理器
type WorkspaceHandler struct {
	workspaceService *services.WorkspaceService
}

func NewWorkspaceHandler(workspaceService *services.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: workspaceService}
}

// parseIDParam 解析路径中的数字ID
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		response.BadRequest(c, "无效的ID")
		return 0, false
	}
	return uint(id), true
}

// Create 创建工作区，创建者自动成为owner
func (h *WorkspaceHandler) Create(c *gin.Context) {
	var req models.CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	user := middleware.CurrentUser(c)
	workspace, err := h.workspaceService.Create(user, req.Name)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, workspace)
}

// List 列出当前用户所在的工作区
func (h *WorkspaceHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)
	workspaces, err := h.workspaceService.List(user)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, workspaces)
}

// Get 获取工作区详情
func (h *WorkspaceHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	workspace, err := h.workspaceService.Get(user, id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, workspace)
}

// Update 重命名工作区（owner/admin）
func (h *WorkspaceHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	user := middleware.CurrentUser(c)
	workspace, err := h.workspaceService.Update(user, id, req.Name)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, workspace)
}

// Delete 删除工作区（仅owner）
func (h *WorkspaceHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.workspaceService.Delete(user, id); err != nil {
		response.HandleError(c, err)
		return
	}

	response.SuccessWithMessage(c, "工作区已删除", nil)
}

// ListMembers 列出工作区成员
func (h *WorkspaceHandler) ListMembers(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	members, err := h.workspaceService.ListMembers(user, id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, members)
}

// AddMember 添加成员（owner/admin）
func (h *WorkspaceHandler) AddMember(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	user := middleware.CurrentUser(c)
	member, err := h.workspaceService.AddMember(user, id, &req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, member)
}

// UpdateMember 更新成员的角色或状态（owner/admin）
func (h *WorkspaceHandler) UpdateMember(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	var req models.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	user := middleware.CurrentUser(c)
	member, err := h.workspaceService.UpdateMember(user, id, userID, &req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, member)
}

// RemoveMember 移除成员（owner/admin）
func (h *WorkspaceHandler) RemoveMember(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.workspaceService.RemoveMember(user, id, userID); err != nil {
		response.HandleError(c, err)
		return
	}

	response.SuccessWithMessage(c, "成员已移除", nil)
}
