package handlers

import (
	"strconv"

	"docspace/internal/middleware"
	"docspace/internal/services"
	"docspace/pkg/pagination"
	"docspace/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuditLogHandler 审计日志查询接口
type AuditLogHandler struct {
	auditService *services.AuditService
}

func NewAuditLogHandler(auditService *services.AuditService) *AuditLogHandler {
	return &AuditLogHandler{auditService: auditService}
}

// List 查询租户审计日志。带 workspace_id 参数时要求该工作区的owner/admin
func (h *AuditLogHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var workspaceID *uint
	if workspaceIDStr := c.Query("workspace_id"); workspaceIDStr != "" {
		id, err := strconv.ParseUint(workspaceIDStr, 10, 32)
		if err != nil {
			response.BadRequest(c, "工作区ID格式错误")
			return
		}
		parsed := uint(id)
		workspaceID = &parsed
	}

	pageParams := pagination.ParsePageParams(c)
	logs, total, err := h.auditService.ListByTenant(user, workspaceID, pageParams)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	pageInfo := pagination.NewPageInfo(pageParams.Page, pageParams.PageSize, total)
	response.SuccessWithPage(c, logs, pageInfo)
}
