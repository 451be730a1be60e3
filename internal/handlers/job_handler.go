package handlers

import (
	"docspace/internal/middleware"
	"docspace/internal/services"
	"docspace/pkg/response"

	"github.com/gin-gonic/gin"
)

// JobHandler 处理任务只读接口
type JobHandler struct {
	jobService *services.JobService
}

func NewJobHandler(jobService *services.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// ListByDocument 列出文档的处理任务
func (h *JobHandler) ListByDocument(c *gin.Context) {
	documentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	jobs, err := h.jobService.ListByDocument(user, documentID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, jobs)
}

// Get 获取单个处理任务
func (h *JobHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	job, err := h.jobService.GetByID(user, id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, job)
}
