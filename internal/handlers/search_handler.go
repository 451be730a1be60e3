package handlers

import (
	"time"

	"docspace/internal/middleware"
	"docspace/internal/services"
	"docspace/pkg/response"

	"github.com/gin-gonic/gin"
)

// SearchHandler 搜索与摘要接口。检索排序和AI摘要由外部引擎提供，
// 这里只做成员关系校验并保持接口形状，当前返回占位结果
type SearchHandler struct {
	workspaceService *services.WorkspaceService
	documentService  *services.DocumentService
}

func NewSearchHandler(workspaceService *services.WorkspaceService, documentService *services.DocumentService) *SearchHandler {
	return &SearchHandler{
		workspaceService: workspaceService,
		documentService:  documentService,
	}
}

type SearchRequest struct {
	WorkspaceID uint   `json:"workspace_id" binding:"required"`
	Query       string `json:"query" binding:"required"`
}

type SearchResponse struct {
	Query string        `json:"query"`
	Items []interface{} `json:"items"`
}

type SummaryRequest struct {
	DocumentID uint `json:"document_id" binding:"required"`
}

type SummaryResponse struct {
	SummaryText string    `json:"summary_text"`
	CreatedAt   time.Time `json:"created_at"`
}

// Search 在工作区内检索文档
func (h *SearchHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	user := middleware.CurrentUser(c)
	if _, err := h.workspaceService.CheckAccess(user, req.WorkspaceID); err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, SearchResponse{
		Query: req.Query,
		Items: []interface{}{},
	})
}

// Summarize 生成文档摘要
func (h *SearchHandler) Summarize(c *gin.Context) {
	var req SummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	user := middleware.CurrentUser(c)
	if _, err := h.documentService.Get(user, req.DocumentID); err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, SummaryResponse{
		SummaryText: "摘要生成尚未接入",
		CreatedAt:   time.Now(),
	})
}
