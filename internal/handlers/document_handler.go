package handlers

import (
	"io"
	"time"

	"docspace/internal/middleware"
	"docspace/internal/models"
	"docspace/internal/services"
	"docspace/pkg/pagination"
	"docspace/pkg/response"

	"github.com/gin-gonic/gin"
)

// DocumentHandler 文档处理器
type DocumentHandler struct {
	documentService  *services.DocumentService
	workspaceService *services.WorkspaceService
}

func NewDocumentHandler(documentService *services.DocumentService, workspaceService *services.WorkspaceService) *DocumentHandler {
	return &DocumentHandler{
		documentService:  documentService,
		workspaceService: workspaceService,
	}
}

// DownloadResponse 下载响应，URL有效期1小时
type DownloadResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Upload 上传文档到工作区
func (h *DocumentHandler) Upload(c *gin.Context) {
	workspaceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)

	// 成员即可上传，不要求角色
	workspace, err := h.workspaceService.CheckAccess(user, workspaceID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "缺少上传文件")
		return
	}

	// 按声明的类型和大小先行校验，超限文件不读入内存
	mimeType := fileHeader.Header.Get("Content-Type")
	if err := h.documentService.ValidateUpload(mimeType, fileHeader.Size); err != nil {
		response.HandleError(c, err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "读取上传文件失败")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(c, "读取上传文件失败")
		return
	}

	document, err := h.documentService.Upload(user, workspace, fileHeader.Filename, mimeType, data)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, document)
}

// List 列出工作区内的文档
func (h *DocumentHandler) List(c *gin.Context) {
	workspaceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	if _, err := h.workspaceService.CheckAccess(user, workspaceID); err != nil {
		response.HandleError(c, err)
		return
	}

	pageParams := pagination.ParsePageParams(c)
	documents, total, err := h.documentService.List(workspaceID, pageParams)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	pageInfo := pagination.NewPageInfo(pageParams.Page, pageParams.PageSize, total)
	response.SuccessWithPage(c, documents, pageInfo)
}

// Get 获取文档元数据
func (h *DocumentHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	document, err := h.documentService.Get(user, id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, document)
}

// Update 更新文档元数据
func (h *DocumentHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	user := middleware.CurrentUser(c)
	document, err := h.documentService.Update(user, id, &req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, document)
}

// Download 获取文档下载地址
func (h *DocumentHandler) Download(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	document, err := h.documentService.Download(user, id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, DownloadResponse{
		URL:       "/storage/" + document.StoragePath,
		ExpiresAt: time.Now().Add(time.Hour),
	})
}

// Delete 删除文档
func (h *DocumentHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.documentService.Delete(user, id); err != nil {
		response.HandleError(c, err)
		return
	}

	response.SuccessWithMessage(c, "文档已删除", nil)
}
