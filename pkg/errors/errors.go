package errors

// ========== 错误码常量定义 ==========

// CodeSuccess 成功码
const (
	CodeSuccess = 200
)

// 业务错误码，与HTTP状态码保持一致
const (
	CodeInvalidParam = 400 // 参数校验失败
	CodeUnauthorized = 401 // 未认证或凭证无效
	CodeForbidden    = 403 // 越权：跨租户、非成员、角色不足
	CodeNotFound     = 404 // 资源不存在
	CodeConflict     = 409 // 唯一性冲突
	CodeServerError  = 500 // 内部错误
)

// AppError 业务错误，由服务层返回、在接口层统一转换为响应
type AppError struct {
	Code    int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

// New 创建业务错误
func New(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// ========== 快捷构造方法 ==========

func BadRequest(message string) *AppError {
	return New(CodeInvalidParam, message)
}

func Unauthorized(message string) *AppError {
	return New(CodeUnauthorized, message)
}

func Forbidden(message string) *AppError {
	return New(CodeForbidden, message)
}

func NotFound(message string) *AppError {
	return New(CodeNotFound, message)
}

func Conflict(message string) *AppError {
	return New(CodeConflict, message)
}

func Internal(message string) *AppError {
	return New(CodeServerError, message)
}
