package model

type ResponseError struct {
	// 自定义错误码。
	Code int `json:"code"`
	// 请求ID。
	RequestID string `json:"requestID"`
	// Message
	Message string `json:"message"`
	// Fields 校验错误时的字段级错误信息。
	Fields interface{} `json:"fields,omitempty"`
}

const (
	ResponseErrorBadRequest      = 400000
	ResponseErrorNotLoggedIn     = 401001
	ResponseErrorBadToken        = 401003
	ResponseErrorValidation      = 401005
	ResponseErrorUnauthorized    = 401000
	ResponseErrorNotFound        = 404000
	ResponseErrorNoSuchUser      = 404001
	ResponseErrorNoSuchInterview = 404002
	ResponseErrorNoSuchCall      = 404003
	ResponseErrorBadTransition   = 409001
	ResponseErrorInternal        = 500000
	ResponseErrorExternalService = 502001
)

// NewResponseErrorBadRequest 参数错误。
func NewResponseErrorBadRequest() *ResponseError {
	return &ResponseError{
		Code:    ResponseErrorBadRequest,
		Message: "参数错误",
	}
}

// NewResponseErrorNotLoggedIn 用户未登录。
func NewResponseErrorNotLoggedIn() *ResponseError {
	return &ResponseError{
		Code:    ResponseErrorNotLoggedIn,
		Message: "not logged in",
	}
}

// NewResponseErrorBadToken 登录token错误。
func NewResponseErrorBadToken() *ResponseError {
	return &ResponseError{
		Code:    ResponseErrorBadToken,
		Message: "bad token",
	}
}

// NewResponseErrorInternal 其他内部服务错误。
func NewResponseErrorInternal() *ResponseError {
	return &ResponseError{
		Code:    ResponseErrorInternal,
		Message: "internal server error",
	}
}

// NewResponseErrorExternalService 调用外部服务错误。
func NewResponseErrorExternalService() *ResponseError {
	return &ResponseError{
		Code:    ResponseErrorExternalService,
		Message: "calling external service failed",
	}
}

// NewResponseErrorNoSuchUser 无此用户。
func NewResponseErrorNoSuchUser() *ResponseError {
	return &ResponseError{
		Code:    ResponseErrorNoSuchUser,
		Message: "no such user",
	}
}

// NewResponseErrorUnauthorized 一般的HTTP Unauthorized 错误。
func NewResponseErrorUnauthorized() *ResponseError {
	return &ResponseError{
		Code:    ResponseErrorUnauthorized,
		Message: "unauthorized",
	}
}

func NewResponseErrorNotFound() *ResponseError {
	return &ResponseError{
		Code:    ResponseErrorNotFound,
		Message: "not found",
	}
}

// NewResponseErrorNoSuchInterview 无此面试。
func NewResponseErrorNoSuchInterview() *ResponseError {
	return &ResponseError{
		Code:    ResponseErrorNoSuchInterview,
		Message: "no such interview",
	}
}

// NewResponseErrorNoSuchCall 无此call。
func NewResponseErrorNoSuchCall() *ResponseError {
	return &ResponseError{
		Code:    ResponseErrorNoSuchCall,
		Message: "no such call",
	}
}

// NewResponseErrorBadTransition 非法的状态流转。
func NewResponseErrorBadTransition() *ResponseError {
	return &ResponseError{
		Code:    ResponseErrorBadTransition,
		Message: "invalid status transition",
	}
}

func NewResponseErrorValidation(err error) *ResponseError {
	e := &ResponseError{
		Code:    ResponseErrorValidation,
		Message: err.Error(),
	}
	if fields, ok := err.(interface{ FieldMessages() map[string]string }); ok {
		e.Fields = fields.FieldMessages()
	}
	return e
}

func NewResponseError(code int, message string) *ResponseError {
	return &ResponseError{
		Code:    code,
		Message: message,
	}
}
