package errno

import "errors"

// Errno defines the error code logic
type Errno struct {
	Code    int
	Message string
}

func (e Errno) Error() string {
	return e.Message
}

// Decode tries to convert an error to Errno
// 被 %w 包装过的 Errno 也能识别
func Decode(err error) (int, string) {
	if err == nil {
		return OK.Code, OK.Message
	}

	var typed Errno
	if errors.As(err, &typed) {
		return typed.Code, typed.Message
	}
	var ptr *Errno
	if errors.As(err, &ptr) && ptr != nil {
		return ptr.Code, ptr.Message
	}
	return InternalServerError.Code, err.Error()
}

// Common Errors
var (
	OK                  = Errno{Code: 0, Message: "Success"}
	InternalServerError = Errno{Code: 10001, Message: "Internal server error"}
	ErrBind             = Errno{Code: 10002, Message: "Error occurred while binding the request body to the struct"}
	ErrDatabase         = Errno{Code: 10004, Message: "Database error"}
	ErrUpstream         = Errno{Code: 10005, Message: "Market data provider unavailable"}
)

// Business Errors (30000+)
var (
	ErrSessionNotFound    = Errno{Code: 30101, Message: "Save session not found"}
	ErrSessionClosed      = Errno{Code: 30102, Message: "Save session closed"}
	ErrInvalidVersion     = Errno{Code: 30103, Message: "Unknown savings contract version"}
	ErrInvalidAccount     = Errno{Code: 30104, Message: "Invalid account address"}
	ErrTransactionInvalid = Errno{Code: 30201, Message: "Transaction is not valid"}
	ErrDuplicateSubmit    = Errno{Code: 30202, Message: "Transaction already submitted"}
	ErrUnlockNotNeeded    = Errno{Code: 30203, Message: "Allowance already covers the amount"}
)

// WithMessage 返回替换了描述的副本，错误码不变
func (e Errno) WithMessage(msg string) Errno {
	e.Message = msg
	return e
}
