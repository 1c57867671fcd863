package scheduling

// ErrorKind 区分调度操作失败的类别：
// 校验类错误在任何状态被修改之前就会被检测出来，调用方必须换输入才能重试；
// 冲突类错误说明调用方看到的状态已经过期，重新拉取状态后可以安全重试。
type ErrorKind int

const (
	KindNotFound ErrorKind = iota
	KindValidation
	KindConflict
	KindUnexpected
)

type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NewConflictError(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func NewUnexpectedError(message string) *Error {
	return &Error{Kind: KindUnexpected, Message: message}
}
