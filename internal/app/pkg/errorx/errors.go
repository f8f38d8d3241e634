package errorx

import "errors"

// 定义业务错误
var (
	ErrJobNotFound     = errors.New("job not found")
	ErrInvalidCategory = errors.New("invalid document category")
	ErrInvalidInputRef = errors.New("invalid input ref")
	ErrInvalidFileName = errors.New("invalid file name")
)

// IsValidation 是否同步拒绝的校验类错误（不产生任何副作用）
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidCategory) ||
		errors.Is(err, ErrInvalidInputRef) ||
		errors.Is(err, ErrInvalidFileName)
}

// IsNotFound 是否统一的未找到错误
// 未知任务和无权访问的任务对外表现一致，避免泄露任务是否存在
func IsNotFound(err error) bool {
	return errors.Is(err, ErrJobNotFound)
}
