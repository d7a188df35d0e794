package service

import (
	"errors"
	"fmt"
)

// 流水线中按 HTTP 语义分类的错误。Handler 用 errors.Is/As 做穷举映射。
var (
	// ErrAssistantNotFound 表示请求引用的助手不存在 → 404。
	ErrAssistantNotFound = errors.New("assistant not found")
	// ErrChatNotFound 表示请求引用的会话不存在 → 404。
	ErrChatNotFound = errors.New("chat not found")
)

// StorageError 表示某一步数据存储操作失败 → 500，并中止后续流水线。
// Op 说明失败发生在哪一步，用于日志与响应文案。
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error (%s): %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
