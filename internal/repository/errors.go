// Package repository 提供了数据访问层的实现。
package repository

import "errors"

// ErrNotFound 表示所查询的记录不存在。
// 各 Repository 将底层驱动的 not-found 统一映射为该错误，由上层分类处理。
var ErrNotFound = errors.New("record not found")
