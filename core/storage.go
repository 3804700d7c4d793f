package core

import (
	"context"
	"time"
)

// Storage 是结构化存储的领域接口。
//
// 设计原则：
//   - 接口定义在领域层（core），由基础设施层（store 或业务方的 DB 适配层）实现
//   - 遵循依赖倒置：引擎只消费强类型的查询结果，不关心底层查询执行
//   - 所有读操作假定实现方自带超时/重试语义，引擎本身不重试
type Storage interface {
	// FindUser 按 ID 查询用户画像；不存在时返回 ErrStoreNotFound
	FindUser(ctx context.Context, id string) (*UserProfile, error)

	// FindBorrowings 按条件查询借阅记录，按借出时间降序（最近优先）
	FindBorrowings(ctx context.Context, q BorrowingQuery) ([]BorrowingRecord, error)

	// FindItems 按条件查询馆藏，按入库时间降序（最新优先）
	FindItems(ctx context.Context, q ItemQuery) ([]*Item, error)

	// FindItemsByIDs 按 ID 批量查询馆藏，结果顺序跟随输入，缺失的 ID 跳过
	FindItemsByIDs(ctx context.Context, ids []string) ([]*Item, error)
}

// BorrowingQuery 是借阅记录的查询条件。
type BorrowingQuery struct {
	UserID   string
	Statuses []BorrowStatus // 为空表示不过滤状态
	Since    time.Time      // 零值表示不限时间
	Limit    int            // <= 0 表示不限数量
}

// ItemQuery 是馆藏的查询条件。
//
// Categories 与 Department 之间为 OR 语义：命中任一类目 或 命中院系
// 即满足；两者都为空表示不做内容过滤（兜底檔位用）。
type ItemQuery struct {
	AvailableOnly bool            // 只要有可借副本的
	ExcludeIDs    map[string]bool // 排除集，任何情况下都必须生效
	Categories    []string
	Department    string
	Limit         int // <= 0 表示不限数量
}

// SnapshotSource 是数据集兜底（Dataset Bridge）的目录快照来源。
// 它是与 Storage 相互独立的扁平反规范化数据源，允许相对滞后——
// 兜底路径只追求"有结果"，不追求新鲜度。
type SnapshotSource interface {
	// LoadCatalogSnapshot 加载整份目录快照
	LoadCatalogSnapshot(ctx context.Context) ([]*Item, error)
}

// Storage 错误定义（使用统一的 DomainError）
var (
	// ErrStoreNotFound 表示记录不存在
	ErrStoreNotFound = NewDomainError(ModuleStore, ErrorCodeNotFound, "store: record not found")

	// ErrStoreNotSupported 表示操作不支持
	ErrStoreNotSupported = NewDomainError(ModuleStore, ErrorCodeNotSupported, "store: operation not supported")
)

// IsStoreNotFound 检查错误是否为记录不存在。
func IsStoreNotFound(err error) bool {
	domainErr := GetDomainError(err)
	return domainErr != nil && domainErr.Module == ModuleStore && domainErr.Code == ErrorCodeNotFound
}
