package core

import "time"

// BorrowStatus 是借阅记录的生命周期状态。
type BorrowStatus string

const (
	StatusBorrowed BorrowStatus = "borrowed" // 在借
	StatusOverdue  BorrowStatus = "overdue"  // 逾期未还
	StatusRenewed  BorrowStatus = "renewed"  // 已续借
	StatusReturned BorrowStatus = "returned" // 已归还
)

// ActiveStatuses 返回"仍在读者手里"的状态集合。
// 命中这些状态的馆藏会进入排除集，任何檔位都不得再推荐。
func ActiveStatuses() []BorrowStatus {
	return []BorrowStatus{StatusBorrowed, StatusOverdue, StatusRenewed}
}

// BorrowingRecord 是经存储边界校验过的借阅记录。
// 上游聚合查询（借阅关联馆藏）的原始结果在存储层就转成此强类型，
// 引擎内部只消费记录的聚合信息（计数、时间），从不修改。
type BorrowingRecord struct {
	UserID     string
	ItemID     string
	Status     BorrowStatus
	Category   string // 冗余自关联馆藏，供历史类目统计使用
	BorrowedAt time.Time
}

// IsActive 判断记录是否处于在借状态。
func (r BorrowingRecord) IsActive() bool {
	switch r.Status {
	case StatusBorrowed, StatusOverdue, StatusRenewed:
		return true
	}
	return false
}
