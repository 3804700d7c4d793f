package core

import "time"

// Item 是推荐链路中的统一承载结构：馆藏元信息 + 单次调用的打分结果。
// Reasons 用于解释（explain）；Score 用于排序决策。
// 打分相关字段每次调用重新计算，调用结束即丢弃，不回写存储。
type Item struct {
	ID         string
	Title      string
	Author     string // 可为空
	Category   string
	Department string // 馆藏所属院系
	Copies     int    // 可借副本数（>= 0）
	CreatedAt  time.Time

	// 以下为输出字段，由 rank / snapshot 阶段填充
	Score      int
	Reasons    []string
	NewArrival bool
	Popular    bool
}

func NewItem(id string) *Item {
	return &Item{
		ID:      id,
		Reasons: make([]string, 0, 4),
	}
}

// AddReason 追加一条推荐理由。Reasons 是有序去重集合：
// 同一条理由即使被多个信号重复推导，也只保留第一次。
func (it *Item) AddReason(reason string) {
	if reason == "" {
		return
	}
	for _, r := range it.Reasons {
		if r == reason {
			return
		}
	}
	it.Reasons = append(it.Reasons, reason)
}

// Clone 返回 Item 的深拷贝。存储实现与快照缓存会跨调用复用同一份数据，
// 进入链路前必须拷贝，避免打分字段互相污染。
func (it *Item) Clone() *Item {
	if it == nil {
		return nil
	}
	cp := *it
	cp.Reasons = make([]string, len(it.Reasons))
	copy(cp.Reasons, it.Reasons)
	return &cp
}
