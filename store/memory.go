package store

import (
	"context"
	"sort"
	"sync"

	"github.com/rushteam/librec/core"
)

// MemoryStorage 是内存实现的 core.Storage，用于测试/开发/原型。
// 查询语义与生产存储对齐：借阅按借出时间降序，馆藏按入库时间降序，
// ItemQuery 的类目/院系两族条件为 OR。
// 生产环境应以真实数据库适配层实现 core.Storage。
type MemoryStorage struct {
	mu         sync.RWMutex
	users      map[string]*core.UserProfile
	items      map[string]*core.Item
	borrowings []core.BorrowingRecord
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		users: make(map[string]*core.UserProfile),
		items: make(map[string]*core.Item),
	}
}

// AddUser 写入用户画像（装配测试数据用）。
func (m *MemoryStorage) AddUser(user *core.UserProfile) {
	if user == nil || user.UserID == "" {
		return
	}
	m.mu.Lock()
	m.users[user.UserID] = user
	m.mu.Unlock()
}

// AddItem 写入馆藏（装配测试数据用）。
func (m *MemoryStorage) AddItem(item *core.Item) {
	if item == nil || item.ID == "" {
		return
	}
	m.mu.Lock()
	m.items[item.ID] = item
	m.mu.Unlock()
}

// AddBorrowing 写入借阅记录（装配测试数据用）。
func (m *MemoryStorage) AddBorrowing(rec core.BorrowingRecord) {
	m.mu.Lock()
	m.borrowings = append(m.borrowings, rec)
	m.mu.Unlock()
}

func (m *MemoryStorage) FindUser(_ context.Context, id string) (*core.UserProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return nil, core.ErrStoreNotFound
	}
	cp := *user
	cp.Interests = append([]string(nil), user.Interests...)
	return &cp, nil
}

func (m *MemoryStorage) FindBorrowings(_ context.Context, q core.BorrowingQuery) ([]core.BorrowingRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]core.BorrowingRecord, 0, len(m.borrowings))
	for _, rec := range m.borrowings {
		if q.UserID != "" && rec.UserID != q.UserID {
			continue
		}
		if len(q.Statuses) > 0 && !statusIn(rec.Status, q.Statuses) {
			continue
		}
		if !q.Since.IsZero() && rec.BorrowedAt.Before(q.Since) {
			continue
		}
		out = append(out, rec)
	}

	// 最近优先；同一时刻保留写入顺序
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].BorrowedAt.After(out[j].BorrowedAt)
	})

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (m *MemoryStorage) FindItems(_ context.Context, q core.ItemQuery) ([]*core.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*core.Item, 0, len(m.items))
	for _, item := range m.items {
		if q.AvailableOnly && item.Copies <= 0 {
			continue
		}
		if q.ExcludeIDs != nil && q.ExcludeIDs[item.ID] {
			continue
		}
		if !matchContent(item, q) {
			continue
		}
		out = append(out, item.Clone())
	}

	// 最新入库优先；同一时刻按 ID 升序，保证遍历 map 的结果可复现
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (m *MemoryStorage) FindItemsByIDs(_ context.Context, ids []string) ([]*core.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*core.Item, 0, len(ids))
	for _, id := range ids {
		if item, ok := m.items[id]; ok {
			out = append(out, item.Clone())
		}
	}
	return out, nil
}

// matchContent 实现类目/院系两族条件的 OR 语义；两族都为空表示不过滤。
func matchContent(item *core.Item, q core.ItemQuery) bool {
	if len(q.Categories) == 0 && q.Department == "" {
		return true
	}
	for _, c := range q.Categories {
		if item.Category == c {
			return true
		}
	}
	return q.Department != "" && item.Department == q.Department
}

func statusIn(s core.BorrowStatus, set []core.BorrowStatus) bool {
	for _, v := range set {
		if s == v {
			return true
		}
	}
	return false
}

// 确保 MemoryStorage 实现了 core.Storage 接口
var _ core.Storage = (*MemoryStorage)(nil)
