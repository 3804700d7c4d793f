package filter

import (
	"context"

	"github.com/rushteam/librec/core"
)

// AvailableFilter 过滤掉没有可借副本的馆藏。
// 主要拦截按 ID 捞取的热门补齐结果——分檔查询在存储侧已带可借条件，
// 但 FindItemsByIDs 不带。
type AvailableFilter struct{}

func (f *AvailableFilter) Name() string {
	return "filter.available"
}

func (f *AvailableFilter) ShouldFilter(
	_ context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	return item.Copies <= 0, nil
}
