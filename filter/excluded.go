package filter

import (
	"context"

	"github.com/rushteam/librec/core"
)

// ExcludedFilter 按上下文排除集过滤：在借馆藏 ∪ 调用方显式排除。
// 召回檔位在查询侧已经带了排除条件，这里再兜一道，保证
// "排除集在任何檔位都生效"的不变式不被上游实现细节破坏。
type ExcludedFilter struct{}

func (f *ExcludedFilter) Name() string {
	return "filter.excluded"
}

func (f *ExcludedFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if rctx == nil {
		return false, nil
	}
	return rctx.IsExcluded(item.ID), nil
}
