package recall

import (
	"context"

	"github.com/rushteam/librec/core"
)

// Broad 是无差别兜底檔位：不做任何类目/院系过滤，只保留可借与排除约束，
// 按入库时间降序。本檔位一旦启用即置 FallbackUsed。
type Broad struct {
	Storage core.Storage

	// CapMultiplier 捞取上限倍数，默认 3
	CapMultiplier int
}

func (s *Broad) Name() string { return "recall.broad" }

func (s *Broad) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
	limit int,
	_ map[string]bool,
) ([]*core.Item, error) {
	if s.Storage == nil || rctx == nil {
		return nil, nil
	}

	rctx.FallbackUsed = true

	m := s.CapMultiplier
	if m <= 0 {
		m = 3
	}

	return s.Storage.FindItems(ctx, core.ItemQuery{
		AvailableOnly: true,
		ExcludeIDs:    rctx.Excluded,
		Limit:         m * limit,
	})
}
