package recall

import (
	"context"

	"github.com/rushteam/librec/core"
)

// PopularTopUp 是热门补齐檔位：前两檔仍不够时，按榜单顺序捞取
// 尚未入选且未被排除的热门馆藏。榜单为空时本檔位不做任何事。
type PopularTopUp struct {
	Storage core.Storage

	// CapMultiplier 额外捞取的上限倍数，默认 2
	CapMultiplier int
}

func (s *PopularTopUp) Name() string { return "recall.popular" }

func (s *PopularTopUp) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
	limit int,
	have map[string]bool,
) ([]*core.Item, error) {
	if s.Storage == nil || rctx == nil || len(rctx.PopularIDs) == 0 {
		return nil, nil
	}

	m := s.CapMultiplier
	if m <= 0 {
		m = 2
	}
	want := m * limit

	ids := make([]string, 0, want)
	for _, id := range rctx.PopularIDs {
		if have[id] || rctx.IsExcluded(id) {
			continue
		}
		ids = append(ids, id)
		if len(ids) >= want {
			break
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	rctx.FallbackUsed = true

	return s.Storage.FindItemsByIDs(ctx, ids)
}
