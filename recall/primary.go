package recall

import (
	"context"

	"github.com/rushteam/librec/core"
)

// Primary 是首选檔位：按个性化信号做结构化检索。
// 过滤条件为两族 OR：命中（显式兴趣 ∪ 推导类目）任一类目，或命中院系；
// 只要可借副本、不在排除集内，按入库时间降序。
// 用户完全没有个性化信号时本檔位直接空手而归，交给后续檔位。
type Primary struct {
	Storage core.Storage

	// CapMultiplier 捞取上限倍数，默认 3
	CapMultiplier int
}

func (s *Primary) Name() string { return "recall.primary" }

func (s *Primary) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
	limit int,
	_ map[string]bool,
) ([]*core.Item, error) {
	if s.Storage == nil || rctx == nil {
		return nil, nil
	}

	categories := make([]string, 0, len(rctx.Interests)+len(rctx.TopCategories))
	seen := make(map[string]bool)
	for _, c := range rctx.Interests {
		if c != "" && !seen[c] {
			seen[c] = true
			categories = append(categories, c)
		}
	}
	for _, c := range rctx.TopCategories {
		if c != "" && !seen[c] {
			seen[c] = true
			categories = append(categories, c)
		}
	}

	// 无信号时不做无差别检索，那是兜底檔位的语义
	if len(categories) == 0 && rctx.Department == "" {
		return nil, nil
	}

	return s.Storage.FindItems(ctx, core.ItemQuery{
		AvailableOnly: true,
		ExcludeIDs:    rctx.Excluded,
		Categories:    categories,
		Department:    rctx.Department,
		Limit:         s.cap(limit),
	})
}

func (s *Primary) cap(limit int) int {
	m := s.CapMultiplier
	if m <= 0 {
		m = 3
	}
	return m * limit
}
