package rerank

import (
	"context"

	"github.com/rushteam/librec/core"
	"github.com/rushteam/librec/pipeline"
)

// Diversity 是可选的多样性重排节点：按类目去重，每个类目只保留
// 排序最靠前的一条。不在默认链路里——默认契约是纯分数排序，
// 需要"一个类目最多一条"的调用方自行插入本节点。
type Diversity struct{}

func (n *Diversity) Name() string {
	return "rerank.diversity"
}

func (n *Diversity) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *Diversity) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	seen := make(map[string]bool, len(items))
	out := make([]*core.Item, 0, len(items))

	for _, it := range items {
		if it == nil {
			continue
		}
		if it.Category == "" {
			out = append(out, it)
			continue
		}
		if seen[it.Category] {
			continue
		}
		seen[it.Category] = true
		out = append(out, it)
	}

	return out, nil
}
