package pipeline

import (
	"context"

	"github.com/rushteam/librec/core"
)

// Pipeline 是 librec 的核心抽象：把推荐逻辑拆成可组合的 Node 链。
// 引擎默认按 召回 → 过滤 → 打分 → 截断 装配，业务方可插拔自定义 Node。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
