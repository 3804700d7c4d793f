package rerank

import (
	"context"

	"github.com/rushteam/librec/core"
	"github.com/rushteam/librec/pipeline"
)

// TopNNode 是 Top-N 截断节点，在打分排序之后截取前 N 个候选。
// N <= 0 或候选数不足 N 时不截断。
type TopNNode struct {
	N int
}

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.N <= 0 || len(items) <= n.N {
		return items, nil
	}
	return items[:n.N], nil
}
