package recall

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rushteam/librec/core"
	"github.com/rushteam/librec/pipeline"
)

// Cascade 是召回 Node：按檔位顺序执行，逐级放宽，直到候选够用。
//
// 执行规则：
//   - 首檔位无条件执行；后续檔位只在已有候选数 < limit 时启用
//   - 合并策略为 first-wins：同一 ID 以先出现的檔位为准（对齐 fanout 去重语义）
//   - 排除集在合并时再校验一遍，任何檔位都不得夹带被排除的 ID
//   - 单个檔位失败记日志后跳过（非关键读降级），不中断整条链路
//   - 候选总数有界：multiplier × limit
type Cascade struct {
	Tiers []Source

	// Limit 本次请求的最终条数
	Limit int

	// Multiplier 候选超采倍数，默认 3
	Multiplier int

	Logger zerolog.Logger
}

func (n *Cascade) Name() string        { return "recall.cascade" }
func (n *Cascade) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *Cascade) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	if len(n.Tiers) == 0 || n.Limit <= 0 {
		return nil, nil
	}

	multiplier := n.Multiplier
	if multiplier <= 0 {
		multiplier = 3
	}
	target := multiplier * n.Limit

	have := make(map[string]bool, target)
	out := make([]*core.Item, 0, target)

	for i, tier := range n.Tiers {
		if i > 0 && len(out) >= n.Limit {
			break
		}

		items, err := tier.Recall(ctx, rctx, n.Limit, have)
		if err != nil {
			n.Logger.Warn().Err(err).Str("tier", tier.Name()).
				Msg("recall tier failed, degrading to empty")
			continue
		}

		for _, it := range items {
			if it == nil || have[it.ID] || rctx.IsExcluded(it.ID) {
				continue
			}
			have[it.ID] = true
			out = append(out, it)
			if len(out) >= target {
				break
			}
		}
		if len(out) >= target {
			break
		}
	}

	return out, nil
}
