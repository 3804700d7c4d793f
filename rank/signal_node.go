package rank

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rushteam/librec/core"
	"github.com/rushteam/librec/pipeline"
)

// 各信号的分值与理由文案。理由是结果契约的一部分，改动需要过产品评审。
const (
	scoreInterest   = 3
	scoreCategory   = 2
	scoreDepartment = 2
	scoreNewArrival = 1
	scorePopular    = 1

	reasonDepartment = "From your department collection"
	reasonNewArrival = "New arrival this term"
	reasonPopular    = "Popular with other students"
	reasonBaseline   = "Handpicked by the library team"
)

// SignalNode 是多信号线性打分 Node：对每个候选逐项独立评估信号，
// 累加分数并记录理由；一个信号都没命中时注入保底分与保底理由，
// 保证 score >= 1 且 reasons 非空。
//
// 排序：分数降序 → 可借副本数降序 → ID 升序。
// 最后一级 ID 升序是本实现补充的确定性兜底（上游系统在同分同副本时
// 依赖检索顺序，属于未约定行为）。
type SignalNode struct {
	// Config 为空时使用 DefaultRecommendConfig
	Config core.RecommendConfig

	// Now 便于测试注入时钟，默认 time.Now
	Now func() time.Time
}

func (n *SignalNode) Name() string        { return "rank.signal" }
func (n *SignalNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *SignalNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	cfg := n.Config
	if cfg == nil {
		cfg = &core.DefaultRecommendConfig{}
	}
	now := time.Now()
	if n.Now != nil {
		now = n.Now()
	}

	for _, it := range items {
		if it == nil {
			continue
		}
		n.score(rctx, it, now, cfg)
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Copies != b.Copies {
			return a.Copies > b.Copies
		}
		return a.ID < b.ID
	})

	return items, nil
}

func (n *SignalNode) score(rctx *core.RecommendContext, it *core.Item, now time.Time, cfg core.RecommendConfig) {
	// 候选可能来自缓存，先清掉上一次调用的打分残留
	it.Score = 0
	it.Reasons = it.Reasons[:0]
	it.NewArrival = false
	it.Popular = false

	if rctx == nil {
		it.Score = 1
		it.AddReason(reasonBaseline)
		return
	}

	if rctx.HasInterest(it.Category) {
		it.Score += scoreInterest
		it.AddReason(fmt.Sprintf("Matches your interest in %s", it.Category))
	}

	if rctx.HasTopCategory(it.Category) {
		it.Score += scoreCategory
		it.AddReason(fmt.Sprintf("You often borrow %s titles", it.Category))
	}

	if rctx.Department != "" && it.Department == rctx.Department {
		it.Score += scoreDepartment
		it.AddReason(reasonDepartment)
	}

	if !it.CreatedAt.IsZero() && now.Sub(it.CreatedAt) <= cfg.NewArrivalWindow() {
		it.Score += scoreNewArrival
		it.NewArrival = true
		it.AddReason(reasonNewArrival)
	}

	if rctx.IsPopular(it.ID) {
		it.Score += scorePopular
		it.Popular = true
		it.AddReason(reasonPopular)
	}

	if it.Score == 0 {
		it.Score = 1
		it.AddReason(reasonBaseline)
	}
}
