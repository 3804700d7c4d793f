package snapshot

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rushteam/librec/core"
)

// DefaultIDPrefix 标记结果来自快照而非结构化存储。
const DefaultIDPrefix = "catalog:"

const (
	bridgeScoreInterest   = 3
	bridgeScoreDepartment = 2
	bridgeScoreCopies     = 1

	reasonBridgeDepartment = "From your department collection"
	reasonBridgePopular    = "Popular in the general catalog"
)

// Bridge 是最后兜底的推荐路径：结构化检索颗粒无收时，直接在扁平快照上
// 做词面（lexical）匹配，不走任何关系过滤。
//
// 打分规则：每条快照记录起步 1 分；兴趣标签以不区分大小写的子串形式
// 命中 "标题 + 空格 + 作者" 时每个标签 +3（首个命中的标签记为伪类目）；
// 院系不区分大小写相等 +2；副本数 >= 5 再 +1。
//
// 与主路径不同，这里的排序完全确定：分数降序 → 副本降序 → 标题升序。
// 读取/解析失败吞掉并记日志，降级为空结果，绝不向上抛错。
type Bridge struct {
	source core.SnapshotSource
	prefix string
	logger zerolog.Logger
}

func NewBridge(source core.SnapshotSource, logger zerolog.Logger) *Bridge {
	return &Bridge{
		source: source,
		prefix: DefaultIDPrefix,
		logger: logger.With().Str("component", "bridge").Logger(),
	}
}

// WithIDPrefix 改写结果 ID 的命名空间前缀。
func (b *Bridge) WithIDPrefix(prefix string) *Bridge {
	b.prefix = prefix
	return b
}

// Recommend 从快照生成最多 limit 条兜底推荐。
func (b *Bridge) Recommend(ctx context.Context, rctx *core.RecommendContext, limit int) []*core.Item {
	if b.source == nil || rctx == nil || limit <= 0 {
		return nil
	}

	entries, err := b.source.LoadCatalogSnapshot(ctx)
	if err != nil {
		b.logger.Warn().Err(err).Msg("catalog snapshot unavailable, bridge degraded to empty")
		return nil
	}

	scored := make([]*core.Item, 0, len(entries))
	for _, e := range entries {
		if e == nil || e.ID == "" {
			continue
		}
		scored = append(scored, b.score(rctx, e))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		a, c := scored[i], scored[j]
		if a.Score != c.Score {
			return a.Score > c.Score
		}
		if a.Copies != c.Copies {
			return a.Copies > c.Copies
		}
		return a.Title < c.Title
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

func (b *Bridge) score(rctx *core.RecommendContext, e *core.Item) *core.Item {
	// 快照条目跨调用共享，先拷贝再打分
	it := e.Clone()
	it.Score = 1
	it.Reasons = it.Reasons[:0]
	it.NewArrival = false
	it.Popular = false

	haystack := strings.ToLower(e.Title + " " + e.Author)
	matchedInterest := ""
	for _, tag := range rctx.Interests {
		if tag == "" {
			continue
		}
		if strings.Contains(haystack, strings.ToLower(tag)) {
			it.Score += bridgeScoreInterest
			it.AddReason(fmt.Sprintf("Matches your interest in %s", tag))
			if matchedInterest == "" {
				matchedInterest = tag
			}
		}
	}
	// 伪类目：词面命中没有真实类目，用首个命中的兴趣标签顶替
	if matchedInterest != "" {
		it.Category = matchedInterest
	}

	if rctx.Department != "" && strings.EqualFold(e.Department, rctx.Department) {
		it.Score += bridgeScoreDepartment
		it.AddReason(reasonBridgeDepartment)
	}

	if e.Copies >= 5 {
		it.Score += bridgeScoreCopies
		it.AddReason(reasonBridgePopular)
	}

	it.ID = b.prefix + e.ID
	// 兜底结果不展示零可借：至少按 1 副本呈现
	if it.Copies < 1 {
		it.Copies = 1
	}
	return it
}
