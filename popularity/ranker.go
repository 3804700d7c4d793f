// Package popularity 计算与单个用户无关的热门排序。
package popularity

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/rushteam/librec/core"
)

// DefaultKey 是 KV 中预计算热门榜的默认 key。
const DefaultKey = "popular:items"

// Result 是热门计算结果。
type Result struct {
	// IDs 借阅次数降序的完整排序
	IDs []string

	// Top 榜单前 TopN，打分时命中记为热门
	Top map[string]bool
}

// Ranker 计算回看窗口内的借阅热门榜。
//
// 两条路径：
//  1. KV 快路径：读离线任务预计算好的有序集合（ZRange 按分数降序）
//  2. 在线计算：从 Storage 取窗口内最近 N 条借阅采样，按馆藏计数
//
// 计数是有界采样而非全量统计，这是成本/精度的既定折衷；
// 同次数的先后保留采样顺序（最近优先），不做二次排序——
// 这是已接受的平局非确定性来源，测试里点名覆盖而非掩盖。
type Ranker struct {
	storage core.Storage
	kv      core.KeyValueStore // 可选
	key     string
	cfg     core.RecommendConfig
	logger  zerolog.Logger
}

func NewRanker(storage core.Storage, cfg core.RecommendConfig, logger zerolog.Logger) *Ranker {
	if cfg == nil {
		cfg = &core.DefaultRecommendConfig{}
	}
	return &Ranker{
		storage: storage,
		key:     DefaultKey,
		cfg:     cfg,
		logger:  logger.With().Str("component", "popularity").Logger(),
	}
}

// WithKV 启用预计算榜单快路径。
func (r *Ranker) WithKV(kv core.KeyValueStore, key string) *Ranker {
	r.kv = kv
	if key != "" {
		r.key = key
	}
	return r
}

// Rank 返回热门排序。KV 快路径失败或为空时回落到在线计算；
// 调用方应把错误当作空信号处理（热门是非关键读）。
func (r *Ranker) Rank(ctx context.Context) (*Result, error) {
	if r.kv != nil {
		ids, err := r.kv.ZRange(ctx, r.key, 0, int64(r.cfg.PopularitySampleSize())-1)
		if err != nil {
			r.logger.Warn().Err(err).Str("key", r.key).
				Msg("popularity kv read failed, falling back to storage")
		} else if len(ids) > 0 {
			return r.result(ids), nil
		}
	}

	ids, err := r.compute(ctx)
	if err != nil {
		return nil, err
	}
	return r.result(ids), nil
}

// Refresh 重算榜单并回写 KV，供在线路径走快路径。未配置 KV 时返回错误。
func (r *Ranker) Refresh(ctx context.Context) error {
	if r.kv == nil {
		return core.NewDomainError(core.ModulePopularity, core.ErrorCodeNotSupported,
			"popularity: refresh requires a key-value store")
	}

	ids, err := r.compute(ctx)
	if err != nil {
		return err
	}

	if err := r.kv.Delete(ctx, r.key); err != nil {
		return fmt.Errorf("popularity: reset board: %w", err)
	}
	// 分数取倒序名次，ZRange 降序读出即恢复计数顺序
	for i, id := range ids {
		if err := r.kv.ZAdd(ctx, r.key, float64(len(ids)-i), id); err != nil {
			return fmt.Errorf("popularity: write board: %w", err)
		}
	}

	r.logger.Debug().Int("size", len(ids)).Str("key", r.key).Msg("popularity board refreshed")
	return nil
}

func (r *Ranker) compute(ctx context.Context) ([]string, error) {
	since := time.Now().Add(-r.cfg.PopularityWindow())
	sample, err := r.storage.FindBorrowings(ctx, core.BorrowingQuery{
		Since: since,
		Limit: r.cfg.PopularitySampleSize(),
	})
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(sample))
	order := make([]string, 0, len(sample))
	for _, rec := range sample {
		if rec.ItemID == "" {
			continue
		}
		if counts[rec.ItemID] == 0 {
			order = append(order, rec.ItemID)
		}
		counts[rec.ItemID]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	return order, nil
}

func (r *Ranker) result(ids []string) *Result {
	topN := r.cfg.PopularTopN()
	top := make(map[string]bool, topN)
	for i, id := range ids {
		if i >= topN {
			break
		}
		top[id] = true
	}
	return &Result{IDs: ids, Top: top}
}
