// Package engine 把信号收集、分檔召回、多信号打分与数据集兜底
// 编排成一次只读的推荐调用。
package engine

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rushteam/librec/core"
	"github.com/rushteam/librec/filter"
	"github.com/rushteam/librec/pipeline"
	"github.com/rushteam/librec/popularity"
	"github.com/rushteam/librec/rank"
	"github.com/rushteam/librec/recall"
	"github.com/rushteam/librec/rerank"
	"github.com/rushteam/librec/signal"
	"github.com/rushteam/librec/snapshot"
)

// Config 是 Engine 的装配配置。只有 Storage 必填。
type Config struct {
	// Storage 结构化存储协作方
	Storage core.Storage

	// Snapshot 目录快照来源，配置后启用数据集兜底路径
	Snapshot core.SnapshotSource

	// KV 配置后热门榜走预计算快路径
	KV core.KeyValueStore

	// Interests 兴趣兜底来源（如 feast.InterestSource），画像无兴趣时咨询
	Interests signal.InterestProvider

	// Recommend 链路参数，缺省 DefaultRecommendConfig
	Recommend core.RecommendConfig

	// Filters 追加在内置过滤器之后的业务规则（如 filter.RuleFilter）
	Filters []filter.Filter

	// Logger 缺省 zerolog.Nop()
	Logger *zerolog.Logger
}

// Request 是一次推荐请求。
type Request struct {
	UserID string

	// Limit 结果条数上限，<= 0 时用默认值
	Limit int

	// ExcludeIDs 调用方显式排除的馆藏 ID，与在借排除集取并集
	ExcludeIDs []string
}

// Result 是一次推荐结果。Items 永远非 nil；"用户不存在"与"无候选"
// 都是合法的空结果，不是错误。
type Result struct {
	Items   []*core.Item
	Context *core.RecommendContext
}

// Engine 无状态、无副作用（只读查询），可跨调用并发复用。
type Engine struct {
	storage   core.Storage
	collector *signal.Collector
	ranker    *popularity.Ranker
	bridge    *snapshot.Bridge // 可选
	cfg       core.RecommendConfig
	filters   []filter.Filter
	logger    zerolog.Logger
}

func New(cfg Config) (*Engine, error) {
	if cfg.Storage == nil {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput,
			"engine: storage is required")
	}

	rcfg := cfg.Recommend
	if rcfg == nil {
		rcfg = &core.DefaultRecommendConfig{}
	}
	// root 不带 component 字段，各组件自行打标
	root := zerolog.Nop()
	if cfg.Logger != nil {
		root = *cfg.Logger
	}

	collector := signal.NewCollector(cfg.Storage, rcfg, root)
	if cfg.Interests != nil {
		collector = collector.WithInterestProvider(cfg.Interests)
	}

	ranker := popularity.NewRanker(cfg.Storage, rcfg, root)
	if cfg.KV != nil {
		ranker = ranker.WithKV(cfg.KV, popularity.DefaultKey)
	}

	var bridge *snapshot.Bridge
	if cfg.Snapshot != nil {
		bridge = snapshot.NewBridge(cfg.Snapshot, root)
	}

	return &Engine{
		storage:   cfg.Storage,
		collector: collector,
		ranker:    ranker,
		bridge:    bridge,
		cfg:       rcfg,
		filters:   cfg.Filters,
		logger:    root.With().Str("component", "engine").Logger(),
	}, nil
}

// Recommend 为一个用户生成有界、有序、带理由的推荐列表。
//
// 执行顺序（与各步骤的依赖关系一致）：
//  1. 热门计算与信号收集并行——热门不依赖画像
//  2. 分檔召回串行——每一檔是否启用取决于前檔的累计结果
//  3. 过滤 → 打分排序 → 截断
//  4. 结果仍为空且配置了快照时，走数据集兜底
func (e *Engine) Recommend(ctx context.Context, req *Request) (*Result, error) {
	if req == nil || req.UserID == "" {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput,
			"engine: user id is required")
	}
	limit := req.Limit
	if limit <= 0 {
		limit = e.cfg.DefaultLimit()
	}

	var (
		rctx *core.RecommendContext
		pop  *popularity.Result
	)
	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		c, err := e.collector.Collect(gctx, req.UserID, req.ExcludeIDs)
		if err != nil {
			return err
		}
		rctx = c
		return nil
	})
	eg.Go(func() error {
		r, err := e.ranker.Rank(gctx)
		if err != nil {
			// 热门是非关键读：降级为空信号
			e.logger.Warn().Err(err).Msg("popularity unavailable, degraded to empty")
			return nil
		}
		pop = r
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	// 用户不存在：无个性化可做，直接返回空结果
	if rctx.User == nil {
		return &Result{Items: []*core.Item{}, Context: rctx}, nil
	}

	if pop != nil {
		rctx.PopularIDs = pop.IDs
		rctx.Popular = pop.Top
	}

	filters := append([]filter.Filter{
		&filter.ExcludedFilter{},
		&filter.AvailableFilter{},
	}, e.filters...)

	p := &pipeline.Pipeline{Nodes: []pipeline.Node{
		&recall.Cascade{
			Tiers: []recall.Source{
				&recall.Primary{Storage: e.storage, CapMultiplier: e.cfg.CandidateMultiplier()},
				&recall.Broad{Storage: e.storage, CapMultiplier: e.cfg.CandidateMultiplier()},
				&recall.PopularTopUp{Storage: e.storage, CapMultiplier: e.cfg.PopularFetchMultiplier()},
			},
			Limit:      limit,
			Multiplier: e.cfg.CandidateMultiplier(),
			Logger:     e.logger,
		},
		&filter.FilterNode{Filters: filters},
		&rank.SignalNode{Config: e.cfg},
		&rerank.TopNNode{N: limit},
	}}

	items, err := p.Run(ctx, rctx, nil)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 && e.bridge != nil {
		rctx.FallbackUsed = true
		items = e.bridge.Recommend(ctx, rctx, limit)
		e.logger.Debug().Int("items", len(items)).Msg("dataset bridge activated")
	}

	if items == nil {
		items = []*core.Item{}
	}
	return &Result{Items: items, Context: rctx}, nil
}
