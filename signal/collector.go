// Package signal 负责收集驱动个性化的输入信号：显式兴趣、行为推导类目、
// 组织归属，以及在借排除集。
package signal

import (
	"context"
	"sort"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rushteam/librec/core"
)

// InterestProvider 提供显式兴趣之外的兴趣来源（例如 Feast 特征服务）。
// 画像里已有显式兴趣时不会咨询它。
type InterestProvider interface {
	// UserInterests 返回用户的兴趣标签
	UserInterests(ctx context.Context, userID string) ([]string, error)
}

// Collector 构建单次调用的 RecommendContext。
//
// 流程：先取画像（阻塞，后续依赖它）；随后并发取在借排除集与近期借阅历史；
// 用户不存在返回空上下文并置 FallbackUsed，这不是错误，只是"无个性化可做"。
// 历史/排除集读取失败属于非关键读：记日志，降级为空信号，链路继续。
// 唯一允许上抛的是画像读取本身的基础设施错误。
type Collector struct {
	storage   core.Storage
	cfg       core.RecommendConfig
	interests InterestProvider
	logger    zerolog.Logger
}

func NewCollector(storage core.Storage, cfg core.RecommendConfig, logger zerolog.Logger) *Collector {
	if cfg == nil {
		cfg = &core.DefaultRecommendConfig{}
	}
	return &Collector{
		storage: storage,
		cfg:     cfg,
		logger:  logger.With().Str("component", "signal").Logger(),
	}
}

// WithInterestProvider 设置兴趣兜底来源。
func (c *Collector) WithInterestProvider(p InterestProvider) *Collector {
	c.interests = p
	return c
}

// Collect 收集信号并构建上下文。extraExclude 是调用方显式排除的馆藏 ID。
func (c *Collector) Collect(ctx context.Context, userID string, extraExclude []string) (*core.RecommendContext, error) {
	rctx := core.NewRecommendContext(userID)
	rctx.Exclude(extraExclude...)

	user, err := c.storage.FindUser(ctx, userID)
	if err != nil {
		if core.IsNotFound(err) {
			rctx.FallbackUsed = true
			return rctx, nil
		}
		return nil, err
	}

	rctx.User = user
	rctx.Department = user.Department
	for _, tag := range user.Interests {
		if tag != "" && !rctx.HasInterest(tag) {
			rctx.Interests = append(rctx.Interests, tag)
		}
	}

	var (
		active  []core.BorrowingRecord
		history []core.BorrowingRecord
	)

	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		recs, err := c.storage.FindBorrowings(gctx, core.BorrowingQuery{
			UserID:   userID,
			Statuses: core.ActiveStatuses(),
		})
		if err != nil {
			c.logger.Warn().Err(err).Str("user_id", userID).
				Msg("active borrowings unavailable, exclusion signal degraded")
			return nil
		}
		active = recs
		return nil
	})
	eg.Go(func() error {
		recs, err := c.storage.FindBorrowings(gctx, core.BorrowingQuery{
			UserID: userID,
			Limit:  c.cfg.HistorySampleSize(),
		})
		if err != nil {
			c.logger.Warn().Err(err).Str("user_id", userID).
				Msg("borrow history unavailable, category signal degraded")
			return nil
		}
		history = recs
		return nil
	})
	// 两个读都自行降级，这里不会返回错误
	_ = eg.Wait()

	for _, rec := range active {
		rctx.Exclude(rec.ItemID)
	}
	rctx.TopCategories = deriveCategories(history, c.cfg.MinCategoryFreq())

	if len(rctx.Interests) == 0 && c.interests != nil {
		tags, err := c.interests.UserInterests(ctx, userID)
		if err != nil {
			c.logger.Warn().Err(err).Str("user_id", userID).
				Msg("interest provider unavailable, skipped")
		} else {
			for _, tag := range tags {
				if tag != "" && !rctx.HasInterest(tag) {
					rctx.Interests = append(rctx.Interests, tag)
				}
			}
		}
	}

	return rctx, nil
}

// deriveCategories 统计近期借阅（最近优先的采样）的类目频次。
// 出现 >= minFreq 次才视为行为推导类目；频次降序，同频保留首次出现顺序
// （即检索顺序，稳定）。
func deriveCategories(history []core.BorrowingRecord, minFreq int) []string {
	if minFreq <= 0 {
		minFreq = 1
	}

	counts := make(map[string]int, len(history))
	order := make([]string, 0, len(history))
	for _, rec := range history {
		if rec.Category == "" {
			continue
		}
		if counts[rec.Category] == 0 {
			order = append(order, rec.Category)
		}
		counts[rec.Category]++
	}

	derived := make([]string, 0, len(order))
	for _, cat := range order {
		if counts[cat] >= minFreq {
			derived = append(derived, cat)
		}
	}
	sort.SliceStable(derived, func(i, j int) bool {
		return counts[derived[i]] > counts[derived[j]]
	})
	return derived
}
