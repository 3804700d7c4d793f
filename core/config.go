package core

import "time"

// RecommendConfig 提供推荐链路各环节的默认参数。
type RecommendConfig interface {
	// DefaultLimit 返回默认的结果条数
	DefaultLimit() int

	// CandidateMultiplier 返回候选超采倍数（候选目标 = 倍数 × limit）
	CandidateMultiplier() int

	// PopularFetchMultiplier 返回热门补齐檔位的捞取倍数
	PopularFetchMultiplier() int

	// HistorySampleSize 返回历史类目统计的采样条数
	HistorySampleSize() int

	// MinCategoryFreq 返回类目被视为行为推导类目的最小出现次数
	MinCategoryFreq() int

	// PopularityWindow 返回热门统计的回看窗口
	PopularityWindow() time.Duration

	// PopularitySampleSize 返回热门统计的采样上限
	PopularitySampleSize() int

	// PopularTopN 返回被视为"热门"的榜单长度
	PopularTopN() int

	// NewArrivalWindow 返回"新到馆"的时间窗口
	NewArrivalWindow() time.Duration
}

// DefaultRecommendConfig 是默认的推荐配置实现。
//
// 热门统计刻意采用有界采样（窗口内最近 300 条）而非全量计数，
// 这是成本/精度的折衷，不是缺陷。
type DefaultRecommendConfig struct{}

func (c *DefaultRecommendConfig) DefaultLimit() int {
	return 6
}

func (c *DefaultRecommendConfig) CandidateMultiplier() int {
	return 3
}

func (c *DefaultRecommendConfig) PopularFetchMultiplier() int {
	return 2
}

func (c *DefaultRecommendConfig) HistorySampleSize() int {
	return 40
}

func (c *DefaultRecommendConfig) MinCategoryFreq() int {
	return 2
}

func (c *DefaultRecommendConfig) PopularityWindow() time.Duration {
	return 90 * 24 * time.Hour
}

func (c *DefaultRecommendConfig) PopularitySampleSize() int {
	return 300
}

func (c *DefaultRecommendConfig) PopularTopN() int {
	return 20
}

func (c *DefaultRecommendConfig) NewArrivalWindow() time.Duration {
	return 60 * 24 * time.Hour
}
