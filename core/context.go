package core

// RecommendContext 承载单次推荐调用的个性化信号，贯穿整个 Pipeline 透传。
// 每次调用重新构建，调用结束即丢弃，不持久化。
type RecommendContext struct {
	UserID string

	// User 是解析后的用户画像；nil 表示用户不存在（无个性化可做）
	User *UserProfile

	// Interests 解析后的显式兴趣标签
	Interests []string

	// TopCategories 借阅历史推导的高频类目（频次降序，同频保留检索顺序）
	TopCategories []string

	// Department 组织归属，可为空
	Department string

	// Excluded 不允许出现在结果中的馆藏 ID：在借记录 ∪ 调用方显式排除
	Excluded map[string]bool

	// Popular 热门集合（TopN），打分时命中记 +1
	Popular map[string]bool

	// PopularIDs 热门完整排序（借阅次数降序），供兜底补齐檔位按序捞取
	PopularIDs []string

	// FallbackUsed 任一兜底檔位生效时置位
	FallbackUsed bool
}

func NewRecommendContext(userID string) *RecommendContext {
	return &RecommendContext{
		UserID:        userID,
		Interests:     make([]string, 0),
		TopCategories: make([]string, 0),
		Excluded:      make(map[string]bool),
		Popular:       make(map[string]bool),
	}
}

// Exclude 把 ID 加入排除集，空 ID 忽略。
func (rctx *RecommendContext) Exclude(ids ...string) {
	if rctx.Excluded == nil {
		rctx.Excluded = make(map[string]bool, len(ids))
	}
	for _, id := range ids {
		if id != "" {
			rctx.Excluded[id] = true
		}
	}
}

// IsExcluded 检查 ID 是否在排除集中。
func (rctx *RecommendContext) IsExcluded(id string) bool {
	return rctx.Excluded != nil && rctx.Excluded[id]
}

// HasInterest 检查类目是否命中显式兴趣。
func (rctx *RecommendContext) HasInterest(category string) bool {
	if category == "" {
		return false
	}
	for _, tag := range rctx.Interests {
		if tag == category {
			return true
		}
	}
	return false
}

// HasTopCategory 检查类目是否命中行为推导类目。
func (rctx *RecommendContext) HasTopCategory(category string) bool {
	if category == "" {
		return false
	}
	for _, c := range rctx.TopCategories {
		if c == category {
			return true
		}
	}
	return false
}

// IsPopular 检查馆藏是否在热门集合中。
func (rctx *RecommendContext) IsPopular(id string) bool {
	return rctx.Popular != nil && rctx.Popular[id]
}
