package recall

import (
	"context"

	"github.com/rushteam/librec/core"
)

// Source 表示一个召回檔位（tier）：逐级放宽的候选来源。
// Cascade 按顺序执行檔位，前置檔位够用时后置檔位不再启用。
//
// 参数约定：
//   - limit 是本次请求的最终条数，檔位据此推导自己的捞取上限
//   - have 是已入选候选的 ID 集合，檔位可据此避免重复捞取
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext, limit int, have map[string]bool) ([]*core.Item, error)
}
