package filter

import (
	"context"

	"github.com/rushteam/librec/core"
	"github.com/rushteam/librec/pkg/dsl"
)

// RuleFilter 是基于 CEL 表达式的业务规则过滤器。
// 表达式在创建时编译一次，之后并发复用；表达式求值为 true 的候选被过滤掉。
//
// 示例：
//
//	f, err := filter.NewRuleFilter(`item.category == "Reference"`)
//	node := &filter.FilterNode{Filters: []filter.Filter{f}}
type RuleFilter struct {
	prg *dsl.Program
}

// NewRuleFilter 创建规则过滤器，表达式编译失败时返回错误。
func NewRuleFilter(expr string) (*RuleFilter, error) {
	prg, err := dsl.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &RuleFilter{prg: prg}, nil
}

func (f *RuleFilter) Name() string {
	return "filter.rule"
}

// Expr 返回规则表达式文本。
func (f *RuleFilter) Expr() string {
	return f.prg.Expr()
}

func (f *RuleFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	match, err := f.prg.Eval(rctx, item)
	if err != nil {
		// 求值错误降级保留，由 FilterNode 统一忽略
		return false, err
	}
	return match, nil
}
