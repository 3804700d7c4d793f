// Package dsl 提供基于 CEL (Common Expression Language) 的规则表达式求值。
// 业务规则（例如"参考书不外推"）可以写在配置里，不必改代码。
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/librec/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once
)

// initCELEnv 初始化 CEL 环境，定义变量。
func initCELEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("item", cel.DynType),
		cel.Variable("rctx", cel.DynType),
	)
}

func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = initCELEnv()
	})
	return celEnv, celEnvErr
}

// Program 是编译后的规则表达式，可跨调用并发复用。
//
// 表达式语法（CEL 标准语法），可访问两个变量：
//   - item: 候选馆藏，字段 id / title / author / category / department /
//     copies / score / new_arrival / popular
//   - rctx: 调用上下文，字段 user_id / department / interests /
//     top_categories / fallback
//
// 示例：
//   - `item.copies == 0`                        → 无副本
//   - `item.category == "Reference"`            → 参考书
//   - `item.department != rctx.department && item.copies < 2` → 跨院系且副本紧张
type Program struct {
	expr string
	prg  cel.Program
}

// Compile 编译规则表达式。表达式只编译一次，Program 可多次求值。
func Compile(expr string) (*Program, error) {
	if expr == "" {
		return nil, fmt.Errorf("dsl: empty expression")
	}

	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("dsl: init env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("dsl: compile %q: %w", expr, issues.Err())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("dsl: program %q: %w", expr, err)
	}

	return &Program{expr: expr, prg: prg}, nil
}

// Expr 返回原始表达式文本。
func (p *Program) Expr() string { return p.expr }

// Eval 对单个候选求值，返回布尔结果。
func (p *Program) Eval(rctx *core.RecommendContext, item *core.Item) (bool, error) {
	out, _, err := p.prg.Eval(map[string]any{
		"item": itemInput(item),
		"rctx": contextInput(rctx),
	})
	if err != nil {
		return false, fmt.Errorf("dsl: eval %q: %w", p.expr, err)
	}

	b, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("dsl: expression %q is not boolean", p.expr)
	}
	return b, nil
}

func itemInput(item *core.Item) map[string]any {
	if item == nil {
		return map[string]any{}
	}
	return map[string]any{
		"id":          item.ID,
		"title":       item.Title,
		"author":      item.Author,
		"category":    item.Category,
		"department":  item.Department,
		"copies":      item.Copies,
		"score":       item.Score,
		"new_arrival": item.NewArrival,
		"popular":     item.Popular,
	}
}

func contextInput(rctx *core.RecommendContext) map[string]any {
	if rctx == nil {
		return map[string]any{}
	}
	return map[string]any{
		"user_id":        rctx.UserID,
		"department":     rctx.Department,
		"interests":      rctx.Interests,
		"top_categories": rctx.TopCategories,
		"fallback":       rctx.FallbackUsed,
	}
}
