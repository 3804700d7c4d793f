// Package librec 是面向馆藏借阅场景的个性化推荐工具包。
//
// 设计要点：
// - Pipeline-first: 推荐逻辑通过 Node 串联（Recall → Filter → Rank → ReRank）
// - 分檔召回: 逐级放宽的召回檔位（个性化 → 无差别 → 热门补齐 → 快照兜底），
//   前檔够用后檔不启用，排除集在所有檔位一致生效
// - Reasons-first: 每条结果携带有序去重的推荐理由，支持 explain
// - 永不空手报错: "用户不存在"与"无候选"都是合法空结果，只有基础设施
//   故障才作为错误上抛
package librec

import "github.com/rushteam/librec/pipeline"

// 轻量 facade：便于用户直接 import "librec" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
