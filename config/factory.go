// Package config 提供从配置构建 Pipeline Node 的默认工厂。
// 只注册不依赖在线协作方的 Node；召回檔位需要 Storage，由引擎装配。
package config

import (
	"fmt"

	"github.com/rushteam/librec/filter"
	"github.com/rushteam/librec/pipeline"
	"github.com/rushteam/librec/pkg/conv"
	"github.com/rushteam/librec/rank"
	"github.com/rushteam/librec/rerank"
)

// DefaultFactory 返回一个包含内置 Node 构建器的默认工厂。
func DefaultFactory() *pipeline.NodeFactory {
	factory := pipeline.NewNodeFactory()

	factory.Register("filter", buildFilterNode)
	factory.Register("rank.signal", buildSignalNode)
	factory.Register("rerank.topn", buildTopNNode)
	factory.Register("rerank.diversity", buildDiversityNode)

	return factory
}

// buildFilterNode 构建过滤 Node。配置示例：
//
//	type: filter
//	config:
//	  builtin: ["excluded", "available"]
//	  rules:
//	    - 'item.category == "Reference"'
func buildFilterNode(config map[string]any) (pipeline.Node, error) {
	node := &filter.FilterNode{}

	for _, name := range conv.SliceAnyToString(config["builtin"]) {
		switch name {
		case "excluded":
			node.Filters = append(node.Filters, &filter.ExcludedFilter{})
		case "available":
			node.Filters = append(node.Filters, &filter.AvailableFilter{})
		default:
			return nil, fmt.Errorf("unknown builtin filter: %s", name)
		}
	}

	for _, expr := range conv.SliceAnyToString(config["rules"]) {
		f, err := filter.NewRuleFilter(expr)
		if err != nil {
			return nil, err
		}
		node.Filters = append(node.Filters, f)
	}

	return node, nil
}

func buildSignalNode(_ map[string]any) (pipeline.Node, error) {
	return &rank.SignalNode{}, nil
}

func buildTopNNode(config map[string]any) (pipeline.Node, error) {
	return &rerank.TopNNode{N: conv.ConfigGetInt(config, "n", 0)}, nil
}

func buildDiversityNode(_ map[string]any) (pipeline.Node, error) {
	return &rerank.Diversity{}, nil
}
