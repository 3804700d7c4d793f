package feast

import (
	"context"
	"fmt"
	"strings"
)

// 默认的特征与实体命名，与特征仓库的 user_profile FeatureView 约定一致。
const (
	DefaultInterestFeature = "user_profile:interest_tags"
	DefaultEntityKey       = "user_id"
)

// InterestSource 把 Feast 在线特征适配成兴趣信号来源
// （结构上满足 signal.InterestProvider，不直接依赖 signal 包）。
//
// 特征值支持两种形态：字符串列表，或逗号分隔的单个字符串。
type InterestSource struct {
	Client Client

	// FeatureRef 兴趣特征引用，默认 DefaultInterestFeature
	FeatureRef string

	// EntityKey 实体键名，默认 DefaultEntityKey
	EntityKey string

	// Project 项目名称，为空时用客户端默认项目
	Project string
}

// UserInterests 查询用户的兴趣标签。特征缺失返回空切片，不视为错误。
func (s *InterestSource) UserInterests(ctx context.Context, userID string) ([]string, error) {
	if s.Client == nil {
		return nil, fmt.Errorf("feast: interest source has no client")
	}

	featureRef := s.FeatureRef
	if featureRef == "" {
		featureRef = DefaultInterestFeature
	}
	entityKey := s.EntityKey
	if entityKey == "" {
		entityKey = DefaultEntityKey
	}

	resp, err := s.Client.GetOnlineFeatures(ctx, &GetOnlineFeaturesRequest{
		Features:   []string{featureRef},
		EntityRows: []map[string]any{{entityKey: userID}},
		Project:    s.Project,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.FeatureVectors) == 0 {
		return nil, nil
	}

	raw, ok := resp.FeatureVectors[0].Values[featureRef]
	if !ok || raw == nil {
		return nil, nil
	}

	switch v := raw.(type) {
	case []string:
		return cleanTags(v), nil
	case string:
		return cleanTags(strings.Split(v, ",")), nil
	default:
		return nil, nil
	}
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
