// Package feast 提供 Feast Feature Store 的在线特征客户端，
// 以及把在线特征转成兴趣信号的适配器。
package feast

import "context"

// Client 是 Feast 在线特征服务的客户端接口。
// 接口定义在本包（领域侧），GrpcClient 基于官方 SDK 实现；
// 业务方也可以自行实现（例如走自建特征网关）。
//
// 参考：https://github.com/feast-dev/feast
type Client interface {
	// GetOnlineFeatures 获取在线特征
	//
	// Features 形如 ["user_profile:interest_tags"]；
	// EntityRows 形如 [{"user_id": "u1001"}]。
	GetOnlineFeatures(ctx context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error)

	// Close 关闭客户端连接
	Close() error
}

// GetOnlineFeaturesRequest 是在线特征请求。
type GetOnlineFeaturesRequest struct {
	// Features 特征名称列表，例如 ["user_profile:interest_tags"]
	Features []string

	// EntityRows 实体行，例如 [{"user_id": "u1001"}]
	EntityRows []map[string]any

	// Project 项目名称，为空时使用客户端默认项目
	Project string
}

// FeatureVector 是单个实体行的特征向量。
type FeatureVector struct {
	// Values key 为特征名称，value 为特征值
	Values map[string]any

	// EntityRow 对应的请求实体行
	EntityRow map[string]any
}

// GetOnlineFeaturesResponse 是在线特征响应，行序与请求实体行一致。
type GetOnlineFeaturesResponse struct {
	FeatureVectors []FeatureVector
}
