package feast

import (
	"context"
	"fmt"

	feastsdk "github.com/feast-dev/feast/sdk/go"
	typespb "github.com/feast-dev/feast/sdk/go/protos/feast/types"
)

// GrpcClient 是基于官方 Feast Go SDK 的 gRPC 客户端实现。
// 在线预测路径推荐使用：二进制协议、低延迟、连接复用。
type GrpcClient struct {
	client *feastsdk.GrpcClient

	// Project 默认项目名称
	Project string

	// Endpoint 服务端点（用于日志展示）
	Endpoint string
}

// NewGrpcClient 创建一个 Feast gRPC 客户端。port 为 0 时使用默认端口 6565。
func NewGrpcClient(host string, port int, project string) (*GrpcClient, error) {
	if port == 0 {
		port = 6565
	}

	client, err := feastsdk.NewGrpcClient(host, port)
	if err != nil {
		return nil, fmt.Errorf("feast: connect %s:%d: %w", host, port, err)
	}

	return &GrpcClient{
		client:   client,
		Project:  project,
		Endpoint: fmt.Sprintf("%s:%d", host, port),
	}, nil
}

// GetOnlineFeatures 获取在线特征（实现 Client 接口）。
func (c *GrpcClient) GetOnlineFeatures(ctx context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error) {
	if len(req.Features) == 0 {
		return nil, fmt.Errorf("feast: features are required")
	}
	if len(req.EntityRows) == 0 {
		return nil, fmt.Errorf("feast: entity rows are required")
	}

	project := req.Project
	if project == "" {
		project = c.Project
	}
	if project == "" {
		return nil, fmt.Errorf("feast: project is required")
	}

	// SDK 的 Row 类型是 map[string]*types.Value，用 SDK 辅助函数逐值转换
	entityRows := make([]feastsdk.Row, len(req.EntityRows))
	for i, row := range req.EntityRows {
		entityRow := make(feastsdk.Row, len(row))
		for k, v := range row {
			switch val := v.(type) {
			case string:
				entityRow[k] = feastsdk.StrVal(val)
			case int:
				entityRow[k] = feastsdk.Int64Val(int64(val))
			case int64:
				entityRow[k] = feastsdk.Int64Val(val)
			case int32:
				entityRow[k] = feastsdk.Int64Val(int64(val))
			case float64:
				entityRow[k] = feastsdk.DoubleVal(val)
			case float32:
				entityRow[k] = feastsdk.FloatVal(val)
			case bool:
				entityRow[k] = feastsdk.BoolVal(val)
			case []byte:
				entityRow[k] = feastsdk.BytesVal(val)
			default:
				entityRow[k] = feastsdk.StrVal(fmt.Sprintf("%v", val))
			}
		}
		entityRows[i] = entityRow
	}

	sdkResp, err := c.client.GetOnlineFeatures(ctx, &feastsdk.OnlineFeaturesRequest{
		Features: req.Features,
		Entities: entityRows,
		Project:  project,
	})
	if err != nil {
		return nil, fmt.Errorf("feast: get online features: %w", err)
	}

	rows := sdkResp.Rows()
	if len(rows) != len(req.EntityRows) {
		return nil, fmt.Errorf("feast: response row count mismatch: expected %d, got %d",
			len(req.EntityRows), len(rows))
	}

	vectors := make([]FeatureVector, len(rows))
	for i, row := range rows {
		values := make(map[string]any, len(req.Features))
		for _, name := range req.Features {
			if val, exists := row[name]; exists {
				if converted := fromSDKValue(val); converted != nil {
					values[name] = converted
				}
			}
		}
		vectors[i] = FeatureVector{
			Values:    values,
			EntityRow: req.EntityRows[i],
		}
	}

	return &GetOnlineFeaturesResponse{FeatureVectors: vectors}, nil
}

// Close 关闭客户端连接（实现 Client 接口）。
// 官方 SDK 的连接由 gRPC 库管理，这里只释放引用。
func (c *GrpcClient) Close() error {
	c.client = nil
	return nil
}

// fromSDKValue 展开 protobuf oneof，把 SDK 值转成领域模型用的基本类型。
// 数值统一转 float64，列表保留为对应的切片类型。
func fromSDKValue(val *typespb.Value) any {
	if val == nil {
		return nil
	}
	switch v := val.GetVal().(type) {
	case *typespb.Value_StringVal:
		return v.StringVal
	case *typespb.Value_BytesVal:
		return string(v.BytesVal)
	case *typespb.Value_BoolVal:
		return v.BoolVal
	case *typespb.Value_Int32Val:
		return float64(v.Int32Val)
	case *typespb.Value_Int64Val:
		return float64(v.Int64Val)
	case *typespb.Value_FloatVal:
		return float64(v.FloatVal)
	case *typespb.Value_DoubleVal:
		return v.DoubleVal
	case *typespb.Value_StringListVal:
		return v.StringListVal.GetVal()
	default:
		return nil
	}
}

// 确保 GrpcClient 实现了 Client 接口
var _ Client = (*GrpcClient)(nil)
