package core

import "context"

// KeyValueStore 是 KV 存储的领域接口，用于热门榜缓存等轻量读写。
//
// 与 Storage 一样定义在领域层，由基础设施层（store.MemoryKV / store.RedisKV）
// 实现。有序集合（ZAdd/ZRange）用于预计算的热门榜：离线任务 ZAdd 写入
// 借阅次数，在线路径 ZRange 读 TopN。
type KeyValueStore interface {
	// Name 返回存储后端名称（用于日志/监控）
	Name() string

	// Get 读取单个 key 的值；不存在返回 ErrStoreNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Set 写入单个 key-value，ttl 单位秒（可选）
	Set(ctx context.Context, key string, value []byte, ttl ...int) error

	// Delete 删除单个 key
	Delete(ctx context.Context, key string) error

	// ZAdd 向有序集合添加成员
	ZAdd(ctx context.Context, key string, score float64, member string) error

	// ZRange 按分数降序获取有序集合成员（用于 TopN 读取）
	ZRange(ctx context.Context, key string, start, stop int64) ([]string, error)

	// ZScore 获取成员的分数；不存在返回 ErrStoreNotFound
	ZScore(ctx context.Context, key string, member string) (float64, error)

	// Close 关闭连接/释放资源
	Close() error
}
