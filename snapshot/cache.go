// Package snapshot 提供目录快照的读穿缓存与数据集兜底推荐路径。
//
// 快照是与结构化存储相互独立的扁平反规范化数据源（JSON 数组文件），
// 允许相对滞后：兜底路径只追求"有结果"，不追求新鲜度。
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/rushteam/librec/core"
)

// entry 是快照文件中的一条记录。
type entry struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	Category   string `json:"category"`
	Department string `json:"department"`
	Copies     int    `json:"copies"`
}

// Cache 是目录快照的进程级读穿缓存。
//
// 生命周期契约：
//   - 未命中时从磁盘加载（populate-on-miss）
//   - 每次读取校验源文件 mtime，源变更自动失效（invalidate-on-source-change）
//   - Invalidate 手动失效；Watch 可选，用 fsnotify 把失效做成事件驱动
//
// 显式对象按引用传给需要它的协作方，不做包级全局变量。
type Cache struct {
	path   string
	logger zerolog.Logger

	mu      sync.RWMutex
	items   []*core.Item
	modTime time.Time
	loaded  bool
}

func NewCache(path string, logger zerolog.Logger) *Cache {
	return &Cache{
		path:   path,
		logger: logger.With().Str("component", "snapshot").Logger(),
	}
}

// LoadCatalogSnapshot 实现 core.SnapshotSource。
// 返回的 Item 跨调用共享，调用方修改前必须 Clone。
func (c *Cache) LoadCatalogSnapshot(ctx context.Context) ([]*core.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stat, err := os.Stat(c.path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: stat %s: %w", c.path, err)
	}

	c.mu.RLock()
	if c.loaded && stat.ModTime().Equal(c.modTime) {
		items := c.items
		c.mu.RUnlock()
		return items, nil
	}
	c.mu.RUnlock()

	return c.reload(stat.ModTime())
}

// Invalidate 手动失效缓存，下次读取时重新加载。
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.loaded = false
	c.items = nil
	c.mu.Unlock()
}

// Watch 监听快照文件变更，事件到达即失效缓存。阻塞直到 ctx 取消。
// mtime 校验本身已能兜住变更，Watch 只是把失效从"下次读时发现"
// 提前到"写入时立刻"。
func (c *Cache) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("snapshot: watcher: %w", err)
	}
	defer watcher.Close()

	// 监听目录而非文件：原子替换（rename 覆盖）会让文件级 watch 失效
	if err := watcher.Add(filepath.Dir(c.path)); err != nil {
		return fmt.Errorf("snapshot: watch %s: %w", c.path, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Name != c.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				c.logger.Debug().Str("op", ev.Op.String()).Msg("snapshot changed, cache invalidated")
				c.Invalidate()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.logger.Warn().Err(err).Msg("snapshot watcher error")
		}
	}
}

func (c *Cache) reload(modTime time.Time) ([]*core.Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 双检：拿写锁期间可能已有人加载过同一版本
	if c.loaded && modTime.Equal(c.modTime) {
		return c.items, nil
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: read %s: %w", c.path, err)
	}

	var entries []entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("snapshot: parse %s: %w", c.path, err)
	}

	items := make([]*core.Item, 0, len(entries))
	for _, e := range entries {
		if e.ID == "" {
			continue
		}
		it := core.NewItem(e.ID)
		it.Title = e.Title
		it.Author = e.Author
		it.Category = e.Category
		it.Department = e.Department
		it.Copies = e.Copies
		items = append(items, it)
	}

	c.items = items
	c.modTime = modTime
	c.loaded = true

	c.logger.Debug().Int("entries", len(items)).Msg("snapshot loaded")
	return items, nil
}
