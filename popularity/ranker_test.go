package popularity

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/rushteam/librec/core"
	"github.com/rushteam/librec/store"
)

func addBorrows(s *store.MemoryStorage, itemID string, n int, at time.Time) {
	for i := 0; i < n; i++ {
		s.AddBorrowing(core.BorrowingRecord{
			UserID:     "u",
			ItemID:     itemID,
			Status:     core.StatusReturned,
			BorrowedAt: at.Add(time.Duration(i) * time.Minute),
		})
	}
}

func TestRanker_CountDescending(t *testing.T) {
	s := store.NewMemoryStorage()
	now := time.Now()
	addBorrows(s, "i1", 2, now.Add(-48*time.Hour))
	addBorrows(s, "i2", 5, now.Add(-24*time.Hour))
	addBorrows(s, "i3", 3, now.Add(-12*time.Hour))

	r := NewRanker(s, nil, zerolog.Nop())
	res, err := r.Rank(context.Background())
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}

	want := []string{"i2", "i3", "i1"}
	if len(res.IDs) != len(want) {
		t.Fatalf("IDs = %v, want %v", res.IDs, want)
	}
	for i := range want {
		if res.IDs[i] != want[i] {
			t.Errorf("IDs[%d] = %s, want %s", i, res.IDs[i], want[i])
		}
	}
	for _, id := range want {
		if !res.Top[id] {
			t.Errorf("expected %s in top set", id)
		}
	}
}

func TestRanker_WindowExcludesOldRecords(t *testing.T) {
	s := store.NewMemoryStorage()
	now := time.Now()
	addBorrows(s, "old", 10, now.Add(-120*24*time.Hour)) // 窗口外
	addBorrows(s, "new", 1, now.Add(-time.Hour))

	r := NewRanker(s, nil, zerolog.Nop())
	res, err := r.Rank(context.Background())
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}

	if len(res.IDs) != 1 || res.IDs[0] != "new" {
		t.Errorf("IDs = %v, want [new]", res.IDs)
	}
}

// 同次数的先后取决于采样顺序（最近优先），这里仅固定该约定。
func TestRanker_TieKeepsSampleOrder(t *testing.T) {
	s := store.NewMemoryStorage()
	now := time.Now()
	addBorrows(s, "early", 2, now.Add(-10*time.Hour))
	addBorrows(s, "late", 2, now.Add(-5*time.Hour))

	r := NewRanker(s, nil, zerolog.Nop())
	res, err := r.Rank(context.Background())
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}

	// 采样按借阅时间降序，late 先出现
	want := []string{"late", "early"}
	for i := range want {
		if res.IDs[i] != want[i] {
			t.Errorf("IDs[%d] = %s, want %s", i, res.IDs[i], want[i])
		}
	}
}

func TestRanker_TopNBound(t *testing.T) {
	s := store.NewMemoryStorage()
	now := time.Now()
	for i := 0; i < 25; i++ {
		addBorrows(s, "i"+string(rune('a'+i)), 25-i, now.Add(-time.Hour))
	}

	r := NewRanker(s, nil, zerolog.Nop())
	res, err := r.Rank(context.Background())
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}

	if len(res.IDs) != 25 {
		t.Fatalf("IDs = %d entries, want 25", len(res.IDs))
	}
	if len(res.Top) != 20 {
		t.Errorf("len(Top) = %d, want 20", len(res.Top))
	}
	if !res.Top[res.IDs[0]] || res.Top[res.IDs[24]] {
		t.Errorf("top set must cover the first 20 entries only")
	}
}

func TestRanker_KVFastPath(t *testing.T) {
	s := store.NewMemoryStorage()
	addBorrows(s, "storage-only", 3, time.Now().Add(-time.Hour))

	kv := store.NewMemoryKV()
	r := NewRanker(s, nil, zerolog.Nop()).WithKV(kv, "board:test")

	// 榜单为空：回落在线计算
	res, err := r.Rank(context.Background())
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if len(res.IDs) != 1 || res.IDs[0] != "storage-only" {
		t.Errorf("empty board must fall back to storage, got %v", res.IDs)
	}

	// 预计算榜单就绪：走快路径，不再看 Storage
	ctx := context.Background()
	if err := kv.ZAdd(ctx, "board:test", 2, "k1"); err != nil {
		t.Fatalf("ZAdd() error = %v", err)
	}
	if err := kv.ZAdd(ctx, "board:test", 1, "k2"); err != nil {
		t.Fatalf("ZAdd() error = %v", err)
	}

	res, err = r.Rank(ctx)
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	want := []string{"k1", "k2"}
	if len(res.IDs) != len(want) {
		t.Fatalf("IDs = %v, want %v", res.IDs, want)
	}
	for i := range want {
		if res.IDs[i] != want[i] {
			t.Errorf("IDs[%d] = %s, want %s", i, res.IDs[i], want[i])
		}
	}
}

func TestRanker_Refresh(t *testing.T) {
	s := store.NewMemoryStorage()
	now := time.Now()
	addBorrows(s, "i1", 3, now.Add(-2*time.Hour))
	addBorrows(s, "i2", 1, now.Add(-time.Hour))

	t.Run("requires kv", func(t *testing.T) {
		r := NewRanker(s, nil, zerolog.Nop())
		if err := r.Refresh(context.Background()); err == nil {
			t.Fatalf("Refresh() without kv must fail")
		}
	})

	t.Run("round trip", func(t *testing.T) {
		kv := store.NewMemoryKV()
		r := NewRanker(s, nil, zerolog.Nop()).WithKV(kv, "board:test")
		if err := r.Refresh(context.Background()); err != nil {
			t.Fatalf("Refresh() error = %v", err)
		}

		ids, err := kv.ZRange(context.Background(), "board:test", 0, -1)
		if err != nil {
			t.Fatalf("ZRange() error = %v", err)
		}
		want := []string{"i1", "i2"}
		if len(ids) != len(want) {
			t.Fatalf("board = %v, want %v", ids, want)
		}
		for i := range want {
			if ids[i] != want[i] {
				t.Errorf("board[%d] = %s, want %s", i, ids[i], want[i])
			}
		}
	})
}
