package recall

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rushteam/librec/core"
	"github.com/rushteam/librec/store"
)

type fakeTier struct {
	name   string
	items  []*core.Item
	err    error
	called bool
}

func (f *fakeTier) Name() string { return f.name }

func (f *fakeTier) Recall(context.Context, *core.RecommendContext, int, map[string]bool) ([]*core.Item, error) {
	f.called = true
	return f.items, f.err
}

func makeItems(ids ...string) []*core.Item {
	items := make([]*core.Item, 0, len(ids))
	for _, id := range ids {
		items = append(items, core.NewItem(id))
	}
	return items
}

func TestCascade_LaterTiersOnlyWhenShort(t *testing.T) {
	tests := []struct {
		name       string
		first      []*core.Item
		limit      int
		wantSecond bool
	}{
		{name: "first tier fills limit", first: makeItems("a", "b", "c"), limit: 3, wantSecond: false},
		{name: "first tier short", first: makeItems("a"), limit: 3, wantSecond: true},
		{name: "first tier empty", first: nil, limit: 3, wantSecond: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			second := &fakeTier{name: "t2", items: makeItems("x", "y")}
			n := &Cascade{
				Tiers:  []Source{&fakeTier{name: "t1", items: tt.first}, second},
				Limit:  tt.limit,
				Logger: zerolog.Nop(),
			}
			if _, err := n.Process(context.Background(), core.NewRecommendContext("u1"), nil); err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			if second.called != tt.wantSecond {
				t.Errorf("second tier called = %v, want %v", second.called, tt.wantSecond)
			}
		})
	}
}

func TestCascade_FirstWinsMerge(t *testing.T) {
	t1 := &fakeTier{name: "t1", items: makeItems("a")}
	dup := core.NewItem("a")
	dup.Title = "from second tier"
	t2 := &fakeTier{name: "t2", items: []*core.Item{dup, core.NewItem("b")}}

	n := &Cascade{Tiers: []Source{t1, t2}, Limit: 3, Logger: zerolog.Nop()}
	out, err := n.Process(context.Background(), core.NewRecommendContext("u1"), nil)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
	if out[0].ID != "a" || out[0].Title != "" {
		t.Errorf("duplicate must keep the first tier's entry, got %q", out[0].Title)
	}
	if out[1].ID != "b" {
		t.Errorf("out[1] = %s, want b", out[1].ID)
	}
}

func TestCascade_ExclusionRechecked(t *testing.T) {
	rctx := core.NewRecommendContext("u1")
	rctx.Exclude("bad")

	// 檔位不守规矩夹带了被排除 ID，合并时必须被拦下
	n := &Cascade{
		Tiers:  []Source{&fakeTier{name: "t1", items: makeItems("bad", "ok")}},
		Limit:  3,
		Logger: zerolog.Nop(),
	}
	out, err := n.Process(context.Background(), rctx, nil)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 1 || out[0].ID != "ok" {
		t.Errorf("out = %v, want [ok]", out)
	}
}

func TestCascade_TierFailureDegrades(t *testing.T) {
	t1 := &fakeTier{name: "t1", err: core.NewDomainError(core.ModuleStore, core.ErrorCodeUnavailable, "store: down")}
	t2 := &fakeTier{name: "t2", items: makeItems("a")}

	n := &Cascade{Tiers: []Source{t1, t2}, Limit: 3, Logger: zerolog.Nop()}
	out, err := n.Process(context.Background(), core.NewRecommendContext("u1"), nil)
	if err != nil {
		t.Fatalf("tier failure must degrade, got %v", err)
	}
	if len(out) != 1 || out[0].ID != "a" {
		t.Errorf("out = %v, want [a]", out)
	}
}

func TestCascade_CandidateBound(t *testing.T) {
	many := make([]*core.Item, 0, 20)
	for i := 0; i < 20; i++ {
		many = append(many, core.NewItem(string(rune('a'+i))))
	}
	n := &Cascade{
		Tiers:  []Source{&fakeTier{name: "t1", items: many}},
		Limit:  2,
		Logger: zerolog.Nop(),
	}
	out, err := n.Process(context.Background(), core.NewRecommendContext("u1"), nil)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 6 {
		t.Errorf("len(out) = %d, want multiplier*limit = 6", len(out))
	}
}

func TestPrimary_NoSignalNoQuery(t *testing.T) {
	s := store.NewMemoryStorage()
	s.AddItem(&core.Item{ID: "i1", Category: "History", Copies: 1})

	p := &Primary{Storage: s}
	rctx := core.NewRecommendContext("u1")

	out, err := p.Recall(context.Background(), rctx, 6, map[string]bool{})
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	if len(out) != 0 {
		t.Errorf("no personalization signal must yield no candidates, got %d", len(out))
	}
}

func TestPrimary_CategoryUnionAndDepartment(t *testing.T) {
	s := store.NewMemoryStorage()
	s.AddItem(&core.Item{ID: "i1", Category: "History", Copies: 1})
	s.AddItem(&core.Item{ID: "i2", Category: "Physics", Copies: 1})
	s.AddItem(&core.Item{ID: "i3", Category: "Botany", Department: "Arts", Copies: 1})
	s.AddItem(&core.Item{ID: "i4", Category: "Botany", Copies: 1})
	s.AddItem(&core.Item{ID: "i5", Category: "History", Copies: 0})

	rctx := core.NewRecommendContext("u1")
	rctx.Interests = []string{"History"}
	rctx.TopCategories = []string{"Physics", "History"}
	rctx.Department = "Arts"

	p := &Primary{Storage: s}
	out, err := p.Recall(context.Background(), rctx, 6, map[string]bool{})
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}

	got := make(map[string]bool, len(out))
	for _, it := range out {
		got[it.ID] = true
	}
	for _, id := range []string{"i1", "i2", "i3"} {
		if !got[id] {
			t.Errorf("expected %s in primary candidates", id)
		}
	}
	if got["i4"] {
		t.Errorf("i4 matches neither category nor department")
	}
	if got["i5"] {
		t.Errorf("i5 has no available copies")
	}
}

func TestBroad_SetsFallback(t *testing.T) {
	s := store.NewMemoryStorage()
	s.AddItem(&core.Item{ID: "i1", Category: "Botany", Copies: 1})

	rctx := core.NewRecommendContext("u1")
	b := &Broad{Storage: s}
	out, err := b.Recall(context.Background(), rctx, 6, map[string]bool{})
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1", len(out))
	}
	if !rctx.FallbackUsed {
		t.Errorf("broad tier must mark the result as fallback")
	}
}

func TestPopularTopUp(t *testing.T) {
	s := store.NewMemoryStorage()
	s.AddItem(&core.Item{ID: "p1", Copies: 1})
	s.AddItem(&core.Item{ID: "p2", Copies: 1})
	s.AddItem(&core.Item{ID: "p3", Copies: 1})

	rctx := core.NewRecommendContext("u1")
	rctx.PopularIDs = []string{"p1", "p2", "p3", "p4"}
	rctx.Exclude("p2")

	top := &PopularTopUp{Storage: s}
	out, err := top.Recall(context.Background(), rctx, 6, map[string]bool{"p1": true})
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}

	// p1 已入选、p2 被排除、p4 不在库中：只剩 p3
	if len(out) != 1 || out[0].ID != "p3" {
		t.Errorf("out = %v, want [p3]", out)
	}
	if !rctx.FallbackUsed {
		t.Errorf("popular top-up must mark the result as fallback")
	}
}

func TestPopularTopUp_LookupBound(t *testing.T) {
	s := store.NewMemoryStorage()
	rctx := core.NewRecommendContext("u1")
	for i := 0; i < 30; i++ {
		id := "p" + string(rune('a'+i))
		rctx.PopularIDs = append(rctx.PopularIDs, id)
		s.AddItem(&core.Item{ID: id, Copies: 1})
	}

	top := &PopularTopUp{Storage: s}
	out, err := top.Recall(context.Background(), rctx, 6, map[string]bool{})
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	if len(out) != 12 {
		t.Errorf("len(out) = %d, want 2*limit = 12", len(out))
	}
}
