package snapshot

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rushteam/librec/core"
)

type staticSource struct {
	items []*core.Item
	err   error
}

func (s *staticSource) LoadCatalogSnapshot(context.Context) ([]*core.Item, error) {
	return s.items, s.err
}

func snapshotItem(id, title, author, department string, copies int) *core.Item {
	it := core.NewItem(id)
	it.Title = title
	it.Author = author
	it.Department = department
	it.Copies = copies
	return it
}

func TestBridge_LexicalScoring(t *testing.T) {
	rctx := core.NewRecommendContext("u1")
	rctx.Interests = []string{"Quantum", "Chemistry"}
	rctx.Department = "Physics"

	tests := []struct {
		name        string
		item        *core.Item
		wantScore   int
		wantCat     string
		wantReasons int
	}{
		{
			name:        "title match case-insensitive",
			item:        snapshotItem("b1", "quantum mechanics primer", "Bohr", "", 2),
			wantScore:   4, // 1 + 3
			wantCat:     "Quantum",
			wantReasons: 1,
		},
		{
			name:        "author match counts too",
			item:        snapshotItem("b2", "Lecture Notes", "The Quantum Society", "", 2),
			wantScore:   4,
			wantCat:     "Quantum",
			wantReasons: 1,
		},
		{
			name:        "both interests stack",
			item:        snapshotItem("b3", "Quantum Chemistry", "Pauling", "", 2),
			wantScore:   7, // 1 + 3 + 3
			wantCat:     "Quantum",
			wantReasons: 2,
		},
		{
			name:        "department equal fold",
			item:        snapshotItem("b4", "Unrelated", "Nobody", "PHYSICS", 2),
			wantScore:   3, // 1 + 2
			wantCat:     "",
			wantReasons: 1,
		},
		{
			name:        "deep stock bonus",
			item:        snapshotItem("b5", "Unrelated", "Nobody", "", 5),
			wantScore:   2, // 1 + 1
			wantCat:     "",
			wantReasons: 1,
		},
		{
			name:        "no signal keeps base score",
			item:        snapshotItem("b6", "Unrelated", "Nobody", "", 2),
			wantScore:   1,
			wantCat:     "",
			wantReasons: 0,
		},
	}

	b := NewBridge(nil, zerolog.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b.source = &staticSource{items: []*core.Item{tt.item}}
			out := b.Recommend(context.Background(), rctx, 6)
			if len(out) != 1 {
				t.Fatalf("len(out) = %d, want 1", len(out))
			}
			got := out[0]
			if got.Score != tt.wantScore {
				t.Errorf("Score = %d, want %d", got.Score, tt.wantScore)
			}
			if got.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", got.Category, tt.wantCat)
			}
			if len(got.Reasons) != tt.wantReasons {
				t.Errorf("Reasons = %v, want %d entries", got.Reasons, tt.wantReasons)
			}
		})
	}
}

func TestBridge_ResultShape(t *testing.T) {
	rctx := core.NewRecommendContext("u1")

	src := &staticSource{items: []*core.Item{
		snapshotItem("b1", "Zero Stock", "Nobody", "", 0),
	}}
	b := NewBridge(src, zerolog.Nop())
	out := b.Recommend(context.Background(), rctx, 6)
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1", len(out))
	}
	if out[0].ID != "catalog:b1" {
		t.Errorf("ID = %q, want catalog: prefix", out[0].ID)
	}
	if out[0].Copies != 1 {
		t.Errorf("Copies = %d, want floor of 1", out[0].Copies)
	}
	// 快照条目不能被打分污染
	if src.items[0].ID != "b1" || src.items[0].Score != 0 {
		t.Errorf("source entry mutated: %+v", src.items[0])
	}
}

func TestBridge_DeterministicOrdering(t *testing.T) {
	rctx := core.NewRecommendContext("u1")
	rctx.Interests = []string{"Maps"}

	src := &staticSource{items: []*core.Item{
		snapshotItem("b1", "Plain Title B", "Nobody", "", 3),
		snapshotItem("b2", "Plain Title A", "Nobody", "", 3),
		snapshotItem("b3", "Old Maps", "Nobody", "", 1),
		snapshotItem("b4", "Plain Title C", "Nobody", "", 7),
	}}
	b := NewBridge(src, zerolog.Nop())
	out := b.Recommend(context.Background(), rctx, 3)

	// b3 词面命中 4 分居首，b4 副本加成 2 分次之；
	// 同分同副本按标题升序，limit 截断
	wantOrder := []string{"catalog:b3", "catalog:b4", "catalog:b2"}
	if len(out) != len(wantOrder) {
		t.Fatalf("len(out) = %d, want %d", len(out), len(wantOrder))
	}
	for i, id := range wantOrder {
		if out[i].ID != id {
			t.Errorf("out[%d] = %s, want %s", i, out[i].ID, id)
		}
	}
}

func TestBridge_SourceFailureDegrades(t *testing.T) {
	src := &staticSource{err: core.NewDomainError(core.ModuleSnapshot, core.ErrorCodeUnavailable, "snapshot: gone")}
	b := NewBridge(src, zerolog.Nop())
	out := b.Recommend(context.Background(), core.NewRecommendContext("u1"), 6)
	if out != nil {
		t.Errorf("source failure must degrade to empty, got %v", out)
	}
}
