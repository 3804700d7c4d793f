package conv

import "testing"

func TestToInt(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
		ok   bool
	}{
		{name: "int", in: 3, want: 3, ok: true},
		{name: "int64", in: int64(4), want: 4, ok: true},
		{name: "float64", in: 5.0, want: 5, ok: true},
		{name: "string", in: "6", want: 0, ok: false},
		{name: "nil", in: nil, want: 0, ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToInt(tt.in)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ToInt(%v) = %d, %v, want %d, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestConfigGetInt(t *testing.T) {
	m := map[string]any{"n": float64(6), "s": "x"}
	if got := ConfigGetInt(m, "n", 1); got != 6 {
		t.Errorf("ConfigGetInt(n) = %d, want 6", got)
	}
	if got := ConfigGetInt(m, "s", 1); got != 1 {
		t.Errorf("ConfigGetInt(s) = %d, want default 1", got)
	}
	if got := ConfigGetInt(nil, "n", 2); got != 2 {
		t.Errorf("ConfigGetInt(nil) = %d, want default 2", got)
	}
}

func TestConfigGet(t *testing.T) {
	m := map[string]any{"name": "lending", "n": 6}
	if got := ConfigGet(m, "name", "def"); got != "lending" {
		t.Errorf("ConfigGet(name) = %s, want lending", got)
	}
	if got := ConfigGet(m, "n", "def"); got != "def" {
		t.Errorf("type mismatch must return default, got %s", got)
	}
}

func TestSliceAnyToString(t *testing.T) {
	got := SliceAnyToString([]any{"a", 1, "b"})
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("SliceAnyToString = %v, want [a b]", got)
	}
	if SliceAnyToString("not a slice") != nil {
		t.Errorf("non-slice input must return nil")
	}
}
