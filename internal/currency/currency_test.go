package currency

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{input: "USD", want: "USD", ok: true},
		{input: "usd", want: "USD", ok: true},
		{input: " ves ", want: "VES", ok: true},
		{input: "XXX", ok: false},
		{input: "", ok: false},
	}

	table := NewTable()
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := table.Resolve(tt.input)
			if ok != tt.ok {
				t.Fatalf("Resolve(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	f, ok := NewTable().Lookup("eur")
	if !ok {
		t.Fatal("expected EUR to be supported")
	}
	if f.Symbol != "€" || f.Name != "Euro" {
		t.Errorf("unexpected fiat record: %+v", f)
	}
}
