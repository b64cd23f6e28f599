package pricing

import "testing"

func TestLookupService(t *testing.T) {
	tests := []struct {
		id        string
		wantPrice int
		wantOK    bool
	}{
		{"washFold", 189, true},
		{"wash-dry-fold", 189, true},
		{"dry-clean", 250, true},
		{"iron-only", 120, true},
		{"special-care", 300, true},
		{"dryclean", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			svc, ok := LookupService(tt.id)
			if ok != tt.wantOK {
				t.Fatalf("LookupService(%q) ok = %v, want %v", tt.id, ok, tt.wantOK)
			}
			if svc.UnitPrice != tt.wantPrice {
				t.Errorf("LookupService(%q) price = %d, want %d", tt.id, svc.UnitPrice, tt.wantPrice)
			}
		})
	}
}

func TestCatalogIsACopy(t *testing.T) {
	first := Catalog()
	first[0].UnitPrice = 1
	if got := Catalog()[0].UnitPrice; got != 189 {
		t.Errorf("mutating a returned catalog leaked into the source table: price = %d", got)
	}
}
