package pricing

import "testing"

func TestResolveDeliveryFee(t *testing.T) {
	tests := []struct {
		name string
		area string
		want int
	}{
		{"free zone barangay", "Brgy. 3", 0},
		{"free zone lowercase", "brgy. 7", 0},
		{"free zone inside longer line", "123 Rizal St, Brgy. 5, Calamba City", 0},
		{"poblacion", "Poblacion", 0},
		{"far barangay", "Burol", 65},
		{"far barangay mixed case", "CANLUBANG", 65},
		{"far barangay mayapa", "Mayapa", 65},
		{"far barangay bagong kalsada", "Bagong Kalsada", 65},
		{"near barangay", "Halang", 50},
		{"near barangay real", "Real", 50},
		{"near barangay bucal", "Bucal", 50},
		{"near barangay parian", "Parian", 50},
		{"named barangay inside full address", "Blk 4 Lot 2, Burol, Calamba City", 65},
		{"unknown barangay", "Makiling", 30},
		{"empty area", "", 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveDeliveryFee(tt.area); got != tt.want {
				t.Errorf("ResolveDeliveryFee(%q) = %d, want %d", tt.area, got, tt.want)
			}
		})
	}
}

func TestResolveDeliveryFeeFreeZoneBeatsTable(t *testing.T) {
	// An address mentioning both a free barangay and a paid one must
	// resolve to free, since the free list is consulted first.
	if got := ResolveDeliveryFee("Brgy. 1 near Burol"); got != 0 {
		t.Errorf("ResolveDeliveryFee = %d, want 0", got)
	}
}
