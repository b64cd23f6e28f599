package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestAddressDecodesBothShapes(t *testing.T) {
	type doc struct {
		Address Address `bson:"address"`
	}

	t.Run("legacy flat string", func(t *testing.T) {
		raw, err := bson.Marshal(bson.M{"address": "45 Mabini St, Brgy. 3, Calamba City"})
		if err != nil {
			t.Fatal(err)
		}
		var d doc
		if err := bson.Unmarshal(raw, &d); err != nil {
			t.Fatalf("Unmarshal: %v", err)
		}
		if d.Address.Legacy != "45 Mabini St, Brgy. 3, Calamba City" {
			t.Errorf("Legacy = %q", d.Address.Legacy)
		}
		if d.Address.Street != "" || d.Address.Barangay != "" {
			t.Errorf("structured fields should stay empty, got %+v", d.Address)
		}
	})

	t.Run("structured document", func(t *testing.T) {
		raw, err := bson.Marshal(bson.M{"address": bson.M{
			"street":   "45 Mabini St",
			"blockLot": "4 Lot 2",
			"barangay": "Halang",
			"landmark": "beside the bakery",
		}})
		if err != nil {
			t.Fatal(err)
		}
		var d doc
		if err := bson.Unmarshal(raw, &d); err != nil {
			t.Fatalf("Unmarshal: %v", err)
		}
		if d.Address.Street != "45 Mabini St" || d.Address.Barangay != "Halang" {
			t.Errorf("structured decode = %+v", d.Address)
		}
		if d.Address.Legacy != "" {
			t.Errorf("Legacy should stay empty, got %q", d.Address.Legacy)
		}
	})

	t.Run("null address", func(t *testing.T) {
		raw, err := bson.Marshal(bson.M{"address": nil})
		if err != nil {
			t.Fatal(err)
		}
		var d doc
		if err := bson.Unmarshal(raw, &d); err != nil {
			t.Fatalf("Unmarshal: %v", err)
		}
		if !d.Address.IsZero() {
			t.Errorf("null address should decode to zero value, got %+v", d.Address)
		}
	})
}

func TestAddressComplete(t *testing.T) {
	tests := []struct {
		name string
		addr Address
		want bool
	}{
		{"zero value", Address{}, false},
		{"legacy string", Address{Legacy: "45 Mabini St, Brgy. 3"}, true},
		{"legacy whitespace only", Address{Legacy: "   "}, false},
		{"street and barangay", Address{Street: "45 Mabini St", Barangay: "Halang"}, true},
		{"street only", Address{Street: "45 Mabini St"}, false},
		{"barangay only", Address{Barangay: "Halang"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.addr.Complete(); got != tt.want {
				t.Errorf("Complete() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAddressArea(t *testing.T) {
	legacy := Address{Legacy: "45 Mabini St, Burol, Calamba City"}
	if got := legacy.Area(); got != legacy.Legacy {
		t.Errorf("legacy Area() = %q", got)
	}
	structured := Address{Street: "45 Mabini St", Barangay: "Halang"}
	if got := structured.Area(); got != "Halang" {
		t.Errorf("structured Area() = %q", got)
	}
}

func TestAddressFull(t *testing.T) {
	tests := []struct {
		name string
		addr Address
		want string
	}{
		{
			"legacy passes through untouched",
			Address{Legacy: "45 Mabini St, Brgy. 3"},
			"45 Mabini St, Brgy. 3",
		},
		{
			"all structured parts",
			Address{Street: "45 Mabini St", BlockLot: "4 Lot 2", Barangay: "Halang", Landmark: "beside the bakery"},
			"45 Mabini St, Block 4 Lot 2, Halang, Calamba City",
		},
		{
			"no block lot",
			Address{Street: "45 Mabini St", Barangay: "Halang"},
			"45 Mabini St, Halang, Calamba City",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.addr.Full(); got != tt.want {
				t.Errorf("Full() = %q, want %q", got, tt.want)
			}
		})
	}
}
