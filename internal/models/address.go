package models

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Address is the pickup/delivery address attached to a profile. Older
// profile documents store it as a single flat string; newer ones store
// the structured form. Both shapes decode into this type: the flat
// string lands in Legacy and the structured fields stay empty.
type Address struct {
	Street   string `bson:"street,omitempty" json:"street,omitempty"`
	BlockLot string `bson:"blockLot,omitempty" json:"blockLot,omitempty"`
	Barangay string `bson:"barangay,omitempty" json:"barangay,omitempty"`
	Landmark string `bson:"landmark,omitempty" json:"landmark,omitempty"`

	// Legacy holds the flat-string shape found in old documents. It is
	// never written back; saving a profile always persists the
	// structured form.
	Legacy string `bson:"-" json:"-"`
}

type structuredAddress struct {
	Street   string `bson:"street,omitempty"`
	BlockLot string `bson:"blockLot,omitempty"`
	Barangay string `bson:"barangay,omitempty"`
	Landmark string `bson:"landmark,omitempty"`
}

// UnmarshalBSONValue accepts either the flat-string or the structured
// document shape.
func (a *Address) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.String:
		a.Legacy = rv.StringValue()
		return nil
	case bsontype.EmbeddedDocument:
		var s structuredAddress
		if err := rv.Unmarshal(&s); err != nil {
			return fmt.Errorf("address: decode structured form: %w", err)
		}
		a.Street, a.BlockLot, a.Barangay, a.Landmark = s.Street, s.BlockLot, s.Barangay, s.Landmark
		return nil
	case bsontype.Null, bsontype.Undefined:
		return nil
	default:
		return fmt.Errorf("address: unsupported BSON type %s", t)
	}
}

// IsZero reports whether no address information is present at all.
func (a Address) IsZero() bool {
	return a.Legacy == "" && a.Street == "" && a.BlockLot == "" && a.Barangay == "" && a.Landmark == ""
}

// Complete reports whether the address is usable for booking: either a
// legacy flat string or a structured form with at least street and
// barangay filled in.
func (a Address) Complete() bool {
	if strings.TrimSpace(a.Legacy) != "" {
		return true
	}
	return strings.TrimSpace(a.Street) != "" && strings.TrimSpace(a.Barangay) != ""
}

// Area returns the text the delivery-fee resolver should match against.
// For legacy addresses that is the whole string; substring matching in
// the fee table makes that work without parsing.
func (a Address) Area() string {
	if a.Barangay != "" {
		return a.Barangay
	}
	return a.Legacy
}

// Full renders the single-line address stored on each order.
func (a Address) Full() string {
	if a.Legacy != "" {
		return a.Legacy
	}
	var b strings.Builder
	if a.Street != "" {
		b.WriteString(a.Street)
		b.WriteString(", ")
	}
	if a.BlockLot != "" {
		fmt.Fprintf(&b, "Block %s, ", a.BlockLot)
	}
	if a.Barangay != "" {
		b.WriteString(a.Barangay)
		b.WriteString(", ")
	}
	b.WriteString("Calamba City")
	return b.String()
}
