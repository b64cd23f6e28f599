// Package pricing holds the deterministic pricing rules for bookings:
// the per-barangay delivery fee table, the service catalog, and the
// pickup scheduling window. Everything here is pure and table-driven.
package pricing

import "strings"

// Delivery fee tiers in pesos.
const (
	FreeDeliveryFee    = 0
	DefaultDeliveryFee = 30
	farBarangayFee     = 65
	nearBarangayFee    = 50
)

// freeBarangays get free pickup and delivery. Matching is
// case-insensitive substring, so "Brgy. 3" and "brgy. 3, Calamba City"
// both qualify.
var freeBarangays = []string{
	"Brgy. 1",
	"Brgy. 2",
	"Brgy. 3",
	"Brgy. 4",
	"Brgy. 5",
	"Brgy. 6",
	"Brgy. 7",
	"Poblacion",
}

type feeEntry struct {
	name string
	fee  int
}

// feeTable maps named barangays outside the free zone to their fee.
// Entries are tested in order and the first substring hit wins; overlapping
// names resolve to whichever entry comes first.
var feeTable = []feeEntry{
	{"Burol", farBarangayFee},
	{"Canlubang", farBarangayFee},
	{"Mayapa", farBarangayFee},
	{"Bagong Kalsada", farBarangayFee},
	{"Halang", nearBarangayFee},
	{"Real", nearBarangayFee},
	{"Bucal", nearBarangayFee},
	{"Parian", nearBarangayFee},
}

// ResolveDeliveryFee maps a barangay (or a whole flat address line) to
// its delivery fee. Unknown areas fall back to the default flat fee.
func ResolveDeliveryFee(area string) int {
	folded := strings.ToLower(area)

	for _, name := range freeBarangays {
		if strings.Contains(folded, strings.ToLower(name)) {
			return FreeDeliveryFee
		}
	}
	for _, entry := range feeTable {
		if strings.Contains(folded, strings.ToLower(entry.name)) {
			return entry.fee
		}
	}
	return DefaultDeliveryFee
}
