package pricing

// Service is one bookable laundry service.
type Service struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	UnitPrice   int    `json:"unitPrice"` // pesos per load
}

// services is the catalog shown to customers plus the walk-in types
// used on the admin dashboard.
var services = []Service{
	{
		ID:          "washFold",
		Name:        "Wash & Fold",
		Description: "The perfect service for your everyday laundry needs. Detergent and fabric conditioner included, up to 7 kilos per load.",
		UnitPrice:   189,
	},
	{
		ID:          "wash-dry-fold",
		Name:        "Wash, Dry & Fold",
		Description: "Full cycle with machine drying.",
		UnitPrice:   189,
	},
	{
		ID:          "dry-clean",
		Name:        "Dry Cleaning",
		Description: "For delicate garments and formal wear.",
		UnitPrice:   250,
	},
	{
		ID:          "iron-only",
		Name:        "Iron Only",
		Description: "Pressing for already-clean clothes.",
		UnitPrice:   120,
	},
	{
		ID:          "special-care",
		Name:        "Special Care",
		Description: "Hand-wash items, beddings and bulky loads.",
		UnitPrice:   300,
	},
}

// Catalog returns the full service list.
func Catalog() []Service {
	out := make([]Service, len(services))
	copy(out, services)
	return out
}

// LookupService finds a catalog entry by ID.
func LookupService(id string) (Service, bool) {
	for _, s := range services {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}

// RevenuePerKilo is the flat rate the admin dashboard uses to estimate
// revenue. Note this is deliberately not derived from per-order
// totalPrice; the two figures diverge and that divergence is kept.
const RevenuePerKilo = 100
