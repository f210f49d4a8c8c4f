package domain

// Plan is an entry of the subscription catalogue shown on the paywall.
type Plan struct {
	ID       PlanType `json:"id"`
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Duration string   `json:"duration"`
	Discount string   `json:"discount,omitempty"`
	Features []string `json:"features"`
	Popular  bool     `json:"popular"` // Show "Most Popular" badge
}

// PlanCatalogue is read-only reference data; prices come from configuration.
type PlanCatalogue struct {
	plans []Plan
}

// NewPlanCatalogue builds the monthly and yearly plans at the given prices.
func NewPlanCatalogue(monthlyPrice, yearlyPrice float64) PlanCatalogue {
	return PlanCatalogue{plans: []Plan{
		{
			ID:       PlanMonthly,
			Name:     "Monthly Plan",
			Price:    monthlyPrice,
			Duration: "1 month",
			Features: []string{
				"Access to all destinations and places",
				"Detailed cultural information",
				"Food recommendations",
				"Hotel suggestions",
				"Cost breakdowns",
				"Booking assistance",
			},
		},
		{
			ID:       PlanYearly,
			Name:     "Yearly Plan",
			Price:    yearlyPrice,
			Duration: "12 months",
			Discount: "17% savings",
			Features: []string{
				"Everything in Monthly Plan",
				"Priority customer support",
				"Exclusive deals and offers",
				"Early access to new destinations",
				"Personalized travel recommendations",
			},
			Popular: true,
		},
	}}
}

// All returns a copy of every plan.
func (c PlanCatalogue) All() []Plan {
	out := make([]Plan, len(c.plans))
	copy(out, c.plans)
	return out
}

// Get returns the plan with the given id.
func (c PlanCatalogue) Get(id PlanType) (Plan, bool) {
	for _, p := range c.plans {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}
