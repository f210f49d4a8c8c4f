// Package pricing computes booking totals from a place's nightly rate, the
// trip shape and the traveller's subscription tier.
//
// All arithmetic is done on integer percentages so a quote is exact up to the
// single final rounding step (half up to the nearest whole currency unit).
package pricing

import (
	"fmt"
	"math"
	"time"

	"github.com/yatra/backend/internal/domain"
)

// Table holds every tunable pricing constant. Percentages are whole numbers:
// 150 means x1.5, 85 means "pay 85%".
type Table struct {
	PackageMultipliers map[domain.PackageType]int64 `yaml:"packageMultipliers"`
	ChildSharePercent  int64                        `yaml:"childSharePercent"`
	TierPercents       map[string]int64             `yaml:"tierPercents"`
	DefaultTierPercent int64                        `yaml:"defaultTierPercent"`
	DefaultNightlyRate int64                        `yaml:"defaultNightlyRate"`
}

// DefaultTable returns the standard pricing constants.
func DefaultTable() Table {
	return Table{
		PackageMultipliers: map[domain.PackageType]int64{
			domain.PackageBudget:   100,
			domain.PackageMidRange: 150,
			domain.PackageLuxury:   250,
		},
		ChildSharePercent: 50,
		TierPercents: map[string]int64{
			"premium": 85,
			"elite":   75,
		},
		DefaultTierPercent: 95,
		DefaultNightlyRate: domain.DefaultNightlyRate,
	}
}

// Validate rejects tables that would produce nonsense prices.
func (t Table) Validate() error {
	for _, pkg := range []domain.PackageType{domain.PackageBudget, domain.PackageMidRange, domain.PackageLuxury} {
		m, ok := t.PackageMultipliers[pkg]
		if !ok {
			return fmt.Errorf("pricing: missing multiplier for package %q", pkg)
		}
		if m <= 0 {
			return fmt.Errorf("pricing: multiplier for package %q must be positive", pkg)
		}
	}
	if t.ChildSharePercent < 0 || t.ChildSharePercent > 100 {
		return fmt.Errorf("pricing: child share must be within 0..100, got %d", t.ChildSharePercent)
	}
	if t.DefaultTierPercent <= 0 || t.DefaultTierPercent > 100 {
		return fmt.Errorf("pricing: default tier percent must be within 1..100, got %d", t.DefaultTierPercent)
	}
	for tier, p := range t.TierPercents {
		if p <= 0 || p > 100 {
			return fmt.Errorf("pricing: tier %q percent must be within 1..100, got %d", tier, p)
		}
	}
	if t.DefaultNightlyRate <= 0 {
		return fmt.Errorf("pricing: default nightly rate must be positive")
	}
	return nil
}

// Subscription is the subset of a traveller's subscription pricing cares
// about. Tier is only consulted when Active is true.
type Subscription struct {
	Active bool
	Tier   string
}

// Input is everything a quote depends on.
type Input struct {
	NightlyRate  int64
	Nights       int64
	Adults       int64
	Children     int64
	Package      domain.PackageType
	Subscription Subscription
}

// Quote is a computed price with the intermediate figures that produced it.
type Quote struct {
	NightlyRate       int64              `json:"nightlyRate"`
	Nights            int64              `json:"nights"`
	Adults            int64              `json:"adults"`
	Children          int64              `json:"children"`
	PackageType       domain.PackageType `json:"packageType"`
	BaseAmount        int64              `json:"baseAmount"`
	MultiplierPercent int64              `json:"multiplierPercent"`
	DiscountPercent   int64              `json:"discountPercent"`
	TotalAmount       int64              `json:"totalAmount"`
}

// Calculate prices a trip.
//
//	base     = rate * nights
//	people   = adults + children * childShare
//	total    = round(base * people * multiplier * (1 - discount))
//
// Errors are validation errors and leave nothing to clean up.
func Calculate(t Table, in Input) (Quote, error) {
	if in.Nights < 1 {
		return Quote{}, domain.ErrValidation("trip must last at least one night")
	}
	if in.Adults < 1 {
		return Quote{}, domain.ErrValidation("at least one adult is required")
	}
	if in.Children < 0 {
		return Quote{}, domain.ErrValidation("children cannot be negative")
	}
	if in.Nights > MaxNights {
		return Quote{}, domain.ErrValidation(fmt.Sprintf("trip cannot last more than %d nights", MaxNights))
	}
	mult, ok := t.PackageMultipliers[in.Package]
	if !ok {
		return Quote{}, domain.ErrValidation(fmt.Sprintf("unknown package type %q", in.Package))
	}

	rate := in.NightlyRate
	if rate < 0 {
		return Quote{}, domain.ErrValidation("nightly rate cannot be negative")
	}
	if rate == 0 {
		rate = t.DefaultNightlyRate
	}
	if rate <= 0 {
		return Quote{}, domain.ErrValidation("nightly rate must be positive")
	}

	pay := t.tierPercent(in.Subscription)
	const den = 100 * 100 * 100

	base, ok1 := mul(rate, in.Nights)
	children, ok2 := mul(in.Children, t.ChildSharePercent)
	adults, ok3 := mul(in.Adults, 100)
	if !ok1 || !ok2 || !ok3 || adults > math.MaxInt64-children {
		return Quote{}, errTooLarge
	}
	people := adults + children

	num, ok := mul(base, people)
	if ok {
		num, ok = mul(num, mult)
	}
	if ok {
		num, ok = mul(num, pay)
	}
	if !ok || num > math.MaxInt64-den/2 {
		return Quote{}, errTooLarge
	}

	return Quote{
		NightlyRate:       rate,
		Nights:            in.Nights,
		Adults:            in.Adults,
		Children:          in.Children,
		PackageType:       in.Package,
		BaseAmount:        base,
		MultiplierPercent: mult,
		DiscountPercent:   100 - pay,
		TotalAmount:       (num + den/2) / den,
	}, nil
}

var errTooLarge = domain.ErrValidation("trip is too large to price")

// mul multiplies two non-negative values, reporting false on overflow.
func mul(a, b int64) (int64, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt64/b {
		return 0, false
	}
	return a * b, true
}

// tierPercent is the share of the price a traveller pays after discount.
func (t Table) tierPercent(s Subscription) int64 {
	if !s.Active {
		return 100
	}
	if p, ok := t.TierPercents[s.Tier]; ok {
		return p
	}
	return t.DefaultTierPercent
}

// MaxNights is the longest stay that can be quoted or booked.
const MaxNights = 365

// NightsBetween counts the nights of a stay, rounding partial days up.
func NightsBetween(start, end time.Time) (int64, error) {
	if !end.After(start) {
		return 0, domain.ErrValidationFields(map[string]string{
			"endDate": "end date must be after start date",
		})
	}
	const day = 24 * time.Hour
	// Checked before Sub, which saturates for very long ranges.
	if end.After(start.Add(MaxNights * day)) {
		return 0, domain.ErrValidationFields(map[string]string{
			"endDate": fmt.Sprintf("trip cannot last more than %d nights", MaxNights),
		})
	}
	d := end.Sub(start)
	nights := int64(d / day)
	if d%day != 0 {
		nights++
	}
	return nights, nil
}
