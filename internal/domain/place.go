package domain

import "time"

// DefaultNightlyRate applies to places without a configured rate.
const DefaultNightlyRate int64 = 3000

// Destination is a region or state grouping several places.
type Destination struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Region      string    `json:"region"`
	Description string    `json:"description"`
	Image       string    `json:"image,omitempty"`
	Featured    bool      `json:"featured"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Place is a bookable location. Its detail content is subscriber-only.
type Place struct {
	ID            string    `json:"id"`
	DestinationID string    `json:"destinationId"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Images        []string  `json:"images"`
	Culture       string    `json:"culture,omitempty"`
	BestTime      string    `json:"bestTimeToVisit,omitempty"`
	NightlyRate   int64     `json:"nightlyRate"`
	Currency      string    `json:"currency"`
	Featured      bool      `json:"featured"`
	AverageRating float64   `json:"averageRating"`
	ReviewCount   int       `json:"reviewCount"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Rate returns the per-night price used for booking quotes. An unset rate
// falls back to DefaultNightlyRate; a negative one is returned as is so
// pricing rejects it.
func (p *Place) Rate() int64 {
	if p.NightlyRate == 0 {
		return DefaultNightlyRate
	}
	return p.NightlyRate
}

// PlaceDetail is the subscriber-only view of a place.
type PlaceDetail struct {
	Place       *Place       `json:"place"`
	Destination *Destination `json:"destination"`
}

// PlaceSummary is the public teaser of a place.
type PlaceSummary struct {
	ID            string   `json:"id"`
	DestinationID string   `json:"destinationId,omitempty"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Images        []string `json:"images,omitempty"`
	NightlyRate   int64    `json:"nightlyRate"`
	Currency      string   `json:"currency"`
	Featured      bool     `json:"featured,omitempty"`
	AverageRating float64  `json:"averageRating"`
	ReviewCount   int      `json:"reviewCount"`
}

// DestinationSummary is the public view of a destination.
type DestinationSummary struct {
	Destination *Destination   `json:"destination"`
	Places      []PlaceSummary `json:"places"`
}

// DestinationFilter narrows the public destination listing.
type DestinationFilter struct {
	Region   string
	Search   string
	Featured bool
	Page     int
	Limit    int
}

// Offset converts the 1-based page into a row offset.
func (f DestinationFilter) Offset() int {
	return offset(f.Page, f.Limit)
}

// DestinationPage is one page of the destination listing.
type DestinationPage struct {
	Destinations      []*Destination `json:"destinations"`
	TotalPages        int            `json:"totalPages"`
	CurrentPage       int            `json:"currentPage"`
	TotalDestinations int64          `json:"totalDestinations"`
}

// PlaceFilter narrows place listings. DestinationID or Search is normally set.
type PlaceFilter struct {
	DestinationID string
	Search        string
	Featured      bool
	Page          int
	Limit         int
}

// Offset converts the 1-based page into a row offset.
func (f PlaceFilter) Offset() int {
	return offset(f.Page, f.Limit)
}

// PlacePage is one page of place summaries.
type PlacePage struct {
	Places      []PlaceSummary `json:"places"`
	TotalPages  int            `json:"totalPages"`
	CurrentPage int            `json:"currentPage"`
	TotalPlaces int64          `json:"totalPlaces"`
	SearchQuery string         `json:"searchQuery,omitempty"`
}

// DestinationRequest is the admin input for creating a destination.
type DestinationRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Region      string `json:"region" validate:"required,max=100"`
	Description string `json:"description" validate:"required,max=5000"`
	Image       string `json:"image" validate:"omitempty,url"`
	Featured    bool   `json:"featured"`
}

// DestinationUpdate is the admin input for editing a destination. Omitted
// fields are left unchanged.
type DestinationUpdate struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=100"`
	Region      *string `json:"region" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,min=1,max=5000"`
	Image       *string `json:"image" validate:"omitempty,url"`
	Featured    *bool   `json:"featured"`
}

// Apply copies the supplied fields onto d.
func (u DestinationUpdate) Apply(d *Destination) {
	if u.Name != nil {
		d.Name = *u.Name
	}
	if u.Region != nil {
		d.Region = *u.Region
	}
	if u.Description != nil {
		d.Description = *u.Description
	}
	if u.Image != nil {
		d.Image = *u.Image
	}
	if u.Featured != nil {
		d.Featured = *u.Featured
	}
}

// PlaceRequest is the admin input for creating a place.
type PlaceRequest struct {
	DestinationID string   `json:"destinationId" validate:"required"`
	Name          string   `json:"name" validate:"required,min=2,max=100"`
	Description   string   `json:"description" validate:"required,max=5000"`
	Images        []string `json:"images" validate:"max=20,dive,url"`
	Culture       string   `json:"culture" validate:"max=5000"`
	BestTime      string   `json:"bestTimeToVisit" validate:"max=200"`
	NightlyRate   int64    `json:"nightlyRate" validate:"gte=0"`
	Currency      string   `json:"currency" validate:"omitempty,len=3"`
	Featured      bool     `json:"featured"`
}

// PlaceUpdate is the admin input for editing a place. Omitted fields are left
// unchanged.
type PlaceUpdate struct {
	DestinationID *string  `json:"destinationId" validate:"omitempty,min=1"`
	Name          *string  `json:"name" validate:"omitempty,min=2,max=100"`
	Description   *string  `json:"description" validate:"omitempty,min=1,max=5000"`
	Images        []string `json:"images" validate:"omitempty,max=20,dive,url"`
	Culture       *string  `json:"culture" validate:"omitempty,max=5000"`
	BestTime      *string  `json:"bestTimeToVisit" validate:"omitempty,max=200"`
	NightlyRate   *int64   `json:"nightlyRate"`
	Currency      *string  `json:"currency" validate:"omitempty,len=3"`
	Featured      *bool    `json:"featured"`
}

// Validate covers the checks struct tags cannot express on pointers.
func (u PlaceUpdate) Validate() error {
	if u.NightlyRate != nil && *u.NightlyRate < 0 {
		return ErrValidationFields(map[string]string{"nightlyRate": "must be at least 0"})
	}
	return nil
}

// Apply copies the supplied fields onto p.
func (u PlaceUpdate) Apply(p *Place) {
	if u.DestinationID != nil {
		p.DestinationID = *u.DestinationID
	}
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Images != nil {
		p.Images = u.Images
	}
	if u.Culture != nil {
		p.Culture = *u.Culture
	}
	if u.BestTime != nil {
		p.BestTime = *u.BestTime
	}
	if u.NightlyRate != nil {
		p.NightlyRate = *u.NightlyRate
	}
	if u.Currency != nil {
		p.Currency = *u.Currency
	}
	if u.Featured != nil {
		p.Featured = *u.Featured
	}
}

// PageCount is the number of pages needed to show total items limit at a time.
func PageCount(total int64, limit int) int {
	if limit < 1 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

func offset(page, limit int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * limit
}
