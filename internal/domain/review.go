package domain

import "time"

// Author is the public identity shown next to user-written content.
type Author struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// Review is a traveller's rating of a place. A user holds at most one active
// review per place; deleted reviews are kept inactive.
type Review struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	PlaceID      string    `json:"placeId"`
	Author       *Author   `json:"user,omitempty"`
	Rating       int       `json:"rating"`
	Title        string    `json:"title"`
	Text         string    `json:"text"`
	Images       []string  `json:"images"`
	HelpfulCount int       `json:"helpfulCount"`
	Verified     bool      `json:"verified"`
	IsActive     bool      `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ReviewRequest is the input for POST /api/reviews.
type ReviewRequest struct {
	PlaceID string   `json:"placeId" validate:"required"`
	Rating  int      `json:"rating" validate:"required,min=1,max=5"`
	Title   string   `json:"title" validate:"required,min=3,max=100"`
	Text    string   `json:"text" validate:"required,min=10,max=1000"`
	Images  []string `json:"images" validate:"max=10,dive,url"`
}

// ReviewUpdate is the input for PUT /api/reviews/{id}. Omitted fields are
// left unchanged.
type ReviewUpdate struct {
	Rating *int     `json:"rating" validate:"omitempty,min=1,max=5"`
	Title  *string  `json:"title" validate:"omitempty,min=3,max=100"`
	Text   *string  `json:"text" validate:"omitempty,min=10,max=1000"`
	Images []string `json:"images" validate:"omitempty,max=10,dive,url"`
}

// Apply copies the supplied fields onto r and reports whether the rating
// changed.
func (u ReviewUpdate) Apply(r *Review) (ratingChanged bool) {
	if u.Rating != nil && *u.Rating != r.Rating {
		r.Rating = *u.Rating
		ratingChanged = true
	}
	if u.Title != nil {
		r.Title = *u.Title
	}
	if u.Text != nil {
		r.Text = *u.Text
	}
	if u.Images != nil {
		r.Images = u.Images
	}
	return ratingChanged
}

// ReviewSort orders a place's reviews.
type ReviewSort string

const (
	SortNewest     ReviewSort = "newest"
	SortOldest     ReviewSort = "oldest"
	SortRatingHigh ReviewSort = "rating-high"
	SortRatingLow  ReviewSort = "rating-low"
	SortHelpful    ReviewSort = "helpful"
)

// Valid reports whether s is a known sort order.
func (s ReviewSort) Valid() bool {
	switch s {
	case SortNewest, SortOldest, SortRatingHigh, SortRatingLow, SortHelpful:
		return true
	}
	return false
}

// ReviewFilter selects active reviews by place or by author.
type ReviewFilter struct {
	PlaceID string
	UserID  string
	Sort    ReviewSort
	Page    int
	Limit   int
}

// Offset converts the 1-based page into a row offset.
func (f ReviewFilter) Offset() int {
	return offset(f.Page, f.Limit)
}

// RatingCount is one bar of a rating histogram.
type RatingCount struct {
	Rating int   `json:"rating"`
	Count  int64 `json:"count"`
}

// RatingDistribution fills in every star value from 1 to 5, zero when absent.
func RatingDistribution(counts map[int]int64) []RatingCount {
	dist := make([]RatingCount, 0, 5)
	for rating := 1; rating <= 5; rating++ {
		dist = append(dist, RatingCount{Rating: rating, Count: counts[rating]})
	}
	return dist
}

// ReviewPage is one page of reviews. Place listings also carry the rating
// summary.
type ReviewPage struct {
	Reviews            []*Review     `json:"reviews"`
	TotalPages         int           `json:"totalPages"`
	CurrentPage        int           `json:"currentPage"`
	TotalReviews       int64         `json:"totalReviews"`
	AverageRating      *float64      `json:"averageRating,omitempty"`
	RatingDistribution []RatingCount `json:"ratingDistribution,omitempty"`
}

// HelpfulResult is the outcome of toggling a helpful mark.
type HelpfulResult struct {
	IsHelpful    bool `json:"isHelpful"`
	HelpfulCount int  `json:"helpfulCount"`
}
