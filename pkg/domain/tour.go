package domain

// Tour is a packaged trip between two cities.
type Tour struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Slug          string  `json:"slug"`
	Description   string  `json:"description,omitempty"`
	FromCityID    int64   `json:"fromCityId"`
	ToCityID      int64   `json:"toCityId"`
	DistanceKm    float64 `json:"distanceKm"`
	DurationDays  int     `json:"durationDays"`
	BasePrice     float64 `json:"basePrice"`
	PricePerKm    float64 `json:"pricePerKm"`
	Highlights    string  `json:"highlights,omitempty"`
	ImageURL      string  `json:"imageUrl,omitempty"`
	GalleryImages string  `json:"galleryImages,omitempty"`
	IsActive      bool    `json:"isActive"`
	IsFeatured    bool    `json:"isFeatured"`
	TotalBookings int     `json:"totalBookings"`
	AverageRating string  `json:"averageRating,omitempty"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
	FromCity      *City   `json:"fromCity,omitempty"`
	ToCity        *City   `json:"toCity,omitempty"`
}

// TourInput is the create/update payload for a tour.
type TourInput struct {
	Name          *string  `json:"name,omitempty"`
	Slug          *string  `json:"slug,omitempty"`
	Description   *string  `json:"description,omitempty"`
	FromCityID    *int64   `json:"fromCityId,omitempty"`
	ToCityID      *int64   `json:"toCityId,omitempty"`
	DistanceKm    *float64 `json:"distanceKm,omitempty"`
	DurationDays  *int     `json:"durationDays,omitempty"`
	BasePrice     *float64 `json:"basePrice,omitempty"`
	PricePerKm    *float64 `json:"pricePerKm,omitempty"`
	Highlights    *string  `json:"highlights,omitempty"`
	ImageURL      *string  `json:"imageUrl,omitempty"`
	GalleryImages *string  `json:"galleryImages,omitempty"`
	IsActive      *bool    `json:"isActive,omitempty"`
	IsFeatured    *bool    `json:"isFeatured,omitempty"`
}
