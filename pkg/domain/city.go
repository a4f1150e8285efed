package domain

// City is a pickup or drop-off location.
type City struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CityInput is the create/update payload for a city.
type CityInput struct {
	Name string `json:"name,omitempty"`
	Slug string `json:"slug,omitempty"`
}
