package domain

// VehicleType is the kind of vehicle offered for rent.
type VehicleType string

const (
	VehicleCar  VehicleType = "CAR"
	VehicleBike VehicleType = "BIKE"
)

// FuelType of a vehicle.
type FuelType string

const (
	FuelPetrol   FuelType = "PETROL"
	FuelDiesel   FuelType = "DIESEL"
	FuelElectric FuelType = "ELECTRIC"
	FuelHybrid   FuelType = "HYBRID"
	FuelCNG      FuelType = "CNG"
)

// TransmissionType of a vehicle.
type TransmissionType string

const (
	TransmissionManual    TransmissionType = "MANUAL"
	TransmissionAutomatic TransmissionType = "AUTOMATIC"
)

// Vehicle is a rentable car or bike as returned by the backend.
type Vehicle struct {
	ID               int64            `json:"id"`
	Name             string           `json:"name"`
	Type             VehicleType      `json:"type"`
	Brand            string           `json:"brand,omitempty"`
	Model            string           `json:"model,omitempty"`
	Year             int              `json:"year,omitempty"`
	Color            string           `json:"color,omitempty"`
	LicensePlate     string           `json:"licensePlate,omitempty"`
	SeatingCapacity  int              `json:"seatingCapacity,omitempty"`
	Mileage          string           `json:"mileage,omitempty"`
	FuelType         FuelType         `json:"fuelType,omitempty"`
	TransmissionType TransmissionType `json:"transmissionType,omitempty"`
	Features         string           `json:"features,omitempty"`
	FromCityID       int64            `json:"fromCityId"`
	ToCityID         int64            `json:"toCityId"`
	RatePerHour      float64          `json:"ratePerHour"`
	RatePerDay       float64          `json:"ratePerDay"`
	ExtraKmCharge    float64          `json:"extraKmCharge,omitempty"`
	IncludedKmPerDay int              `json:"includedKmPerDay,omitempty"`
	SecurityDeposit  float64          `json:"securityDeposit,omitempty"`
	Description      string           `json:"description,omitempty"`
	ImageURL         string           `json:"imageUrl,omitempty"`
	GalleryImages    string           `json:"galleryImages,omitempty"`
	IsActive         bool             `json:"isActive"`
	IsFeatured       bool             `json:"isFeatured"`
	TotalBookings    int              `json:"totalBookings"`
	AverageRating    string           `json:"averageRating,omitempty"`
	CreatedAt        string           `json:"createdAt"`
	UpdatedAt        string           `json:"updatedAt"`
	FromCity         *City            `json:"fromCity,omitempty"`
	ToCity           *City            `json:"toCity,omitempty"`
}

// VehicleInput is the create/update payload for a vehicle. Pointer fields are
// omitted when nil so updates stay partial.
type VehicleInput struct {
	Name             *string           `json:"name,omitempty"`
	Type             *VehicleType      `json:"type,omitempty"`
	Brand            *string           `json:"brand,omitempty"`
	Model            *string           `json:"model,omitempty"`
	Year             *int              `json:"year,omitempty"`
	Color            *string           `json:"color,omitempty"`
	LicensePlate     *string           `json:"licensePlate,omitempty"`
	SeatingCapacity  *int              `json:"seatingCapacity,omitempty"`
	Mileage          *string           `json:"mileage,omitempty"`
	FuelType         *FuelType         `json:"fuelType,omitempty"`
	TransmissionType *TransmissionType `json:"transmissionType,omitempty"`
	Features         *string           `json:"features,omitempty"`
	FromCityID       *int64            `json:"fromCityId,omitempty"`
	ToCityID         *int64            `json:"toCityId,omitempty"`
	RatePerHour      *float64          `json:"ratePerHour,omitempty"`
	RatePerDay       *float64          `json:"ratePerDay,omitempty"`
	ExtraKmCharge    *float64          `json:"extraKmCharge,omitempty"`
	IncludedKmPerDay *int              `json:"includedKmPerDay,omitempty"`
	SecurityDeposit  *float64          `json:"securityDeposit,omitempty"`
	Description      *string           `json:"description,omitempty"`
	ImageURL         *string           `json:"imageUrl,omitempty"`
	GalleryImages    *string           `json:"galleryImages,omitempty"`
	IsActive         *bool             `json:"isActive,omitempty"`
	IsFeatured       *bool             `json:"isFeatured,omitempty"`
}
