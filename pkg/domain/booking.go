package domain

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingPaid      BookingStatus = "PAID"
	BookingCancelled BookingStatus = "CANCELLED"
)

// Valid reports whether s is one of the known booking states.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingPaid, BookingCancelled:
		return true
	}
	return false
}

// Booking is a customer reservation of a vehicle or tour.
type Booking struct {
	ID                int64         `json:"id"`
	VehicleID         int64         `json:"vehicleId"`
	VehicleName       string        `json:"vehicleName,omitempty"`
	TourID            *int64        `json:"tourId,omitempty"`
	FromCityID        int64         `json:"fromCityId"`
	ToCityID          int64         `json:"toCityId"`
	StartDateTime     string        `json:"startDateTime"`
	EndDateTime       string        `json:"endDateTime"`
	TripDurationHours float64       `json:"tripDurationHours"`
	PricePerHour      float64       `json:"pricePerHour"`
	PricePerDay       float64       `json:"pricePerDay"`
	TotalAmount       float64       `json:"totalAmount"`
	SecurityDeposit   float64       `json:"securityDeposit"`
	CustomerName      string        `json:"customerName"`
	CustomerEmail     string        `json:"customerEmail"`
	CustomerPhone     string        `json:"customerPhone"`
	Status            BookingStatus `json:"status"`
	PaymentReference  string        `json:"paymentReference,omitempty"`
	CreatedAt         string        `json:"createdAt"`
	UpdatedAt         string        `json:"updatedAt"`
	Vehicle           *Vehicle      `json:"vehicle,omitempty"`
	Tour              *Tour         `json:"tour,omitempty"`
	FromCity          *City         `json:"fromCity,omitempty"`
	ToCity            *City         `json:"toCity,omitempty"`
}

// BookingStatusUpdate is the only mutation the backend accepts for bookings.
type BookingStatusUpdate struct {
	Status BookingStatus `json:"status"`
}
