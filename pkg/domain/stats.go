package domain

// DashboardStats is the read-only aggregate shown on the dashboard home.
type DashboardStats struct {
	TotalBookings    int              `json:"totalBookings"`
	TotalRevenue     float64          `json:"totalRevenue"`
	TotalVehicles    int              `json:"totalVehicles"`
	TotalUsers       int              `json:"totalUsers"`
	ActiveBookings   int              `json:"activeBookings"`
	PendingBookings  int              `json:"pendingBookings"`
	TotalTours       int              `json:"totalTours"`
	RecentBookings   []Booking        `json:"recentBookings"`
	MonthlyRevenue   []MonthlyRevenue `json:"monthlyRevenue"`
	BookingsByStatus []StatusCount    `json:"bookingsByStatus"`
}

// MonthlyRevenue is one point of the revenue series.
type MonthlyRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// StatusCount is the number of bookings in one status.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}
