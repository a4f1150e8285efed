package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"tour-admin/pkg/domain"
)

func withQuery(path string, params url.Values) string {
	if len(params) == 0 {
		return path
	}
	return path + "?" + params.Encode()
}

func itemPath(base string, id int64) string {
	return base + "/" + strconv.FormatInt(id, 10)
}

// --- Stats ---

type StatsService struct{ c *Client }

// Get returns the dashboard aggregates.
func (s *StatsService) Get(ctx context.Context) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats
	if err := s.c.get(ctx, "/api/admin/stats", &stats); err != nil {
		return nil, fmt.Errorf("client.Stats.Get: %w", err)
	}
	return &stats, nil
}

// --- Vehicles ---

const vehiclesPath = "/api/admin/vehicles"

type VehiclesService struct{ c *Client }

func (s *VehiclesService) List(ctx context.Context, params url.Values) ([]domain.Vehicle, error) {
	var out []domain.Vehicle
	if err := s.c.get(ctx, withQuery(vehiclesPath, params), &out); err != nil {
		return nil, fmt.Errorf("client.Vehicles.List: %w", err)
	}
	return out, nil
}

func (s *VehiclesService) Get(ctx context.Context, id int64) (*domain.Vehicle, error) {
	var out domain.Vehicle
	if err := s.c.get(ctx, itemPath(vehiclesPath, id), &out); err != nil {
		return nil, fmt.Errorf("client.Vehicles.Get: %w", err)
	}
	return &out, nil
}

func (s *VehiclesService) Create(ctx context.Context, in domain.VehicleInput) (*domain.Vehicle, error) {
	var out domain.Vehicle
	if err := s.c.post(ctx, vehiclesPath, in, &out); err != nil {
		return nil, fmt.Errorf("client.Vehicles.Create: %w", err)
	}
	return &out, nil
}

func (s *VehiclesService) Update(ctx context.Context, id int64, in domain.VehicleInput) (*domain.Vehicle, error) {
	var out domain.Vehicle
	if err := s.c.put(ctx, itemPath(vehiclesPath, id), in, &out); err != nil {
		return nil, fmt.Errorf("client.Vehicles.Update: %w", err)
	}
	return &out, nil
}

func (s *VehiclesService) Delete(ctx context.Context, id int64) error {
	if err := s.c.delete(ctx, itemPath(vehiclesPath, id)); err != nil {
		return fmt.Errorf("client.Vehicles.Delete: %w", err)
	}
	return nil
}

// --- Tours ---

const toursPath = "/api/admin/tours"

type ToursService struct{ c *Client }

func (s *ToursService) List(ctx context.Context, params url.Values) ([]domain.Tour, error) {
	var out []domain.Tour
	if err := s.c.get(ctx, withQuery(toursPath, params), &out); err != nil {
		return nil, fmt.Errorf("client.Tours.List: %w", err)
	}
	return out, nil
}

func (s *ToursService) Get(ctx context.Context, id int64) (*domain.Tour, error) {
	var out domain.Tour
	if err := s.c.get(ctx, itemPath(toursPath, id), &out); err != nil {
		return nil, fmt.Errorf("client.Tours.Get: %w", err)
	}
	return &out, nil
}

func (s *ToursService) Create(ctx context.Context, in domain.TourInput) (*domain.Tour, error) {
	var out domain.Tour
	if err := s.c.post(ctx, toursPath, in, &out); err != nil {
		return nil, fmt.Errorf("client.Tours.Create: %w", err)
	}
	return &out, nil
}

func (s *ToursService) Update(ctx context.Context, id int64, in domain.TourInput) (*domain.Tour, error) {
	var out domain.Tour
	if err := s.c.put(ctx, itemPath(toursPath, id), in, &out); err != nil {
		return nil, fmt.Errorf("client.Tours.Update: %w", err)
	}
	return &out, nil
}

func (s *ToursService) Delete(ctx context.Context, id int64) error {
	if err := s.c.delete(ctx, itemPath(toursPath, id)); err != nil {
		return fmt.Errorf("client.Tours.Delete: %w", err)
	}
	return nil
}

// --- Bookings ---

const bookingsPath = "/api/admin/bookings"

type BookingsService struct{ c *Client }

func (s *BookingsService) List(ctx context.Context, params url.Values) ([]domain.Booking, error) {
	var out []domain.Booking
	if err := s.c.get(ctx, withQuery(bookingsPath, params), &out); err != nil {
		return nil, fmt.Errorf("client.Bookings.List: %w", err)
	}
	return out, nil
}

func (s *BookingsService) Get(ctx context.Context, id int64) (*domain.Booking, error) {
	var out domain.Booking
	if err := s.c.get(ctx, itemPath(bookingsPath, id), &out); err != nil {
		return nil, fmt.Errorf("client.Bookings.Get: %w", err)
	}
	return &out, nil
}

// UpdateStatus sends only the new status; no other booking field can change.
func (s *BookingsService) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	var out domain.Booking
	if err := s.c.put(ctx, itemPath(bookingsPath, id), domain.BookingStatusUpdate{Status: status}, &out); err != nil {
		return nil, fmt.Errorf("client.Bookings.UpdateStatus: %w", err)
	}
	return &out, nil
}

// --- Users ---

const usersPath = "/api/admin/users"

type UsersService struct{ c *Client }

func (s *UsersService) List(ctx context.Context, params url.Values) ([]domain.User, error) {
	var out []domain.User
	if err := s.c.get(ctx, withQuery(usersPath, params), &out); err != nil {
		return nil, fmt.Errorf("client.Users.List: %w", err)
	}
	return out, nil
}

func (s *UsersService) Get(ctx context.Context, id int64) (*domain.User, error) {
	var out domain.User
	if err := s.c.get(ctx, itemPath(usersPath, id), &out); err != nil {
		return nil, fmt.Errorf("client.Users.Get: %w", err)
	}
	return &out, nil
}

// SetActive toggles the account's active flag and nothing else.
func (s *UsersService) SetActive(ctx context.Context, id int64, active bool) (*domain.User, error) {
	var out domain.User
	if err := s.c.put(ctx, itemPath(usersPath, id), domain.UserActiveUpdate{IsActive: active}, &out); err != nil {
		return nil, fmt.Errorf("client.Users.SetActive: %w", err)
	}
	return &out, nil
}

func (s *UsersService) Delete(ctx context.Context, id int64) error {
	if err := s.c.delete(ctx, itemPath(usersPath, id)); err != nil {
		return fmt.Errorf("client.Users.Delete: %w", err)
	}
	return nil
}

// --- Cities ---

const citiesPath = "/api/admin/cities"

type CitiesService struct{ c *Client }

func (s *CitiesService) List(ctx context.Context) ([]domain.City, error) {
	var out []domain.City
	if err := s.c.get(ctx, citiesPath, &out); err != nil {
		return nil, fmt.Errorf("client.Cities.List: %w", err)
	}
	return out, nil
}

func (s *CitiesService) Create(ctx context.Context, in domain.CityInput) (*domain.City, error) {
	var out domain.City
	if err := s.c.post(ctx, citiesPath, in, &out); err != nil {
		return nil, fmt.Errorf("client.Cities.Create: %w", err)
	}
	return &out, nil
}

func (s *CitiesService) Update(ctx context.Context, id int64, in domain.CityInput) (*domain.City, error) {
	var out domain.City
	if err := s.c.put(ctx, itemPath(citiesPath, id), in, &out); err != nil {
		return nil, fmt.Errorf("client.Cities.Update: %w", err)
	}
	return &out, nil
}

func (s *CitiesService) Delete(ctx context.Context, id int64) error {
	if err := s.c.delete(ctx, itemPath(citiesPath, id)); err != nil {
		return fmt.Errorf("client.Cities.Delete: %w", err)
	}
	return nil
}
