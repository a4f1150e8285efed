// Package dashboard implements the admin operations on top of the booking
// API gateway.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	xerrors "tour-admin/internal/pkg/errors"
	"tour-admin/internal/pkg/session"
	"tour-admin/pkg/client"
	"tour-admin/pkg/domain"

	"go.uber.org/zap"
)

// Notifier is told about successful mutations.
type Notifier interface {
	NotifyChanged(resource string, id int64, action string)
}

type Service struct {
	api          *client.Client
	serviceToken string
	notifier     Notifier
	logger       *zap.Logger
}

// NewService builds the dashboard service. When serviceToken is empty the
// admin's own session token is forwarded to the backend. notifier may be nil.
func NewService(api *client.Client, serviceToken string, notifier Notifier, logger *zap.Logger) *Service {
	return &Service{
		api:          api,
		serviceToken: serviceToken,
		notifier:     notifier,
		logger:       logger,
	}
}

// Gateway returns the API client bound to the credential used for sess.
func (s *Service) Gateway(sess *session.Session) *client.Client {
	token := s.serviceToken
	if token == "" && sess != nil {
		token = sess.Token
	}
	api := s.api.WithCredentials(token)
	if !api.HasCredentials() {
		s.logger.Warn("gateway call without a bearer token")
	}
	return api
}

func (s *Service) changed(resource string, id int64, action string) {
	if s.notifier != nil {
		s.notifier.NotifyChanged(resource, id, action)
	}
}

// backendErr marks failures that never produced an HTTP response.
func backendErr(err error) error {
	if err == nil {
		return nil
	}
	var httpErr *client.HTTPError
	if errors.As(err, &httpErr) || errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %w", xerrors.ErrBackendUnavailable, err)
}

// Stats returns the dashboard aggregates.
func (s *Service) Stats(ctx context.Context, sess *session.Session) (*domain.DashboardStats, error) {
	stats, err := s.Gateway(sess).Stats.Get(ctx)
	return stats, backendErr(err)
}

// --- Vehicles ---

func (s *Service) ListVehicles(ctx context.Context, sess *session.Session, params url.Values) ([]domain.Vehicle, error) {
	out, err := s.Gateway(sess).Vehicles.List(ctx, params)
	return out, backendErr(err)
}

func (s *Service) GetVehicle(ctx context.Context, sess *session.Session, id int64) (*domain.Vehicle, error) {
	out, err := s.Gateway(sess).Vehicles.Get(ctx, id)
	return out, backendErr(err)
}

func (s *Service) CreateVehicle(ctx context.Context, sess *session.Session, in domain.VehicleInput) (*domain.Vehicle, error) {
	if in.Type != nil && !validVehicleType(*in.Type) {
		return nil, fmt.Errorf("%w: unknown vehicle type %q", xerrors.ErrInvalidInput, *in.Type)
	}
	out, err := s.Gateway(sess).Vehicles.Create(ctx, in)
	if err != nil {
		return nil, backendErr(err)
	}
	s.changed("vehicles", out.ID, "create")
	return out, nil
}

func (s *Service) UpdateVehicle(ctx context.Context, sess *session.Session, id int64, in domain.VehicleInput) (*domain.Vehicle, error) {
	if in.Type != nil && !validVehicleType(*in.Type) {
		return nil, fmt.Errorf("%w: unknown vehicle type %q", xerrors.ErrInvalidInput, *in.Type)
	}
	out, err := s.Gateway(sess).Vehicles.Update(ctx, id, in)
	if err != nil {
		return nil, backendErr(err)
	}
	s.changed("vehicles", id, "update")
	return out, nil
}

func (s *Service) DeleteVehicle(ctx context.Context, sess *session.Session, id int64) error {
	if err := s.Gateway(sess).Vehicles.Delete(ctx, id); err != nil {
		return backendErr(err)
	}
	s.changed("vehicles", id, "delete")
	return nil
}

func validVehicleType(t domain.VehicleType) bool {
	return t == domain.VehicleCar || t == domain.VehicleBike
}

// --- Tours ---

func (s *Service) ListTours(ctx context.Context, sess *session.Session, params url.Values) ([]domain.Tour, error) {
	out, err := s.Gateway(sess).Tours.List(ctx, params)
	return out, backendErr(err)
}

func (s *Service) GetTour(ctx context.Context, sess *session.Session, id int64) (*domain.Tour, error) {
	out, err := s.Gateway(sess).Tours.Get(ctx, id)
	return out, backendErr(err)
}

func (s *Service) CreateTour(ctx context.Context, sess *session.Session, in domain.TourInput) (*domain.Tour, error) {
	out, err := s.Gateway(sess).Tours.Create(ctx, in)
	if err != nil {
		return nil, backendErr(err)
	}
	s.changed("tours", out.ID, "create")
	return out, nil
}

func (s *Service) UpdateTour(ctx context.Context, sess *session.Session, id int64, in domain.TourInput) (*domain.Tour, error) {
	out, err := s.Gateway(sess).Tours.Update(ctx, id, in)
	if err != nil {
		return nil, backendErr(err)
	}
	s.changed("tours", id, "update")
	return out, nil
}

func (s *Service) DeleteTour(ctx context.Context, sess *session.Session, id int64) error {
	if err := s.Gateway(sess).Tours.Delete(ctx, id); err != nil {
		return backendErr(err)
	}
	s.changed("tours", id, "delete")
	return nil
}

// --- Bookings ---

// ListBookings lists bookings, optionally only those in status.
func (s *Service) ListBookings(ctx context.Context, sess *session.Session, status domain.BookingStatus) ([]domain.Booking, error) {
	var params url.Values
	if status != "" {
		if !status.Valid() {
			return nil, fmt.Errorf("%w: unknown booking status %q", xerrors.ErrInvalidInput, status)
		}
		params = url.Values{"status": {string(status)}}
	}
	out, err := s.Gateway(sess).Bookings.List(ctx, params)
	return out, backendErr(err)
}

func (s *Service) GetBooking(ctx context.Context, sess *session.Session, id int64) (*domain.Booking, error) {
	out, err := s.Gateway(sess).Bookings.Get(ctx, id)
	return out, backendErr(err)
}

// UpdateBookingStatus moves booking id to status and returns the refreshed
// list, filtered by filter when non-empty.
func (s *Service) UpdateBookingStatus(ctx context.Context, sess *session.Session, id int64, status, filter domain.BookingStatus) ([]domain.Booking, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown booking status %q", xerrors.ErrInvalidInput, status)
	}
	if _, err := s.Gateway(sess).Bookings.UpdateStatus(ctx, id, status); err != nil {
		return nil, backendErr(err)
	}
	s.logger.Info("booking status updated", zap.Int64("booking_id", id), zap.String("status", string(status)))
	s.changed("bookings", id, "status")

	return s.ListBookings(ctx, sess, filter)
}

// --- Users ---

func (s *Service) ListUsers(ctx context.Context, sess *session.Session, params url.Values) ([]domain.User, error) {
	out, err := s.Gateway(sess).Users.List(ctx, params)
	return out, backendErr(err)
}

func (s *Service) GetUser(ctx context.Context, sess *session.Session, id int64) (*domain.User, error) {
	out, err := s.Gateway(sess).Users.Get(ctx, id)
	return out, backendErr(err)
}

// SetUserActive toggles a user's active flag and returns the refreshed list.
func (s *Service) SetUserActive(ctx context.Context, sess *session.Session, id int64, active bool) ([]domain.User, error) {
	if _, err := s.Gateway(sess).Users.SetActive(ctx, id, active); err != nil {
		return nil, backendErr(err)
	}
	s.logger.Info("user active flag updated", zap.Int64("user_id", id), zap.Bool("active", active))
	s.changed("users", id, "status")

	return s.ListUsers(ctx, sess, nil)
}

func (s *Service) DeleteUser(ctx context.Context, sess *session.Session, id int64) error {
	if err := s.Gateway(sess).Users.Delete(ctx, id); err != nil {
		return backendErr(err)
	}
	s.changed("users", id, "delete")
	return nil
}

// --- Cities ---

func (s *Service) ListCities(ctx context.Context, sess *session.Session) ([]domain.City, error) {
	out, err := s.Gateway(sess).Cities.List(ctx)
	return out, backendErr(err)
}

func (s *Service) CreateCity(ctx context.Context, sess *session.Session, in domain.CityInput) (*domain.City, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: city name is required", xerrors.ErrInvalidInput)
	}
	out, err := s.Gateway(sess).Cities.Create(ctx, in)
	if err != nil {
		return nil, backendErr(err)
	}
	s.changed("cities", out.ID, "create")
	return out, nil
}

func (s *Service) UpdateCity(ctx context.Context, sess *session.Session, id int64, in domain.CityInput) (*domain.City, error) {
	out, err := s.Gateway(sess).Cities.Update(ctx, id, in)
	if err != nil {
		return nil, backendErr(err)
	}
	s.changed("cities", id, "update")
	return out, nil
}

func (s *Service) DeleteCity(ctx context.Context, sess *session.Session, id int64) error {
	if err := s.Gateway(sess).Cities.Delete(ctx, id); err != nil {
		return backendErr(err)
	}
	s.changed("cities", id, "delete")
	return nil
}
