package studio

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/yaelle-pmu/studio/services/studio-service/internal/events"
	"github.com/yaelle-pmu/studio/services/studio-service/internal/model"
	"github.com/yaelle-pmu/studio/services/studio-service/internal/storage"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[\d\s\-+()]{8,}$`)
)

// How far ahead the public form accepts dates.
const bookingHorizonMonths = 3

type BookingRequest struct {
	Service   string `json:"service"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Notes     string `json:"notes"`
}

func (r *BookingRequest) normalize() {
	r.Service = strings.TrimSpace(r.Service)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
	r.Date = strings.TrimSpace(r.Date)
	r.Time = strings.TrimSpace(r.Time)
	r.Notes = strings.TrimSpace(r.Notes)
}

func (s *Service) validateBooking(r BookingRequest) error {
	if r.Service == "" {
		return invalid("service", "please select a service")
	}
	if svc, ok := model.LookupService(r.Service); !ok || !svc.Bookable {
		return invalid("service", "unknown service")
	}
	if r.FirstName == "" {
		return invalid("firstName", "first name is required")
	}
	if r.LastName == "" {
		return invalid("lastName", "last name is required")
	}
	if r.Email == "" {
		return invalid("email", "email is required")
	}
	if !emailPattern.MatchString(r.Email) {
		return invalid("email", "please enter a valid email address")
	}
	if r.Phone == "" {
		return invalid("phone", "phone number is required")
	}
	if !phonePattern.MatchString(r.Phone) {
		return invalid("phone", "please enter a valid phone number")
	}
	if r.Date == "" {
		return invalid("date", "please select a date")
	}
	date, err := time.ParseInLocation(model.DateLayout, r.Date, s.loc)
	if err != nil {
		return invalid("date", "date must be YYYY-MM-DD")
	}
	now := s.now().In(s.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	if date.Before(today) {
		return invalid("date", "date cannot be in the past")
	}
	if date.After(today.AddDate(0, bookingHorizonMonths, 0)) {
		return invalid("date", "date must be within the next 3 months")
	}
	if r.Time == "" {
		return invalid("time", "please select a time")
	}
	if _, err := time.Parse(model.TimeLayout, r.Time); err != nil || len(r.Time) != len(model.TimeLayout) {
		return invalid("time", "time must be HH:MM")
	}
	return nil
}

// Book records a public booking as a pending appointment and upserts the client
// by exact email. Both collections are committed together.
func (s *Service) Book(ctx context.Context, req BookingRequest) (model.Appointment, error) {
	req.normalize()
	if err := s.validateBooking(req); err != nil {
		return model.Appointment{}, err
	}

	var appt model.Appointment
	err := s.repo.Update(ctx, "book", func(tx *storage.Tx) error {
		now := s.timestamp()
		appt = model.Appointment{
			ID:        s.ids.New(model.PrefixAppointment),
			Service:   req.Service,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Phone:     req.Phone,
			Date:      req.Date,
			Time:      req.Time,
			Notes:     req.Notes,
			Status:    model.StatusPending,
			CreatedAt: now,
		}
		appts, err := tx.Appointments()
		if err != nil {
			return err
		}
		if err := tx.SetAppointments(append(appts, appt)); err != nil {
			return err
		}

		clients, err := tx.Clients()
		if err != nil {
			return err
		}
		return tx.SetClients(upsertClient(clients, appt, s.ids.New(model.PrefixClient), now))
	})
	if err != nil {
		return model.Appointment{}, err
	}

	s.publish(ctx, events.Event{Type: events.TopicAppointmentBooked, Key: appt.ID, Payload: appt})
	return appt, nil
}

// upsertClient matches on the exact email string. A match takes the booking's
// name and phone and gains the appointment id once; otherwise a client is created.
func upsertClient(clients []model.Client, appt model.Appointment, newID, now string) []model.Client {
	for i := range clients {
		if clients[i].Email != appt.Email {
			continue
		}
		c := &clients[i]
		c.FirstName = appt.FirstName
		c.LastName = appt.LastName
		c.Phone = appt.Phone
		if !c.HasAppointment(appt.ID) {
			c.Appointments = append(c.Appointments, appt.ID)
		}
		return clients
	}
	return append(clients, model.Client{
		ID:           newID,
		FirstName:    appt.FirstName,
		LastName:     appt.LastName,
		Email:        appt.Email,
		Phone:        appt.Phone,
		Appointments: []string{appt.ID},
		CreatedAt:    now,
	})
}
