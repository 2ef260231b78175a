package studio

import (
	"context"
	"fmt"
	"slices"

	"github.com/samber/lo"
	"github.com/yaelle-pmu/studio/services/studio-service/internal/events"
	"github.com/yaelle-pmu/studio/services/studio-service/internal/model"
	"github.com/yaelle-pmu/studio/services/studio-service/internal/storage"
)

// AppointmentFilter is the dashboard's list filter. An empty or "all" status
// matches every appointment; an empty date matches every day.
type AppointmentFilter struct {
	Status string
	Date   string
}

type Stats struct {
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
	Total     int `json:"total"`
}

type StatusChange struct {
	ID   string       `json:"id"`
	From model.Status `json:"from"`
	To   model.Status `json:"to"`
}

// AllAppointments returns the collection in stored order.
func (s *Service) AllAppointments(ctx context.Context) ([]model.Appointment, error) {
	return s.repo.Appointments(ctx)
}

// ListAppointments applies f and orders the result newest date first.
// Appointments on the same date keep their stored order.
func (s *Service) ListAppointments(ctx context.Context, f AppointmentFilter) ([]model.Appointment, error) {
	if f.Status != "" && f.Status != "all" && !model.Status(f.Status).Valid() {
		return nil, invalid("status", fmt.Sprintf("unknown status %q", f.Status))
	}
	appts, err := s.repo.Appointments(ctx)
	if err != nil {
		return nil, err
	}
	out := lo.Filter(appts, func(a model.Appointment, _ int) bool {
		if f.Status != "" && f.Status != "all" && string(a.Status) != f.Status {
			return false
		}
		return f.Date == "" || a.Date == f.Date
	})
	// ISO dates sort lexically.
	slices.SortStableFunc(out, func(a, b model.Appointment) int {
		switch {
		case a.Date > b.Date:
			return -1
		case a.Date < b.Date:
			return 1
		default:
			return 0
		}
	})
	return out, nil
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	appts, err := s.repo.Appointments(ctx)
	if err != nil {
		return Stats{}, err
	}
	counts := lo.CountValuesBy(appts, func(a model.Appointment) model.Status { return a.Status })
	return Stats{
		Pending:   counts[model.StatusPending],
		Confirmed: counts[model.StatusConfirmed],
		Completed: counts[model.StatusCompleted],
		Cancelled: counts[model.StatusCancelled],
		Total:     len(appts),
	}, nil
}

// UpdateStatus moves an appointment along a legal lifecycle edge.
func (s *Service) UpdateStatus(ctx context.Context, id string, to model.Status) (model.Appointment, error) {
	if !to.Valid() {
		return model.Appointment{}, fmt.Errorf("%w: unknown status %q", ErrIllegalTransition, to)
	}

	var (
		updated model.Appointment
		from    model.Status
	)
	err := s.repo.Update(ctx, "update_status", func(tx *storage.Tx) error {
		appts, err := tx.Appointments()
		if err != nil {
			return err
		}
		_, idx, ok := lo.FindIndexOf(appts, func(a model.Appointment) bool { return a.ID == id })
		if !ok {
			return fmt.Errorf("appointment %s: %w", id, ErrNotFound)
		}
		from = appts[idx].Status
		if from.Terminal() {
			return fmt.Errorf("%w: appointment is already %s", ErrIllegalTransition, from)
		}
		if !model.CanTransition(from, to) {
			return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
		}
		appts[idx].Status = to
		updated = appts[idx]
		return tx.SetAppointments(appts)
	})
	if err != nil {
		return model.Appointment{}, err
	}

	s.publish(ctx, events.Event{
		Type:    events.TopicAppointmentStatusChanged,
		Key:     id,
		Payload: StatusChange{ID: id, From: from, To: to},
	})
	return updated, nil
}

// DeleteAppointment removes the appointment only. Client back-references are left
// as they are; they never drive behavior.
func (s *Service) DeleteAppointment(ctx context.Context, id string) error {
	err := s.repo.Update(ctx, "delete_appointment", func(tx *storage.Tx) error {
		appts, err := tx.Appointments()
		if err != nil {
			return err
		}
		kept := lo.Reject(appts, func(a model.Appointment, _ int) bool { return a.ID == id })
		if len(kept) == len(appts) {
			return fmt.Errorf("appointment %s: %w", id, ErrNotFound)
		}
		return tx.SetAppointments(kept)
	})
	if err != nil {
		return err
	}
	s.publish(ctx, events.Event{Type: events.TopicAppointmentDeleted, Key: id, Payload: map[string]string{"id": id}})
	return nil
}

// ClearAll drops appointments, clients and treatments in one commit. Posts stay.
func (s *Service) ClearAll(ctx context.Context) error {
	err := s.repo.Update(ctx, "clear_all", func(tx *storage.Tx) error {
		return tx.Clear(storage.KeyAppointments, storage.KeyClients, storage.KeyTreatments)
	})
	if err != nil {
		return err
	}
	s.logger.Info("studio data cleared")
	return nil
}
