package studio

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/yaelle-pmu/studio/services/studio-service/internal/model"
	"github.com/yaelle-pmu/studio/services/studio-service/internal/storage"
)

type TreatmentInput struct {
	ClientID        string  `json:"clientId"`
	Service         string  `json:"service"`
	Date            string  `json:"date"`
	Price           float64 `json:"price"`
	Notes           string  `json:"notes"`
	BeforePhoto     string  `json:"beforePhoto"`
	AfterPhoto      string  `json:"afterPhoto"`
	NextAppointment string  `json:"nextAppointment"`
}

func (in *TreatmentInput) normalize() {
	in.ClientID = strings.TrimSpace(in.ClientID)
	in.Service = strings.TrimSpace(in.Service)
	in.Date = strings.TrimSpace(in.Date)
	in.Notes = strings.TrimSpace(in.Notes)
	in.NextAppointment = strings.TrimSpace(in.NextAppointment)
}

func (in TreatmentInput) validate() error {
	if in.ClientID == "" {
		return invalid("clientId", "client is required")
	}
	if in.Service == "" {
		return invalid("service", "service is required")
	}
	if in.Date == "" {
		return invalid("date", "date is required")
	}
	if _, err := time.Parse(model.DateLayout, in.Date); err != nil {
		return invalid("date", "date must be YYYY-MM-DD")
	}
	if in.Price < 0 {
		return invalid("price", "price cannot be negative")
	}
	if in.NextAppointment != "" {
		if _, err := time.Parse(model.DateLayout, in.NextAppointment); err != nil {
			return invalid("nextAppointment", "date must be YYYY-MM-DD")
		}
	}
	return nil
}

// AddTreatment records a treatment. The client id is a weak reference and is not
// checked against the client collection.
func (s *Service) AddTreatment(ctx context.Context, in TreatmentInput) (model.Treatment, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return model.Treatment{}, err
	}

	var t model.Treatment
	err := s.repo.Update(ctx, "add_treatment", func(tx *storage.Tx) error {
		treatments, err := tx.Treatments()
		if err != nil {
			return err
		}
		t = model.Treatment{
			ID:              s.ids.New(model.PrefixTreatment),
			ClientID:        in.ClientID,
			Service:         in.Service,
			Date:            in.Date,
			Price:           in.Price,
			Notes:           in.Notes,
			BeforePhoto:     in.BeforePhoto,
			AfterPhoto:      in.AfterPhoto,
			NextAppointment: in.NextAppointment,
			CreatedAt:       s.timestamp(),
		}
		return tx.SetTreatments(append(treatments, t))
	})
	if err != nil {
		return model.Treatment{}, err
	}
	return t, nil
}

func (s *Service) DeleteTreatment(ctx context.Context, id string) error {
	return s.repo.Update(ctx, "delete_treatment", func(tx *storage.Tx) error {
		treatments, err := tx.Treatments()
		if err != nil {
			return err
		}
		kept := lo.Reject(treatments, func(t model.Treatment, _ int) bool { return t.ID == id })
		if len(kept) == len(treatments) {
			return fmt.Errorf("treatment %s: %w", id, ErrNotFound)
		}
		return tx.SetTreatments(kept)
	})
}

func (s *Service) TreatmentsForClient(ctx context.Context, clientID string) ([]model.Treatment, error) {
	treatments, err := s.repo.Treatments(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Filter(treatments, func(t model.Treatment, _ int) bool { return t.ClientID == clientID }), nil
}
