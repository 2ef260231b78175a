package studio

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/yaelle-pmu/studio/services/studio-service/internal/events"
	"github.com/yaelle-pmu/studio/services/studio-service/internal/model"
	"github.com/yaelle-pmu/studio/services/studio-service/internal/storage"
)

type ClientInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Notes     string `json:"notes"`
}

func (in *ClientInput) normalize() {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Notes = strings.TrimSpace(in.Notes)
}

func (in ClientInput) validate() error {
	switch {
	case in.FirstName == "":
		return invalid("firstName", "first name is required")
	case in.LastName == "":
		return invalid("lastName", "last name is required")
	case in.Email == "":
		return invalid("email", "email is required")
	case in.Phone == "":
		return invalid("phone", "phone number is required")
	}
	return nil
}

// ClientSummary is a client row with its treatment count.
type ClientSummary struct {
	model.Client
	TreatmentCount int `json:"treatmentCount"`
}

type ClientDetail struct {
	Client         model.Client      `json:"client"`
	Treatments     []model.Treatment `json:"treatments"`
	TreatmentCount int               `json:"treatmentCount"`
}

// SearchClients matches term case-insensitively against names and email and as a
// plain substring against the phone number. An empty term matches everyone.
func (s *Service) SearchClients(ctx context.Context, term string) ([]ClientSummary, error) {
	clients, err := s.repo.Clients(ctx)
	if err != nil {
		return nil, err
	}
	treatments, err := s.repo.Treatments(ctx)
	if err != nil {
		return nil, err
	}
	counts := lo.CountValuesBy(treatments, func(t model.Treatment) string { return t.ClientID })

	term = strings.TrimSpace(term)
	lower := strings.ToLower(term)
	matched := lo.Filter(clients, func(c model.Client, _ int) bool {
		if term == "" {
			return true
		}
		return strings.Contains(strings.ToLower(c.FirstName), lower) ||
			strings.Contains(strings.ToLower(c.LastName), lower) ||
			strings.Contains(strings.ToLower(c.Email), lower) ||
			strings.Contains(c.Phone, term)
	})
	return lo.Map(matched, func(c model.Client, _ int) ClientSummary {
		return ClientSummary{Client: c, TreatmentCount: counts[c.ID]}
	}), nil
}

func (s *Service) ClientDetail(ctx context.Context, id string) (ClientDetail, error) {
	clients, err := s.repo.Clients(ctx)
	if err != nil {
		return ClientDetail{}, err
	}
	client, ok := lo.Find(clients, func(c model.Client) bool { return c.ID == id })
	if !ok {
		return ClientDetail{}, fmt.Errorf("client %s: %w", id, ErrNotFound)
	}
	treatments, err := s.TreatmentsForClient(ctx, id)
	if err != nil {
		return ClientDetail{}, err
	}
	return ClientDetail{Client: client, Treatments: treatments, TreatmentCount: len(treatments)}, nil
}

// AddClient is the dashboard's manual entry. Unlike booking it never merges: a
// case-insensitive email match is rejected.
func (s *Service) AddClient(ctx context.Context, in ClientInput) (model.Client, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return model.Client{}, err
	}

	var client model.Client
	err := s.repo.Update(ctx, "add_client", func(tx *storage.Tx) error {
		clients, err := tx.Clients()
		if err != nil {
			return err
		}
		if emailTaken(clients, in.Email, "") {
			return ErrDuplicateEmail
		}
		client = model.Client{
			ID:           s.ids.New(model.PrefixClient),
			FirstName:    in.FirstName,
			LastName:     in.LastName,
			Email:        in.Email,
			Phone:        in.Phone,
			Notes:        in.Notes,
			Appointments: []string{},
			CreatedAt:    s.timestamp(),
		}
		return tx.SetClients(append(clients, client))
	})
	if err != nil {
		return model.Client{}, err
	}
	return client, nil
}

func (s *Service) UpdateClient(ctx context.Context, id string, in ClientInput) (model.Client, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return model.Client{}, err
	}

	var client model.Client
	err := s.repo.Update(ctx, "update_client", func(tx *storage.Tx) error {
		clients, err := tx.Clients()
		if err != nil {
			return err
		}
		_, idx, ok := lo.FindIndexOf(clients, func(c model.Client) bool { return c.ID == id })
		if !ok {
			return fmt.Errorf("client %s: %w", id, ErrNotFound)
		}
		if emailTaken(clients, in.Email, id) {
			return ErrDuplicateEmail
		}
		c := &clients[idx]
		c.FirstName = in.FirstName
		c.LastName = in.LastName
		c.Email = in.Email
		c.Phone = in.Phone
		c.Notes = in.Notes
		c.UpdatedAt = s.timestamp()
		client = *c
		return tx.SetClients(clients)
	})
	if err != nil {
		return model.Client{}, err
	}
	return client, nil
}

// DeleteClient removes the client and all of its treatments in a single commit.
// Appointments are not touched.
func (s *Service) DeleteClient(ctx context.Context, id string) error {
	var removed int
	err := s.repo.Update(ctx, "delete_client", func(tx *storage.Tx) error {
		clients, err := tx.Clients()
		if err != nil {
			return err
		}
		kept := lo.Reject(clients, func(c model.Client, _ int) bool { return c.ID == id })
		if len(kept) == len(clients) {
			return fmt.Errorf("client %s: %w", id, ErrNotFound)
		}
		treatments, err := tx.Treatments()
		if err != nil {
			return err
		}
		keptTreatments := lo.Reject(treatments, func(t model.Treatment, _ int) bool { return t.ClientID == id })
		removed = len(treatments) - len(keptTreatments)

		if err := tx.SetClients(kept); err != nil {
			return err
		}
		return tx.SetTreatments(keptTreatments)
	})
	if err != nil {
		return err
	}

	s.publish(ctx, events.Event{
		Type:    events.TopicClientDeleted,
		Key:     id,
		Payload: map[string]any{"id": id, "treatmentsRemoved": removed},
	})
	return nil
}

func emailTaken(clients []model.Client, email, exceptID string) bool {
	return lo.ContainsBy(clients, func(c model.Client) bool {
		return c.ID != exceptID && strings.EqualFold(c.Email, email)
	})
}
