// Package studio holds the studio's domain operations over the record store:
// bookings, the appointment lifecycle, clients, treatments, posts and campaigns.
package studio

import (
	"context"
	"log/slog"
	"time"

	"github.com/yaelle-pmu/studio/services/studio-service/internal/email"
	"github.com/yaelle-pmu/studio/services/studio-service/internal/events"
	"github.com/yaelle-pmu/studio/services/studio-service/internal/model"
	"github.com/yaelle-pmu/studio/services/studio-service/internal/storage"
)

const defaultBrand = "Yaelle PMU Art"

type Config struct {
	Brand string
	// Location decides what "today" means for booking dates.
	Location *time.Location
	Now      func() time.Time
	IDs      *model.IDGenerator
	Events   events.Publisher
	// Mailer is optional; without it campaigns are prepared but not sent.
	Mailer email.Sender
	// Generator is optional; without it drafts cannot be generated.
	Generator Generator
	Logger    *slog.Logger
}

type Service struct {
	repo      *storage.Repository
	brand     string
	loc       *time.Location
	now       func() time.Time
	ids       *model.IDGenerator
	events    events.Publisher
	mailer    email.Sender
	generator Generator
	logger    *slog.Logger
}

func New(repo *storage.Repository, cfg Config) *Service {
	if cfg.Brand == "" {
		cfg.Brand = defaultBrand
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.IDs == nil {
		cfg.IDs = model.NewIDGenerator(cfg.Now, nil)
	}
	if cfg.Events == nil {
		cfg.Events = events.Noop{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Service{
		repo:      repo,
		brand:     cfg.Brand,
		loc:       cfg.Location,
		now:       cfg.Now,
		ids:       cfg.IDs,
		events:    cfg.Events,
		mailer:    cfg.Mailer,
		generator: cfg.Generator,
		logger:    cfg.Logger,
	}
}

func (s *Service) Brand() string { return s.brand }

// CanSendMail reports whether campaigns are delivered or only prepared.
func (s *Service) CanSendMail() bool { return s.mailer != nil }

func (s *Service) Services() []model.Service {
	return model.Services()
}

func (s *Service) timestamp() string {
	return model.FormatTimestamp(s.now())
}

func (s *Service) publish(ctx context.Context, evt events.Event) {
	if err := s.events.Publish(ctx, evt); err != nil {
		s.logger.Warn("event publish failed", "type", evt.Type, "key", evt.Key, "err", err)
	}
}
