package studio

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/yaelle-pmu/studio/services/studio-service/internal/email"
	"github.com/yaelle-pmu/studio/services/studio-service/internal/events"
	"github.com/yaelle-pmu/studio/services/studio-service/internal/marketing"
	"github.com/yaelle-pmu/studio/services/studio-service/internal/model"
)

type CampaignInput struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Segment string `json:"segment"`
	PostID  string `json:"postId"`
}

type CampaignResult struct {
	Segment    marketing.Segment `json:"segment"`
	Recipients []string          `json:"recipients"`
	Sent       int               `json:"sent"`
	// Prepared is set when no mailer is configured and nothing was delivered.
	Prepared bool `json:"prepared"`
	// Failed and Pending are set when delivery stopped early. Pending starts with Failed.
	Failed  string   `json:"failed,omitempty"`
	Pending []string `json:"pending,omitempty"`
	Error   string   `json:"error,omitempty"`
}

func (s *Service) Recipients(ctx context.Context, segment string) ([]model.Client, error) {
	seg, err := marketing.ParseSegment(segment)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSegment, err)
	}
	clients, err := s.repo.Clients(ctx)
	if err != nil {
		return nil, err
	}
	return marketing.Recipients(clients, seg, s.now()), nil
}

// SendCampaign mails one message per recipient of the segment. Without a mailer
// the campaign is only prepared and the recipient list is returned.
func (s *Service) SendCampaign(ctx context.Context, in CampaignInput) (CampaignResult, error) {
	in.Subject = strings.TrimSpace(in.Subject)
	in.Body = strings.TrimSpace(in.Body)
	in.PostID = strings.TrimSpace(in.PostID)
	if in.Subject == "" {
		return CampaignResult{}, invalid("subject", "subject is required")
	}
	if in.Body == "" {
		return CampaignResult{}, invalid("body", "body is required")
	}
	seg, err := marketing.ParseSegment(in.Segment)
	if err != nil {
		return CampaignResult{}, fmt.Errorf("%w: %v", ErrInvalidSegment, err)
	}

	recipients, err := s.Recipients(ctx, string(seg))
	if err != nil {
		return CampaignResult{}, err
	}
	if len(recipients) == 0 {
		return CampaignResult{}, ErrNoRecipients
	}

	var attached *model.Post
	if in.PostID != "" {
		post, err := s.Post(ctx, in.PostID)
		if err != nil {
			return CampaignResult{}, err
		}
		attached = &post
	}

	body := marketing.ComposeCampaignBody(s.brand, in.Body, attached)
	result := CampaignResult{
		Segment:    seg,
		Recipients: lo.Map(recipients, func(c model.Client, _ int) string { return c.Email }),
	}

	if s.mailer == nil {
		result.Prepared = true
		s.logger.Info("campaign prepared", "segment", seg, "recipients", len(recipients))
		return result, nil
	}

	msgs := lo.Map(recipients, func(c model.Client, _ int) email.Message {
		return email.Message{To: c.Email, Subject: in.Subject, Body: body}
	})
	sent, err := s.mailer.Send(ctx, msgs)
	result.Sent = min(max(sent, 0), len(msgs))
	if err != nil {
		result.Pending = result.Recipients[result.Sent:]
		if len(result.Pending) > 0 {
			result.Failed = result.Pending[0]
		}
		result.Error = err.Error()
		s.logger.Warn("campaign delivery incomplete",
			"segment", seg,
			"sent", result.Sent,
			"failed", result.Failed,
			"err", err,
		)
		if result.Sent > 0 {
			s.publishCampaign(ctx, in.Subject, result)
		}
		return result, fmt.Errorf("%w: %w", ErrCampaignIncomplete, err)
	}

	s.logger.Info("campaign sent", "segment", seg, "sent", result.Sent)
	s.publishCampaign(ctx, in.Subject, result)
	return result, nil
}

func (s *Service) publishCampaign(ctx context.Context, subject string, res CampaignResult) {
	s.publish(ctx, events.Event{
		Type: events.TopicCampaignSent,
		Key:  string(res.Segment),
		Payload: map[string]any{
			"subject":  subject,
			"segment":  res.Segment,
			"sent":     res.Sent,
			"complete": res.Failed == "",
		},
	})
}
