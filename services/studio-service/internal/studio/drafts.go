package studio

import (
	"context"
	"strings"

	"github.com/yaelle-pmu/studio/services/studio-service/internal/generation"
	"github.com/yaelle-pmu/studio/services/studio-service/internal/marketing"
)

type Generator interface {
	Generate(ctx context.Context, req generation.Request) (generation.Response, error)
}

type DraftRequest struct {
	Prompt       string `json:"prompt"`
	Type         string `json:"type"`
	IncludeImage bool   `json:"includeImage"`
}

// Draft is a parsed generation result: Title for posts, Subject for emails.
type Draft struct {
	Type    string `json:"type"`
	Title   string `json:"title,omitempty"`
	Subject string `json:"subject,omitempty"`
	Body    string `json:"body"`
	Image   string `json:"image,omitempty"`
}

// GenerateDraft asks the generation proxy once and parses its labeled output.
func (s *Service) GenerateDraft(ctx context.Context, req DraftRequest) (Draft, error) {
	req.Prompt = strings.TrimSpace(req.Prompt)
	if req.Prompt == "" {
		return Draft{}, invalid("prompt", "prompt is required")
	}
	if req.Type != generation.TypePost && req.Type != generation.TypeEmail {
		return Draft{}, invalid("type", `type must be "post" or "email"`)
	}
	if s.generator == nil {
		return Draft{}, ErrGenerationOff
	}

	resp, err := s.generator.Generate(ctx, generation.Request{
		Prompt:       req.Prompt,
		Type:         req.Type,
		IncludeImage: req.IncludeImage && req.Type == generation.TypePost,
	})
	if err != nil {
		return Draft{}, err
	}

	if req.Type == generation.TypeEmail {
		e := marketing.ParseEmail(resp.Content)
		return Draft{Type: req.Type, Subject: e.Subject, Body: e.Body}, nil
	}
	p := marketing.ParsePost(resp.Content)
	return Draft{Type: req.Type, Title: p.Title, Body: p.Body, Image: resp.Image}, nil
}
