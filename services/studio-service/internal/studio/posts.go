package studio

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/yaelle-pmu/studio/services/studio-service/internal/model"
	"github.com/yaelle-pmu/studio/services/studio-service/internal/storage"
)

type PostInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Image   string `json:"image"`
}

// CreatePost saves a draft at the front of the collection, newest first.
func (s *Service) CreatePost(ctx context.Context, in PostInput) (model.Post, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	if in.Title == "" {
		return model.Post{}, invalid("title", "title is required")
	}
	if in.Content == "" {
		return model.Post{}, invalid("content", "content is required")
	}

	var post model.Post
	err := s.repo.Update(ctx, "create_post", func(tx *storage.Tx) error {
		posts, err := tx.Posts()
		if err != nil {
			return err
		}
		post = model.Post{
			ID:        s.ids.New(model.PrefixPost),
			Title:     in.Title,
			Content:   in.Content,
			Image:     in.Image,
			Status:    model.PostStatusDraft,
			CreatedAt: s.timestamp(),
		}
		return tx.SetPosts(append([]model.Post{post}, posts...))
	})
	if err != nil {
		return model.Post{}, err
	}
	return post, nil
}

func (s *Service) Posts(ctx context.Context) ([]model.Post, error) {
	return s.repo.Posts(ctx)
}

func (s *Service) Post(ctx context.Context, id string) (model.Post, error) {
	posts, err := s.repo.Posts(ctx)
	if err != nil {
		return model.Post{}, err
	}
	post, ok := lo.Find(posts, func(p model.Post) bool { return p.ID == id })
	if !ok {
		return model.Post{}, fmt.Errorf("post %s: %w", id, ErrNotFound)
	}
	return post, nil
}

func (s *Service) DeletePost(ctx context.Context, id string) error {
	return s.repo.Update(ctx, "delete_post", func(tx *storage.Tx) error {
		posts, err := tx.Posts()
		if err != nil {
			return err
		}
		kept := lo.Reject(posts, func(p model.Post, _ int) bool { return p.ID == id })
		if len(kept) == len(posts) {
			return fmt.Errorf("post %s: %w", id, ErrNotFound)
		}
		return tx.SetPosts(kept)
	})
}
