// Package impl is implementation of service interface.
package impl

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lumen-social/lumen/internal/categories"
	"github.com/lumen-social/lumen/internal/entities"
	"github.com/lumen-social/lumen/internal/feed"
	"github.com/lumen-social/lumen/internal/service"
	"github.com/lumen-social/lumen/internal/storage"
)

var log = logrus.WithField("layer", "service")

// livePlaceholderMedia is the opaque media reference attached to a post by
// the live-session trigger.
const livePlaceholderMedia = "live://placeholder"

type srv struct {
	s storage.Storage

	highlightWindow time.Duration
	now             func() time.Time

	// composition state of the hosting session, guarded for concurrent reads
	mu       sync.Mutex
	prev     *feed.Composition
	markedAt time.Time
}

// New creates new instance of service.
func New(s storage.Storage, highlightWindow time.Duration) service.Service {
	if highlightWindow <= 0 {
		highlightWindow = feed.DefaultHighlightWindow
	}

	return &srv{
		s:               s,
		highlightWindow: highlightWindow,
		now:             time.Now,
	}
}

func (s *srv) CreatePost(ctx context.Context, p *storage.CreatePostParams) (*entities.Post, error) {
	if p.Category == categories.OtherKey && strings.TrimSpace(p.OtherCategory) == "" {
		return nil, service.ErrMissingCategorySpecification
	}

	if strings.TrimSpace(p.Text) == "" && len(p.Media) == 0 && p.Audio == "" {
		return nil, service.ErrEmptySubmission
	}

	post, err := s.s.CreatePost(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to create post on storage side: %w", err)
	}

	return post, nil
}

func (s *srv) StartLive(ctx context.Context, author entities.Author) (*entities.Post, error) {
	now := s.now()

	post, err := s.s.CreatePost(ctx, &storage.CreatePostParams{
		Author:        author,
		Category:      categories.OtherKey,
		OtherCategory: "Live",
		Media:         []string{livePlaceholderMedia},
		Visibility:    entities.PublicVisibility,
		LiveStartTime: &now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create live post on storage side: %w", err)
	}

	return post, nil
}

func (s *srv) GetPost(ctx context.Context, id string) (*entities.Post, error) {
	post, err := s.s.GetPost(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get post from storage: %w", err)
	}

	return post, nil
}

// ToggleLike flips the viewer's like membership. A vanished post is a
// recoverable condition, the UI and the store can transiently disagree
// during teardown, so it is swallowed here.
func (s *srv) ToggleLike(ctx context.Context, postID, likedBy string) error {
	if err := s.s.ToggleLike(ctx, postID, likedBy); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.WithField("post_id", postID).Debug("like toggled on a vanished post")
			return nil
		}

		return fmt.Errorf("failed to toggle like on storage side: %w", err)
	}

	return nil
}

func (s *srv) AddComment(ctx context.Context, p *storage.AddCommentParams) (*entities.Comment, error) {
	comment, err := s.s.AddComment(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to add comment on storage side: %w", err)
	}

	return comment, nil
}

func (s *srv) ToggleCommentLike(ctx context.Context, postID, commentID string) error {
	if err := s.s.ToggleCommentLike(ctx, postID, commentID); err != nil {
		return fmt.Errorf("failed to toggle comment like on storage side: %w", err)
	}

	return nil
}

// Feed recomputes the ranked, filtered view from the current store state.
// Scores decay with the wall clock sampled here, so repeated calls with no
// new engagement still reorder over time. Newly-arrived marks are cleared on
// the first composition after the highlight window elapses.
func (s *srv) Feed(ctx context.Context, filters []string) (*feed.Composition, error) {
	revision, err := s.s.Revision(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get revision from storage: %w", err)
	}

	posts, err := s.s.ListPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts from storage: %w", err)
	}

	now := s.now()
	ranked := feed.Rank(posts, now)

	active := make(map[string]struct{}, len(filters))
	for _, f := range filters {
		active[f] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	composition := feed.Compose(ranked, active, s.prev, revision)

	if s.prev == nil || s.prev.Revision != revision {
		s.markedAt = now
	} else if now.Sub(s.markedAt) >= s.highlightWindow {
		composition.ClearNewlyArrived()
	}

	s.prev = composition

	return composition, nil
}

func (s *srv) SaveDraft(ctx context.Context, d *entities.Draft) error {
	if err := s.s.SaveDraft(ctx, d); err != nil {
		return fmt.Errorf("failed to save draft on storage side: %w", err)
	}

	return nil
}

func (s *srv) GetDraft(ctx context.Context) (*entities.Draft, error) {
	d, err := s.s.GetDraft(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get draft from storage: %w", err)
	}

	return d, nil
}
