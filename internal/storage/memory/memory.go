// Package memory is an in-memory implementation of the storage interface.
//
// All state is process-local and rebuilt from zero on restart. Mutations are
// issued by a single logical writer (the hosting layer); the mutex only
// guards against it being an HTTP server with concurrent readers.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/lumen-social/lumen/internal/entities"
	"github.com/lumen-social/lumen/internal/storage"
)

var log = logrus.WithField("layer", "storage").WithField("package", "memory")

type store struct {
	mu sync.RWMutex

	posts    []*entities.Post // most recent first
	draft    *entities.Draft
	revision uint64

	now func() time.Time
}

// New creates new instance of store.
func New() storage.Storage {
	return &store{
		now: time.Now,
	}
}

func (s *store) CreatePost(_ context.Context, p *storage.CreatePostParams) (*entities.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post := &entities.Post{
		ID:            uuid.New().String(),
		Author:        p.Author,
		Text:          p.Text,
		Category:      p.Category,
		OtherCategory: p.OtherCategory,
		Media:         append([]string(nil), p.Media...),
		Audio:         p.Audio,
		Hashtags:      p.Hashtags,
		Location:      p.Location,
		Visibility:    p.Visibility,
		CreatedAt:     s.now(),
		Likes:         map[string]struct{}{},
		Comments:      []*entities.Comment{},
	}

	if p.LiveStartTime != nil {
		t := *p.LiveStartTime
		post.LiveStartTime = &t
	}

	s.posts = append([]*entities.Post{post}, s.posts...)
	s.revision++

	log.WithField("post_id", post.ID).Debug("post created")

	return post.Clone(), nil
}

func (s *store) GetPost(_ context.Context, id string) (*entities.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p := s.find(id)
	if p == nil {
		return nil, storage.ErrNotFound
	}

	return p.Clone(), nil
}

func (s *store) ListPosts(_ context.Context) ([]*entities.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entities.Post, len(s.posts))
	for i, p := range s.posts {
		out[i] = p.Clone()
	}

	return out, nil
}

func (s *store) Revision(_ context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.revision, nil
}

func (s *store) ToggleLike(_ context.Context, postID, likedBy string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.find(postID)
	if p == nil {
		return storage.ErrNotFound
	}

	if _, ok := p.Likes[likedBy]; ok {
		delete(p.Likes, likedBy)
	} else {
		p.Likes[likedBy] = struct{}{}
	}

	s.revision++

	return nil
}

func (s *store) AddComment(_ context.Context, p *storage.AddCommentParams) (*entities.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post := s.find(p.PostID)
	if post == nil {
		return nil, storage.ErrNotFound
	}

	comment := &entities.Comment{
		ID:      uuid.New().String(),
		Author:  p.Author,
		Text:    p.Text,
		Replies: []*entities.Comment{},
	}

	if p.ParentID == nil {
		post.Comments = append(post.Comments, comment)
	} else {
		parent := findComment(post.Comments, *p.ParentID)
		if parent == nil {
			return nil, storage.ErrNotFound
		}
		parent.Reply(comment)
	}

	s.revision++

	return comment.Clone(), nil
}

func (s *store) ToggleCommentLike(_ context.Context, postID, commentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post := s.find(postID)
	if post == nil {
		return storage.ErrNotFound
	}

	comment := findComment(post.Comments, commentID)
	if comment == nil {
		return storage.ErrNotFound
	}

	comment.ToggleLike()
	s.revision++

	return nil
}

func (s *store) SaveDraft(_ context.Context, d *entities.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// last write wins, a new save overwrites any prior draft
	s.draft = d.Clone()

	return nil
}

func (s *store) GetDraft(_ context.Context) (*entities.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.draft == nil {
		return nil, storage.ErrNotFound
	}

	return s.draft.Clone(), nil
}

func (s *store) find(id string) *entities.Post {
	for _, p := range s.posts {
		if p.ID == id {
			return p
		}
	}

	return nil
}

func findComment(roots []*entities.Comment, id string) *entities.Comment {
	for _, c := range roots {
		if found := c.Find(id); found != nil {
			return found
		}
	}

	return nil
}
