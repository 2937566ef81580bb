// Package storage contains a storage interface.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/lumen-social/lumen/internal/entities"
)

//go:generate mockgen -destination=./mock/storage.go -package=mock -source=storage.go

// ErrNotFound ...
var ErrNotFound = fmt.Errorf("not found")

// Storage owns the canonical post collection and the single draft slot.
// The post sequence is kept most-recent-first; every read returns a
// disposable snapshot.
type Storage interface {
	CreatePost(ctx context.Context, p *CreatePostParams) (*entities.Post, error)
	GetPost(ctx context.Context, id string) (*entities.Post, error)
	ListPosts(ctx context.Context) ([]*entities.Post, error)
	Revision(ctx context.Context) (uint64, error)

	ToggleLike(ctx context.Context, postID, likedBy string) error
	AddComment(ctx context.Context, p *AddCommentParams) (*entities.Comment, error)
	ToggleCommentLike(ctx context.Context, postID, commentID string) error

	SaveDraft(ctx context.Context, d *entities.Draft) error
	GetDraft(ctx context.Context) (*entities.Draft, error)
}

// CreatePostParams ...
type CreatePostParams struct {
	Author        entities.Author
	Text          string
	Category      string
	OtherCategory string
	Media         []string
	Audio         string
	Hashtags      string
	Location      string
	Visibility    entities.Visibility
	LiveStartTime *time.Time
}

// AddCommentParams ...
type AddCommentParams struct {
	PostID   string
	ParentID *string
	Author   entities.Author
	Text     string
}
