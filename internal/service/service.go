// Package service contains interface for the engine business-logic.
package service

import (
	"context"
	"errors"

	"github.com/lumen-social/lumen/internal/entities"
	"github.com/lumen-social/lumen/internal/feed"
	"github.com/lumen-social/lumen/internal/storage"
)

//go:generate mockgen -destination=./mock/service.go -package=mock -source=service.go

// ErrEmptySubmission returned when a publish attempt carries no text, no media and no audio.
var ErrEmptySubmission = errors.New("empty submission")

// ErrMissingCategorySpecification returned when the catch-all category comes without a free-text label.
var ErrMissingCategorySpecification = errors.New("missing category specification")

// Service ...
type Service interface {
	CreatePost(ctx context.Context, p *storage.CreatePostParams) (*entities.Post, error)
	StartLive(ctx context.Context, author entities.Author) (*entities.Post, error)
	GetPost(ctx context.Context, id string) (*entities.Post, error)

	ToggleLike(ctx context.Context, postID, likedBy string) error
	AddComment(ctx context.Context, p *storage.AddCommentParams) (*entities.Comment, error)
	ToggleCommentLike(ctx context.Context, postID, commentID string) error

	Feed(ctx context.Context, filters []string) (*feed.Composition, error)

	SaveDraft(ctx context.Context, d *entities.Draft) error
	GetDraft(ctx context.Context) (*entities.Draft, error)
}
