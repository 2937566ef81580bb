package server

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lumen-social/lumen/internal/categories"
	"github.com/lumen-social/lumen/internal/entities"
	"github.com/lumen-social/lumen/internal/feed"
	"github.com/lumen-social/lumen/internal/storage"
)

var errInvalidRequest = errors.New("invalid request")

// Error ...
type Error struct {
	Error string `json:"error"`
}

// Author ...
type Author struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Comment ...
type Comment struct {
	ID      string    `json:"id"`
	Author  Author    `json:"author"`
	Text    string    `json:"text"`
	Likes   int       `json:"likes"`
	Liked   bool      `json:"liked"`
	Replies []Comment `json:"replies"`
}

// Post ...
type Post struct {
	ID            string    `json:"id"`
	Author        Author    `json:"author"`
	Text          string    `json:"text"`
	Category      string    `json:"category"`
	OtherCategory string    `json:"otherCategory,omitempty"`
	Media         []string  `json:"media"`
	Audio         string    `json:"audio,omitempty"`
	Hashtags      string    `json:"hashtags,omitempty"`
	Location      string    `json:"location,omitempty"`
	Visibility    string    `json:"visibility"`
	LiveStartTime *int64    `json:"liveStartTime,omitempty"`
	CreatedAt     int64     `json:"createdAt"`
	LikesCount    int       `json:"likesCount"`
	Comments      []Comment `json:"comments"`
}

// FeedPost is a post with its relevance score, as served by the feed.
type FeedPost struct {
	Post
	Score float64 `json:"score"`
}

// FeedResponse ...
type FeedResponse struct {
	Posts []FeedPost `json:"posts"`
	// NewlyArrived holds indices into the ranked list which arrived since the
	// previous post-set change, valid for the highlight window.
	NewlyArrived []int `json:"newlyArrived"`
}

// CreatePostRequest ...
type CreatePostRequest struct {
	Author        Author   `json:"author"`
	Text          string   `json:"text"`
	Category      string   `json:"category"`
	OtherCategory string   `json:"otherCategory"`
	Media         []string `json:"media"`
	Audio         string   `json:"audio"`
	Hashtags      string   `json:"hashtags"`
	Location      string   `json:"location"`
	Visibility    string   `json:"visibility"`
}

// StartLiveRequest ...
type StartLiveRequest struct {
	Author Author `json:"author"`
}

// ToggleLikeRequest ...
type ToggleLikeRequest struct {
	LikedBy string `json:"likedBy"`
}

// AddCommentRequest ...
type AddCommentRequest struct {
	ParentID *string `json:"parentId"`
	Author   Author  `json:"author"`
	Text     string  `json:"text"`
}

// Draft ...
type Draft struct {
	Text          string   `json:"text"`
	Category      string   `json:"category"`
	OtherCategory string   `json:"otherCategory"`
	Media         []string `json:"media"`
	Audio         string   `json:"audio"`
	Hashtags      string   `json:"hashtags"`
	Location      string   `json:"location"`
	Visibility    string   `json:"visibility"`
}

// Category ...
type Category struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

func (r CreatePostRequest) toParams() (*storage.CreatePostParams, error) {
	if r.Author.Name == "" {
		return nil, fmt.Errorf("%w: author name is required", errInvalidRequest)
	}

	if !categories.IsKnown(r.Category) {
		return nil, fmt.Errorf("%w: invalid category", errInvalidRequest)
	}

	visibility, err := toVisibility(r.Visibility)
	if err != nil {
		return nil, err
	}

	return &storage.CreatePostParams{
		Author:        entities.Author{Name: r.Author.Name, Avatar: r.Author.Avatar},
		Text:          r.Text,
		Category:      r.Category,
		OtherCategory: r.OtherCategory,
		Media:         r.Media,
		Audio:         r.Audio,
		Hashtags:      r.Hashtags,
		Location:      r.Location,
		Visibility:    visibility,
	}, nil
}

func toVisibility(s string) (entities.Visibility, error) {
	switch v := entities.Visibility(s); v {
	case entities.PublicVisibility, entities.FollowersVisibility, entities.PrivateVisibility:
		return v, nil
	case "":
		return entities.PublicVisibility, nil
	default:
		return "", fmt.Errorf("%w: invalid visibility", errInvalidRequest)
	}
}

func toAPIPost(p *entities.Post) *Post {
	if p == nil {
		return nil
	}

	out := &Post{
		ID:            p.ID,
		Author:        Author{Name: p.Author.Name, Avatar: p.Author.Avatar},
		Text:          p.Text,
		Category:      p.Category,
		OtherCategory: p.OtherCategory,
		Media:         p.Media,
		Audio:         p.Audio,
		Hashtags:      p.Hashtags,
		Location:      p.Location,
		Visibility:    string(p.Visibility),
		CreatedAt:     p.CreatedAt.UnixMilli(),
		LikesCount:    len(p.Likes),
		Comments:      toAPIComments(p.Comments),
	}

	if out.Media == nil {
		out.Media = []string{}
	}

	if p.LiveStartTime != nil {
		ms := p.LiveStartTime.UnixMilli()
		out.LiveStartTime = &ms
	}

	return out
}

func toAPIComments(cc []*entities.Comment) []Comment {
	out := make([]Comment, len(cc))
	for i, c := range cc {
		out[i] = Comment{
			ID:      c.ID,
			Author:  Author{Name: c.Author.Name, Avatar: c.Author.Avatar},
			Text:    c.Text,
			Likes:   c.Likes,
			Liked:   c.Liked,
			Replies: toAPIComments(c.Replies),
		}
	}

	return out
}

func newFeedResponse(c *feed.Composition) FeedResponse {
	out := FeedResponse{
		Posts:        make([]FeedPost, len(c.View)),
		NewlyArrived: make([]int, 0, len(c.NewlyArrived)),
	}

	for i, p := range c.View {
		out.Posts[i] = FeedPost{Post: *toAPIPost(p.Post), Score: p.Score}
	}

	for i := range c.NewlyArrived {
		out.NewlyArrived = append(out.NewlyArrived, i)
	}
	sort.Ints(out.NewlyArrived)

	return out
}

func toAPIDraft(d *entities.Draft) Draft {
	out := Draft{
		Text:          d.Text,
		Category:      d.Category,
		OtherCategory: d.OtherCategory,
		Media:         d.Media,
		Audio:         d.Audio,
		Hashtags:      d.Hashtags,
		Location:      d.Location,
		Visibility:    string(d.Visibility),
	}

	if out.Media == nil {
		out.Media = []string{}
	}

	return out
}

func (r Draft) toEntity() (*entities.Draft, error) {
	visibility, err := toVisibility(r.Visibility)
	if err != nil {
		return nil, err
	}

	return &entities.Draft{
		Text:          r.Text,
		Category:      r.Category,
		OtherCategory: r.OtherCategory,
		Media:         r.Media,
		Audio:         r.Audio,
		Hashtags:      r.Hashtags,
		Location:      r.Location,
		Visibility:    visibility,
	}, nil
}

func toAPICategories() map[string]Category {
	out := make(map[string]Category, len(categories.Registry))
	for k, v := range categories.Registry {
		out[k] = Category{Label: v.Label, Color: v.Color}
	}

	return out
}
