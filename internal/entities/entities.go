// Package entities contains main entities of the feed engine.
package entities

import (
	"time"
)

// Visibility ...
type Visibility string

const (
	// PublicVisibility ...
	PublicVisibility Visibility = "public"
	// FollowersVisibility ...
	FollowersVisibility Visibility = "followers"
	// PrivateVisibility ...
	PrivateVisibility Visibility = "private"
)

// Author is an opaque reference to a user profile, copied into posts and
// comments at creation time and never interpreted by the engine.
type Author struct {
	Name   string
	Avatar string
}

// Post ...
type Post struct {
	ID            string
	Author        Author
	Text          string
	Category      string
	OtherCategory string
	Media         []string
	Audio         string
	Hashtags      string
	Location      string
	Visibility    Visibility
	LiveStartTime *time.Time
	CreatedAt     time.Time
	Likes         map[string]struct{}
	Comments      []*Comment
}

// IsLive reports whether the post represents an ongoing live session.
func (p *Post) IsLive() bool {
	return p.LiveStartTime != nil
}

// Clone returns a deep copy of the post, including its comment trees.
func (p *Post) Clone() *Post {
	out := *p

	if p.LiveStartTime != nil {
		t := *p.LiveStartTime
		out.LiveStartTime = &t
	}

	out.Media = append([]string(nil), p.Media...)

	out.Likes = make(map[string]struct{}, len(p.Likes))
	for k := range p.Likes {
		out.Likes[k] = struct{}{}
	}

	out.Comments = make([]*Comment, len(p.Comments))
	for i, c := range p.Comments {
		out.Comments[i] = c.Clone()
	}

	return &out
}

// Comment is a node of a post's reply tree.
type Comment struct {
	ID      string
	Author  Author
	Text    string
	Likes   int
	Liked   bool
	Replies []*Comment
}

// ToggleLike flips the viewer's liked flag and moves the like counter
// symmetrically. The counter is decremented only when the flag was set, so it
// never goes negative.
func (c *Comment) ToggleLike() {
	if c.Liked {
		c.Likes--
	} else {
		c.Likes++
	}
	c.Liked = !c.Liked
}

// Reply appends a child to the end of the node's reply sequence.
func (c *Comment) Reply(child *Comment) {
	c.Replies = append(c.Replies, child)
}

// Find returns the comment with the given id from the tree rooted at c, or
// nil when the tree does not contain it.
func (c *Comment) Find(id string) *Comment {
	if c.ID == id {
		return c
	}

	for _, r := range c.Replies {
		if found := r.Find(id); found != nil {
			return found
		}
	}

	return nil
}

// Clone returns a deep copy of the tree rooted at c.
func (c *Comment) Clone() *Comment {
	out := *c

	out.Replies = make([]*Comment, len(c.Replies))
	for i, r := range c.Replies {
		out.Replies[i] = r.Clone()
	}

	return &out
}

// Draft is a snapshot of in-progress composition state.
type Draft struct {
	Text          string
	Category      string
	OtherCategory string
	Media         []string
	Audio         string
	Hashtags      string
	Location      string
	Visibility    Visibility
}

// Clone returns a copy of the draft.
func (d *Draft) Clone() *Draft {
	out := *d
	out.Media = append([]string(nil), d.Media...)

	return &out
}
