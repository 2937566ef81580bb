// Package feed derives ranked and filtered views over the canonical post
// collection. Everything here is a pure function of its inputs; views are
// disposable and recomputed on demand.
package feed

import (
	"sort"
	"time"

	"github.com/lumen-social/lumen/internal/entities"
)

const (
	likeWeight    = 2
	commentWeight = 3
	liveBonus     = 5
)

// RankedPost is a post annotated with its relevance score. The score is
// derived state, never persisted as ground truth.
type RankedPost struct {
	*entities.Post
	Score float64
}

// Score computes the relevance score of a post at the given instant.
// The comment term counts top-level entries only, not nested replies.
func Score(p *entities.Post, now time.Time) float64 {
	ageMinutes := now.Sub(p.CreatedAt).Minutes()

	score := float64(likeWeight*len(p.Likes)+commentWeight*len(p.Comments)) - ageMinutes
	if p.IsLive() {
		score += liveBonus
	}

	return score
}

// Rank scores every post and returns them ordered by descending score. The
// sort is stable, so equal scores keep the input (most-recent-first) order.
func Rank(posts []*entities.Post, now time.Time) []*RankedPost {
	out := make([]*RankedPost, len(posts))
	for i, p := range posts {
		out[i] = &RankedPost{Post: p, Score: Score(p, now)}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	return out
}
