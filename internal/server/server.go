// Package server contains the HTTP hosting layer of the feed engine. It is
// the single writer: every mutation enters through these handlers, and every
// read triggers the pull-based rank/compose pipeline.
package server

import (
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"

	mm "github.com/lumen-social/lumen/internal/middleware"
	"github.com/lumen-social/lumen/internal/service"
)

const maxBodySize = 64 * 1024

type server struct {
	s service.Service
}

// SetupRouter setups handlers to chi router.
func SetupRouter(s service.Service, r chi.Router, timeout time.Duration) {
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.StripSlashes,
		cors.AllowAll().Handler,
		middleware.Recoverer,
		middleware.Timeout(timeout),
	)

	srv := server{
		s: s,
	}

	r.Route("/v1", func(r chi.Router) {
		r.Get("/feed", srv.getFeed)
		r.Post("/posts", srv.createPost)
		r.Post("/posts/live", srv.startLive)
		r.Get("/posts/{postID}", srv.getPost)
		r.Post("/posts/{postID}/likes", srv.toggleLike)
		r.Post("/posts/{postID}/comments", srv.addComment)
		r.Post("/posts/{postID}/comments/{commentID}/likes", srv.toggleCommentLike)
		r.Put("/draft", srv.saveDraft)
		r.Get("/draft", srv.getDraft)
		r.Get("/categories", mm.Cached(10*time.Minute, srv.listCategories))
	})
}
