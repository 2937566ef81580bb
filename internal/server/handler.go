package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi"

	"github.com/lumen-social/lumen/internal/categories"
	"github.com/lumen-social/lumen/internal/entities"
	"github.com/lumen-social/lumen/internal/service"
	"github.com/lumen-social/lumen/internal/storage"
)

func (s server) getFeed(w http.ResponseWriter, r *http.Request) {
	filters, err := extractFiltersFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	composition, err := s.s.Feed(r.Context(), filters)
	if err != nil {
		writeInternalError(w, fmt.Sprintf("failed to compose feed: %s", err.Error()))
		return
	}

	writeOK(w, http.StatusOK, newFeedResponse(composition))
}

func (s server) createPost(w http.ResponseWriter, r *http.Request) {
	var req CreatePostRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	params, err := req.toParams()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	post, err := s.s.CreatePost(r.Context(), params)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptySubmission):
			writeError(w, http.StatusUnprocessableEntity, "post is empty")
		case errors.Is(err, service.ErrMissingCategorySpecification):
			writeError(w, http.StatusUnprocessableEntity, "category specification is required")
		default:
			writeInternalError(w, fmt.Sprintf("failed to create post: %s", err.Error()))
		}
		return
	}

	writeOK(w, http.StatusCreated, toAPIPost(post))
}

func (s server) startLive(w http.ResponseWriter, r *http.Request) {
	var req StartLiveRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	if req.Author.Name == "" {
		writeError(w, http.StatusBadRequest, "author name is required")
		return
	}

	post, err := s.s.StartLive(r.Context(), entities.Author{Name: req.Author.Name, Avatar: req.Author.Avatar})
	if err != nil {
		writeInternalError(w, fmt.Sprintf("failed to start live session: %s", err.Error()))
		return
	}

	writeOK(w, http.StatusCreated, toAPIPost(post))
}

func (s server) getPost(w http.ResponseWriter, r *http.Request) {
	post, err := s.s.GetPost(r.Context(), chi.URLParam(r, "postID"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "post not found")
			return
		}
		writeInternalError(w, fmt.Sprintf("failed to get post: %s", err.Error()))
		return
	}

	writeOK(w, http.StatusOK, toAPIPost(post))
}

func (s server) toggleLike(w http.ResponseWriter, r *http.Request) {
	var req ToggleLikeRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	if req.LikedBy == "" {
		writeError(w, http.StatusBadRequest, "likedBy is required")
		return
	}

	if err := s.s.ToggleLike(r.Context(), chi.URLParam(r, "postID"), req.LikedBy); err != nil {
		writeInternalError(w, fmt.Sprintf("failed to toggle like: %s", err.Error()))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s server) addComment(w http.ResponseWriter, r *http.Request) {
	var req AddCommentRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	if req.Author.Name == "" {
		writeError(w, http.StatusBadRequest, "author name is required")
		return
	}

	comment, err := s.s.AddComment(r.Context(), &storage.AddCommentParams{
		PostID:   chi.URLParam(r, "postID"),
		ParentID: req.ParentID,
		Author:   entities.Author{Name: req.Author.Name, Avatar: req.Author.Avatar},
		Text:     req.Text,
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "post or comment not found")
			return
		}
		writeInternalError(w, fmt.Sprintf("failed to add comment: %s", err.Error()))
		return
	}

	writeOK(w, http.StatusCreated, toAPIComments([]*entities.Comment{comment})[0])
}

func (s server) toggleCommentLike(w http.ResponseWriter, r *http.Request) {
	postID, commentID := chi.URLParam(r, "postID"), chi.URLParam(r, "commentID")

	if err := s.s.ToggleCommentLike(r.Context(), postID, commentID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "post or comment not found")
			return
		}
		writeInternalError(w, fmt.Sprintf("failed to toggle comment like: %s", err.Error()))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s server) saveDraft(w http.ResponseWriter, r *http.Request) {
	var req Draft
	if !decodeRequest(w, r, &req) {
		return
	}

	draft, err := req.toEntity()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.s.SaveDraft(r.Context(), draft); err != nil {
		writeInternalError(w, fmt.Sprintf("failed to save draft: %s", err.Error()))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s server) getDraft(w http.ResponseWriter, r *http.Request) {
	draft, err := s.s.GetDraft(r.Context())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no draft saved")
			return
		}
		writeInternalError(w, fmt.Sprintf("failed to get draft: %s", err.Error()))
		return
	}

	writeOK(w, http.StatusOK, toAPIDraft(draft))
}

func (s server) listCategories(w http.ResponseWriter, r *http.Request) {
	writeOK(w, http.StatusOK, toAPICategories())
}

func extractFiltersFromQuery(q url.Values) ([]string, error) {
	filters := q["category"]

	for _, f := range filters {
		if !categories.IsKnown(f) {
			return nil, fmt.Errorf("%w: invalid category %q", errInvalidRequest, f)
		}
	}

	return filters, nil
}
