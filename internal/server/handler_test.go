package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumen-social/lumen/internal/entities"
	"github.com/lumen-social/lumen/internal/feed"
	"github.com/lumen-social/lumen/internal/service"
	"github.com/lumen-social/lumen/internal/service/mock"
	"github.com/lumen-social/lumen/internal/storage"
)

func Test_getFeed(t *testing.T) {
	r, err := http.NewRequest(http.MethodGet, "/v1/feed?category=sports", nil)
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	svc := mock.NewMockService(ctrl)

	post := &entities.Post{
		ID:         "uuid",
		Author:     entities.Author{Name: "name", Avatar: "avatar"},
		Text:       "text",
		Category:   "sports",
		Media:      []string{"m1"},
		Visibility: entities.PublicVisibility,
		CreatedAt:  time.Unix(100, 0),
		Likes:      map[string]struct{}{"a": {}, "b": {}},
		Comments: []*entities.Comment{
			{
				ID:     "c1",
				Author: entities.Author{Name: "name2", Avatar: "avatar2"},
				Text:   "comment",
				Likes:  1,
				Liked:  true,
				Replies: []*entities.Comment{
					{ID: "c2", Author: entities.Author{Name: "name3"}, Text: "reply"},
				},
			},
		},
	}

	svc.EXPECT().Feed(gomock.Any(), []string{"sports"}).Return(&feed.Composition{
		View:         []*feed.RankedPost{{Post: post, Score: 9.5}},
		NewlyArrived: map[int]struct{}{0: {}},
		Revision:     1,
	}, nil)

	router := chi.NewRouter()
	srv := server{s: svc}
	router.Get("/v1/feed", srv.getFeed)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `
{
	"posts": [
		{
			"id": "uuid",
			"author": {"name": "name", "avatar": "avatar"},
			"text": "text",
			"category": "sports",
			"media": ["m1"],
			"visibility": "public",
			"createdAt": 100000,
			"likesCount": 2,
			"comments": [
				{
					"id": "c1",
					"author": {"name": "name2", "avatar": "avatar2"},
					"text": "comment",
					"likes": 1,
					"liked": true,
					"replies": [
						{
							"id": "c2",
							"author": {"name": "name3", "avatar": ""},
							"text": "reply",
							"likes": 0,
							"liked": false,
							"replies": []
						}
					]
				}
			],
			"score": 9.5
		}
	],
	"newlyArrived": [0]
}
	`, w.Body.String())
}

func Test_getFeed_invalidCategory(t *testing.T) {
	r, err := http.NewRequest(http.MethodGet, "/v1/feed?category=bogus", nil)
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	svc := mock.NewMockService(ctrl)

	router := chi.NewRouter()
	srv := server{s: svc}
	router.Get("/v1/feed", srv.getFeed)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func Test_createPost(t *testing.T) {
	body := `{
		"author": {"name": "name", "avatar": "avatar"},
		"text": "text",
		"category": "sports",
		"media": ["m1"],
		"hashtags": "#go",
		"location": "loc",
		"visibility": "followers"
	}`

	r, err := http.NewRequest(http.MethodPost, "/v1/posts", strings.NewReader(body))
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	svc := mock.NewMockService(ctrl)

	svc.EXPECT().CreatePost(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p *storage.CreatePostParams) (*entities.Post, error) {
			assert.Equal(t, "name", p.Author.Name)
			assert.Equal(t, "text", p.Text)
			assert.Equal(t, "sports", p.Category)
			assert.Equal(t, []string{"m1"}, p.Media)
			assert.Equal(t, entities.FollowersVisibility, p.Visibility)

			return &entities.Post{
				ID:         "uuid",
				Author:     entities.Author{Name: p.Author.Name, Avatar: p.Author.Avatar},
				Text:       p.Text,
				Category:   p.Category,
				Media:      p.Media,
				Hashtags:   p.Hashtags,
				Location:   p.Location,
				Visibility: p.Visibility,
				CreatedAt:  time.Unix(100, 0),
				Likes:      map[string]struct{}{},
				Comments:   []*entities.Comment{},
			}, nil
		})

	router := chi.NewRouter()
	srv := server{s: svc}
	router.Post("/v1/posts", srv.createPost)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `
{
	"id": "uuid",
	"author": {"name": "name", "avatar": "avatar"},
	"text": "text",
	"category": "sports",
	"media": ["m1"],
	"hashtags": "#go",
	"location": "loc",
	"visibility": "followers",
	"createdAt": 100000,
	"likesCount": 0,
	"comments": []
}
	`, w.Body.String())
}

func Test_createPost_validation(t *testing.T) {
	tt := []struct {
		name string
		body string
		err  error

		code int
	}{
		{
			name: "unknown category",
			body: `{"author": {"name": "name"}, "text": "text", "category": "bogus"}`,
			code: http.StatusBadRequest,
		},
		{
			name: "missing author",
			body: `{"text": "text", "category": "sports"}`,
			code: http.StatusBadRequest,
		},
		{
			name: "invalid visibility",
			body: `{"author": {"name": "name"}, "text": "text", "category": "sports", "visibility": "everyone"}`,
			code: http.StatusBadRequest,
		},
		{
			name: "empty submission",
			body: `{"author": {"name": "name"}, "category": "sports"}`,
			err:  service.ErrEmptySubmission,
			code: http.StatusUnprocessableEntity,
		},
		{
			name: "missing category specification",
			body: `{"author": {"name": "name"}, "text": "text", "category": "others"}`,
			err:  service.ErrMissingCategorySpecification,
			code: http.StatusUnprocessableEntity,
		},
	}

	for i := range tt {
		tc := tt[i]

		t.Run(tc.name, func(t *testing.T) {
			r, err := http.NewRequest(http.MethodPost, "/v1/posts", strings.NewReader(tc.body))
			require.NoError(t, err)

			ctrl := gomock.NewController(t)
			svc := mock.NewMockService(ctrl)

			if tc.err != nil {
				svc.EXPECT().CreatePost(gomock.Any(), gomock.Any()).Return(nil, tc.err)
			}

			router := chi.NewRouter()
			srv := server{s: svc}
			router.Post("/v1/posts", srv.createPost)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, r)

			assert.Equal(t, tc.code, w.Code)
		})
	}
}

func Test_startLive(t *testing.T) {
	r, err := http.NewRequest(http.MethodPost, "/v1/posts/live", strings.NewReader(`{"author": {"name": "name"}}`))
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	svc := mock.NewMockService(ctrl)

	live := time.Unix(100, 0)
	svc.EXPECT().StartLive(gomock.Any(), entities.Author{Name: "name"}).Return(&entities.Post{
		ID:            "uuid",
		Author:        entities.Author{Name: "name"},
		Category:      "others",
		OtherCategory: "Live",
		Media:         []string{"live://placeholder"},
		Visibility:    entities.PublicVisibility,
		LiveStartTime: &live,
		CreatedAt:     live,
		Likes:         map[string]struct{}{},
		Comments:      []*entities.Comment{},
	}, nil)

	router := chi.NewRouter()
	srv := server{s: svc}
	router.Post("/v1/posts/live", srv.startLive)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `
{
	"id": "uuid",
	"author": {"name": "name", "avatar": ""},
	"text": "",
	"category": "others",
	"otherCategory": "Live",
	"media": ["live://placeholder"],
	"visibility": "public",
	"liveStartTime": 100000,
	"createdAt": 100000,
	"likesCount": 0,
	"comments": []
}
	`, w.Body.String())
}

func Test_getPost(t *testing.T) {
	r, err := http.NewRequest(http.MethodGet, "/v1/posts/uuid", nil)
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	svc := mock.NewMockService(ctrl)

	svc.EXPECT().GetPost(gomock.Any(), "uuid").Return(&entities.Post{
		ID:         "uuid",
		Author:     entities.Author{Name: "name"},
		Text:       "text",
		Category:   "health",
		Visibility: entities.PublicVisibility,
		CreatedAt:  time.Unix(100, 0),
		Likes:      map[string]struct{}{},
		Comments:   []*entities.Comment{},
	}, nil)

	router := chi.NewRouter()
	srv := server{s: svc}
	router.Get("/v1/posts/{postID}", srv.getPost)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `
{
	"id": "uuid",
	"author": {"name": "name", "avatar": ""},
	"text": "text",
	"category": "health",
	"media": [],
	"visibility": "public",
	"createdAt": 100000,
	"likesCount": 0,
	"comments": []
}
	`, w.Body.String())
}

func Test_getPost_notFound(t *testing.T) {
	r, err := http.NewRequest(http.MethodGet, "/v1/posts/uuid", nil)
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	svc := mock.NewMockService(ctrl)

	svc.EXPECT().GetPost(gomock.Any(), "uuid").Return(nil, storage.ErrNotFound)

	router := chi.NewRouter()
	srv := server{s: svc}
	router.Get("/v1/posts/{postID}", srv.getPost)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func Test_toggleLike(t *testing.T) {
	r, err := http.NewRequest(http.MethodPost, "/v1/posts/uuid/likes", strings.NewReader(`{"likedBy": "viewer"}`))
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	svc := mock.NewMockService(ctrl)

	svc.EXPECT().ToggleLike(gomock.Any(), "uuid", "viewer").Return(nil)

	router := chi.NewRouter()
	srv := server{s: svc}
	router.Post("/v1/posts/{postID}/likes", srv.toggleLike)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func Test_addComment(t *testing.T) {
	body := `{"parentId": "parent", "author": {"name": "name"}, "text": "reply"}`

	r, err := http.NewRequest(http.MethodPost, "/v1/posts/uuid/comments", strings.NewReader(body))
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	svc := mock.NewMockService(ctrl)

	svc.EXPECT().AddComment(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p *storage.AddCommentParams) (*entities.Comment, error) {
			assert.Equal(t, "uuid", p.PostID)
			require.NotNil(t, p.ParentID)
			assert.Equal(t, "parent", *p.ParentID)
			assert.Equal(t, "reply", p.Text)

			return &entities.Comment{
				ID:      "c1",
				Author:  p.Author,
				Text:    p.Text,
				Replies: []*entities.Comment{},
			}, nil
		})

	router := chi.NewRouter()
	srv := server{s: svc}
	router.Post("/v1/posts/{postID}/comments", srv.addComment)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `
{
	"id": "c1",
	"author": {"name": "name", "avatar": ""},
	"text": "reply",
	"likes": 0,
	"liked": false,
	"replies": []
}
	`, w.Body.String())
}

func Test_addComment_notFound(t *testing.T) {
	r, err := http.NewRequest(http.MethodPost, "/v1/posts/uuid/comments", strings.NewReader(`{"author": {"name": "name"}, "text": "text"}`))
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	svc := mock.NewMockService(ctrl)

	svc.EXPECT().AddComment(gomock.Any(), gomock.Any()).Return(nil, storage.ErrNotFound)

	router := chi.NewRouter()
	srv := server{s: svc}
	router.Post("/v1/posts/{postID}/comments", srv.addComment)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func Test_toggleCommentLike(t *testing.T) {
	r, err := http.NewRequest(http.MethodPost, "/v1/posts/uuid/comments/c1/likes", nil)
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	svc := mock.NewMockService(ctrl)

	svc.EXPECT().ToggleCommentLike(gomock.Any(), "uuid", "c1").Return(nil)

	router := chi.NewRouter()
	srv := server{s: svc}
	router.Post("/v1/posts/{postID}/comments/{commentID}/likes", srv.toggleCommentLike)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func Test_draft(t *testing.T) {
	body := `{
		"text": "text",
		"category": "others",
		"otherCategory": "gardening",
		"media": ["m1"],
		"audio": "a1",
		"hashtags": "#seeds",
		"location": "loc",
		"visibility": "private"
	}`

	r, err := http.NewRequest(http.MethodPut, "/v1/draft", strings.NewReader(body))
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	svc := mock.NewMockService(ctrl)

	draft := &entities.Draft{
		Text:          "text",
		Category:      "others",
		OtherCategory: "gardening",
		Media:         []string{"m1"},
		Audio:         "a1",
		Hashtags:      "#seeds",
		Location:      "loc",
		Visibility:    entities.PrivateVisibility,
	}

	svc.EXPECT().SaveDraft(gomock.Any(), draft).Return(nil)

	router := chi.NewRouter()
	srv := server{s: svc}
	router.Put("/v1/draft", srv.saveDraft)
	router.Get("/v1/draft", srv.getDraft)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	assert.Equal(t, http.StatusNoContent, w.Code)

	svc.EXPECT().GetDraft(gomock.Any()).Return(draft, nil)

	r, err = http.NewRequest(http.MethodGet, "/v1/draft", nil)
	require.NoError(t, err)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, body, w.Body.String())
}

func Test_getDraft_notFound(t *testing.T) {
	r, err := http.NewRequest(http.MethodGet, "/v1/draft", nil)
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	svc := mock.NewMockService(ctrl)

	svc.EXPECT().GetDraft(gomock.Any()).Return(nil, storage.ErrNotFound)

	router := chi.NewRouter()
	srv := server{s: svc}
	router.Get("/v1/draft", srv.getDraft)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func Test_listCategories(t *testing.T) {
	r, err := http.NewRequest(http.MethodGet, "/v1/categories", nil)
	require.NoError(t, err)

	router := chi.NewRouter()
	srv := server{}
	router.Get("/v1/categories", srv.listCategories)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"sports":{"label":"Sports","color":"#FFA500"}`)
	assert.Contains(t, w.Body.String(), `"others":{"label":"Others","color":"#8D99AE"}`)
}
