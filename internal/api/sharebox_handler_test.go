package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eurachacha/achacha-api/internal/api/shared"
	"github.com/eurachacha/achacha-api/internal/domain"
	"github.com/eurachacha/achacha-api/internal/domain/sharing"
	"github.com/eurachacha/achacha-api/internal/mocks"
	"github.com/eurachacha/achacha-api/internal/service/sharebox"
	"github.com/eurachacha/achacha-api/internal/store"
)

// newShareBoxRouter mounts the handler under its real routes, with a
// middleware that injects the given user ID the way the auth middleware would.
func newShareBoxRouter(service *mocks.MockShareBoxService, userID uuid.UUID) http.Handler {
	handler := NewShareBoxHandler(service, nil)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := req.Context()
			if userID != uuid.Nil {
				ctx = context.WithValue(ctx, shared.UserIDContextKey, userID)
			}
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})

	r.Route("/shareboxes", func(r chi.Router) {
		r.Post("/", handler.Create)
		r.Post("/join", handler.Join)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/settings", handler.GetSettings)
			r.Patch("/name", handler.UpdateName)
			r.Patch("/participation-setting", handler.UpdateParticipationSetting)
			r.Get("/users", handler.ListParticipants)
			r.Get("/gifticons", handler.ListGifticons)
			r.Delete("/leave", handler.Leave)
			r.Post("/gifticons/{gifticonID}", handler.ShareGifticon)
			r.Delete("/gifticons/{gifticonID}", handler.UnshareGifticon)
		})
	})
	return r
}

func doRequest(
	t *testing.T,
	router http.Handler,
	method, path string,
	payload interface{},
) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func mustNewBox(t *testing.T, ownerID uuid.UUID) *domain.ShareBox {
	t.Helper()
	box, err := domain.NewShareBox(ownerID, "Lunch crew")
	require.NoError(t, err)
	return box
}

func TestShareBoxCreate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("created", func(t *testing.T) {
		box := mustNewBox(t, userID)
		service := &mocks.MockShareBoxService{Box: box}
		router := newShareBoxRouter(service, userID)

		recorder := doRequest(t, router, "POST", "/shareboxes",
			map[string]interface{}{"name": "Lunch crew"})

		require.Equal(t, http.StatusCreated, recorder.Code)
		var resp ShareBoxResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		assert.Equal(t, box.ID, resp.ID)
		assert.Equal(t, box.InviteCode, resp.InviteCode)
	})

	t.Run("invalid name", func(t *testing.T) {
		service := &mocks.MockShareBoxService{Err: sharing.ErrInvalidShareBoxName}
		router := newShareBoxRouter(service, userID)

		recorder := doRequest(t, router, "POST", "/shareboxes",
			map[string]interface{}{"name": "far too long a share box name"})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("missing name", func(t *testing.T) {
		service := &mocks.MockShareBoxService{}
		router := newShareBoxRouter(service, userID)

		recorder := doRequest(t, router, "POST", "/shareboxes", map[string]interface{}{})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		service := &mocks.MockShareBoxService{}
		router := newShareBoxRouter(service, uuid.Nil)

		recorder := doRequest(t, router, "POST", "/shareboxes",
			map[string]interface{}{"name": "Lunch crew"})

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestShareBoxJoin(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("joined", func(t *testing.T) {
		box := mustNewBox(t, uuid.New())
		service := &mocks.MockShareBoxService{Box: box}
		router := newShareBoxRouter(service, userID)

		recorder := doRequest(t, router, "POST", "/shareboxes/join",
			map[string]interface{}{"invite_code": box.InviteCode})

		require.Equal(t, http.StatusOK, recorder.Code)
		var resp ShareBoxResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		assert.Equal(t, box.ID, resp.ID)
	})

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"unknown invite code", store.ErrShareBoxNotFound, http.StatusNotFound},
		{"closed box", sharebox.ErrParticipationClosed, http.StatusForbidden},
		{"already participant", sharebox.ErrAlreadyParticipant, http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &mocks.MockShareBoxService{Err: tt.err}
			router := newShareBoxRouter(service, userID)

			recorder := doRequest(t, router, "POST", "/shareboxes/join",
				map[string]interface{}{"invite_code": "SOMECODE42"})

			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}

func TestShareBoxGetSettings(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	box := mustNewBox(t, userID)

	t.Run("ok", func(t *testing.T) {
		service := &mocks.MockShareBoxService{Box: box}
		router := newShareBoxRouter(service, userID)

		recorder := doRequest(t, router, "GET", "/shareboxes/"+box.ID.String()+"/settings", nil)

		require.Equal(t, http.StatusOK, recorder.Code)
		var resp ShareBoxResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		assert.Equal(t, box.InviteCode, resp.InviteCode)
		assert.True(t, resp.AllowParticipation)
	})

	t.Run("not a participant", func(t *testing.T) {
		service := &mocks.MockShareBoxService{Err: sharebox.ErrNotParticipant}
		router := newShareBoxRouter(service, userID)

		recorder := doRequest(t, router, "GET", "/shareboxes/"+box.ID.String()+"/settings", nil)

		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		service := &mocks.MockShareBoxService{Box: box}
		router := newShareBoxRouter(service, userID)

		recorder := doRequest(t, router, "GET", "/shareboxes/not-a-uuid/settings", nil)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestShareBoxUpdateName(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	boxID := uuid.New()

	t.Run("renamed", func(t *testing.T) {
		service := &mocks.MockShareBoxService{}
		router := newShareBoxRouter(service, userID)

		recorder := doRequest(t, router, "PATCH", "/shareboxes/"+boxID.String()+"/name",
			map[string]interface{}{"name": "New name"})

		assert.Equal(t, http.StatusNoContent, recorder.Code)
	})

	t.Run("not the owner", func(t *testing.T) {
		service := &mocks.MockShareBoxService{Err: sharing.ErrNotShareBoxOwner}
		router := newShareBoxRouter(service, userID)

		recorder := doRequest(t, router, "PATCH", "/shareboxes/"+boxID.String()+"/name",
			map[string]interface{}{"name": "New name"})

		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("invalid name", func(t *testing.T) {
		service := &mocks.MockShareBoxService{Err: sharing.ErrInvalidShareBoxName}
		router := newShareBoxRouter(service, userID)

		recorder := doRequest(t, router, "PATCH", "/shareboxes/"+boxID.String()+"/name",
			map[string]interface{}{"name": "x"})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestShareBoxUpdateParticipationSetting(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	boxID := uuid.New()

	t.Run("closed", func(t *testing.T) {
		var gotAllow *bool
		service := &mocks.MockShareBoxService{
			UpdateParticipationSettingFn: func(ctx context.Context, userID, shareBoxID uuid.UUID, allow bool) error {
				gotAllow = &allow
				return nil
			},
		}
		router := newShareBoxRouter(service, userID)

		recorder := doRequest(t, router, "PATCH",
			"/shareboxes/"+boxID.String()+"/participation-setting",
			map[string]interface{}{"allow_participation": false})

		assert.Equal(t, http.StatusNoContent, recorder.Code)
		require.NotNil(t, gotAllow)
		assert.False(t, *gotAllow)
	})

	t.Run("missing flag", func(t *testing.T) {
		service := &mocks.MockShareBoxService{}
		router := newShareBoxRouter(service, userID)

		recorder := doRequest(t, router, "PATCH",
			"/shareboxes/"+boxID.String()+"/participation-setting",
			map[string]interface{}{})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestShareBoxListParticipants(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	boxID := uuid.New()

	t.Run("ok", func(t *testing.T) {
		owner := &domain.User{ID: uuid.New(), Email: "owner@example.com", Name: "Owner"}
		member := &domain.User{ID: userID, Email: "member@example.com", Name: "Member"}
		service := &mocks.MockShareBoxService{Users: []*domain.User{owner, member}}
		router := newShareBoxRouter(service, userID)

		recorder := doRequest(t, router, "GET", "/shareboxes/"+boxID.String()+"/users", nil)

		require.Equal(t, http.StatusOK, recorder.Code)
		var resp []ParticipantResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		require.Len(t, resp, 2)
		assert.Equal(t, owner.ID, resp[0].ID)
		assert.Equal(t, member.ID, resp[1].ID)
	})

	t.Run("box not found", func(t *testing.T) {
		service := &mocks.MockShareBoxService{Err: store.ErrShareBoxNotFound}
		router := newShareBoxRouter(service, userID)

		recorder := doRequest(t, router, "GET", "/shareboxes/"+boxID.String()+"/users", nil)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestShareBoxListGifticons(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	boxID := uuid.New()

	gifticon, err := domain.NewGifticon(userID, "Americano", domain.GifticonTypeProduct, 0,
		time.Now().UTC().AddDate(0, 1, 0))
	require.NoError(t, err)
	gifticon.ShareTo(boxID)

	service := &mocks.MockShareBoxService{Gifticons: []*domain.Gifticon{gifticon}}
	router := newShareBoxRouter(service, userID)

	recorder := doRequest(t, router, "GET", "/shareboxes/"+boxID.String()+"/gifticons", nil)

	require.Equal(t, http.StatusOK, recorder.Code)
	var resp []GifticonResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, gifticon.ID, resp[0].ID)
	assert.Equal(t, "product", resp[0].Type)
}

func TestShareBoxShareGifticon(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	boxID := uuid.New()
	gifticonID := uuid.New()
	path := "/shareboxes/" + boxID.String() + "/gifticons/" + gifticonID.String()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"shared", nil, http.StatusNoContent},
		{"not a participant", sharebox.ErrNotParticipant, http.StatusForbidden},
		{"not the owner", sharebox.ErrGifticonNotOwned, http.StatusForbidden},
		{"already shared", sharing.ErrGifticonAlreadyShared, http.StatusConflict},
		{"gifticon not found", store.ErrGifticonNotFound, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &mocks.MockShareBoxService{Err: tt.err}
			router := newShareBoxRouter(service, userID)

			recorder := doRequest(t, router, "POST", path, nil)

			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}

func TestShareBoxUnshareGifticon(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	boxID := uuid.New()
	gifticonID := uuid.New()
	path := "/shareboxes/" + boxID.String() + "/gifticons/" + gifticonID.String()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"unshared", nil, http.StatusNoContent},
		{"not shared here", sharing.ErrGifticonNotShared, http.StatusConflict},
		{"not a participant", sharebox.ErrNotParticipant, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &mocks.MockShareBoxService{Err: tt.err}
			router := newShareBoxRouter(service, userID)

			recorder := doRequest(t, router, "DELETE", path, nil)

			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}

func TestShareBoxLeave(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	boxID := uuid.New()
	path := "/shareboxes/" + boxID.String() + "/leave"

	t.Run("left", func(t *testing.T) {
		service := &mocks.MockShareBoxService{}
		router := newShareBoxRouter(service, userID)

		recorder := doRequest(t, router, "DELETE", path, nil)

		assert.Equal(t, http.StatusNoContent, recorder.Code)
	})

	t.Run("not a participant", func(t *testing.T) {
		service := &mocks.MockShareBoxService{Err: sharebox.ErrNotParticipant}
		router := newShareBoxRouter(service, userID)

		recorder := doRequest(t, router, "DELETE", path, nil)

		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})
}
