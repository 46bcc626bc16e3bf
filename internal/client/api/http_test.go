package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/dmitrijs2005/taskkeeper/internal/common"
)

func newTestClient(handler http.Handler) (*HTTPClient, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewHTTPClient(srv.URL, 5*time.Second), srv
}

func TestRegisterDecodesSession(t *testing.T) {
	var gotBody map[string]string
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/accounts", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{
			"id": "acc-1", "name": "Alice", "email": "alice@example.com", "token": "tok-1",
		})
	}))
	defer srv.Close()

	s, err := c.Register(context.Background(), "Alice", "alice@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "acc-1", s.ID)
	assert.Equal(t, "tok-1", s.Token)
	assert.Equal(t, map[string]string{"name": "Alice", "email": "alice@example.com", "password": "secret1"}, gotBody)
}

func TestLoginInvalidCredentials(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"})
	}))
	defer srv.Close()

	_, err := c.Login(context.Background(), "alice@example.com", "wrong")
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]models.Item{})
	}))
	defer srv.Close()

	c.SetToken("tok-xyz")
	_, err := c.ListItems(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-xyz", gotAuth)
}

func TestNoTokenMeansNoHeader(t *testing.T) {
	var hasAuth bool
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	require.NoError(t, c.Ping(context.Background()))
	assert.False(t, hasAuth)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, want: common.ErrUnauthorized},
		{name: "not found", status: http.StatusNotFound, want: common.ErrNotFound},
		{name: "bad request", status: http.StatusBadRequest, want: common.ErrValidation},
		{name: "server error", status: http.StatusInternalServerError, want: common.ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			_, err := c.ListItems(context.Background())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestTransportFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c := NewHTTPClient(srv.URL, time.Second)
	srv.Close()

	err := c.Ping(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestUpdateItemEscapesID(t *testing.T) {
	var gotPath string
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		json.NewEncoder(w).Encode(models.Item{ID: "x"})
	}))
	defer srv.Close()

	_, err := c.UpdateItem(context.Background(), "a/b", models.ItemPatch{})
	require.NoError(t, err)
	assert.Equal(t, "/items/a%2Fb", gotPath)
}

func TestUpdateItemOmitsUnsetFields(t *testing.T) {
	var raw map[string]json.RawMessage
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		json.NewEncoder(w).Encode(models.Item{ID: "a", Completed: true})
	}))
	defer srv.Close()

	done := true
	_, err := c.UpdateItem(context.Background(), "a", models.ItemPatch{Completed: &done})
	require.NoError(t, err)

	assert.Contains(t, raw, "completed")
	assert.NotContains(t, raw, "title")
}

func TestDeleteItem(t *testing.T) {
	var gotMethod, gotPath string
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		json.NewEncoder(w).Encode(map[string]string{"id": "a"})
	}))
	defer srv.Close()

	require.NoError(t, c.DeleteItem(context.Background(), "a"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/items/a", gotPath)
}
