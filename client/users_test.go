package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestUsersClient_List(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"name":"John Doe","email":"john@example.com","phone":"1234567890","status":"active","policies":2,"joinDate":"2024-01-01"}]`))
	}))
	defer srv.Close()

	res := NewUsersClient(srv.URL+"/", zap.NewNop()).List(context.Background())
	assert.False(t, res.Degraded)
	require.Len(t, res.Users, 1)
	assert.Equal(t, "John Doe", res.Users[0].Name)
	assert.Equal(t, "2024-01-01", res.Users[0].JoinDate)
}

func TestUsersClient_FallsBackOnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	res := NewUsersClient(srv.URL, zap.NewNop()).List(context.Background())
	assert.True(t, res.Degraded)
	assert.Contains(t, res.Err, "status 500")
	require.Len(t, res.Users, 3)
	assert.Equal(t, "Alice Johnson", res.Users[2].Name)
}

func TestUsersClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	res := NewUsersClient(url, zap.NewNop()).List(context.Background())
	assert.True(t, res.Degraded)
	assert.NotEmpty(t, res.Err)
	assert.Equal(t, PlaceholderUsers, res.Users)
}

func TestUsersClient_EmptyListShowsPlaceholders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	res := NewUsersClient(srv.URL, zap.NewNop()).List(context.Background())
	assert.True(t, res.Degraded)
	assert.Empty(t, res.Err)
	assert.Len(t, res.Users, 3)
}
