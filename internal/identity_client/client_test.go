package identity_client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/internal/identity_client"
)

func TestVerifyToken_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/api/v1/tokens/verify", r.URL.Path)

		var req identity_client.VerifyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "some-token", req.Token)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"uid":"u1","email":"u1@example.com"}`))
	}))
	defer srv.Close()

	client := identity_client.NewClient(srv.URL)
	ident, err := client.VerifyToken(context.Background(), "some-token")
	require.NoError(t, err)

	assert.Equal(t, "u1", ident.UID)
	assert.Equal(t, "u1@example.com", ident.Email)
}

func TestVerifyToken_NoEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"uid":"u2"}`))
	}))
	defer srv.Close()

	client := identity_client.NewClient(srv.URL)
	ident, err := client.VerifyToken(context.Background(), "some-token")
	require.NoError(t, err)

	assert.Equal(t, "u2", ident.UID)
	assert.Empty(t, ident.Email)
}

func TestVerifyToken_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := identity_client.NewClient(srv.URL)
	_, err := client.VerifyToken(context.Background(), "bad-token")
	assert.ErrorIs(t, err, identity_client.ErrTokenRejected)
}

func TestVerifyToken_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := identity_client.NewClient(srv.URL)
	_, err := client.VerifyToken(context.Background(), "some-token")
	require.Error(t, err)
	assert.NotErrorIs(t, err, identity_client.ErrTokenRejected)
}

func TestVerifyToken_Unreachable(t *testing.T) {
	client := identity_client.NewClient("http://127.0.0.1:1")
	_, err := client.VerifyToken(context.Background(), "some-token")
	assert.Error(t, err)
}
