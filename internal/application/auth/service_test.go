package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"portfolio-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedAdminAndAuthenticate(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()

	created, err := SeedAdmin(ctx, db, "Admin@Site.test", "s3cret")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = SeedAdmin(ctx, db, "admin@site.test", "other")
	require.NoError(t, err)
	assert.False(t, created, "existing admin is not overwritten")

	a := &GormAuthenticator{DB: db}
	acc, err := a.Authenticate(ctx, "admin@site.test", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "admin@site.test", acc.Email)
	assert.NotEmpty(t, acc.ID)

	_, err = a.Authenticate(ctx, "admin@site.test", "other")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = a.Authenticate(ctx, "nobody@site.test", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = a.Authenticate(ctx, "", "")
	assert.ErrorIs(t, err, ErrEmailPasswordRequired)
}

func TestSeedAdmin_SkipsWhenUnset(t *testing.T) {
	created, err := SeedAdmin(context.Background(), testutil.DB(t), "", "")
	require.NoError(t, err)
	assert.False(t, created)
}

func TestVerifyUser(t *testing.T) {
	_, err := VerifyUser(nil)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = VerifyUser(map[string]interface{}{"email": "a@b.c"})
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	acc, err := VerifyUser(map[string]interface{}{"id": "u1", "email": "a@b.c"})
	require.NoError(t, err)
	assert.Equal(t, &Account{ID: "u1", Email: "a@b.c"}, acc)
}

func TestSupabaseAuthenticator(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "anon", r.Header.Get("apikey"))
		var in LoginInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in.Password != "good" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"tok","user":{"id":"u-1","email":"admin@site.test"}}`))
	}))
	defer srv.Close()

	a := &SupabaseAuthenticator{BaseURL: srv.URL, AnonKey: "anon"}
	acc, err := a.Authenticate(context.Background(), "admin@site.test", "good")
	require.NoError(t, err)
	assert.Equal(t, "u-1", acc.ID)

	_, err = a.Authenticate(context.Background(), "admin@site.test", "bad")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
