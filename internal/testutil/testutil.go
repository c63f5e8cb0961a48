// Package testutil builds in-memory backends and HTTP requests for package tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"portfolio-backend/internal/infrastructure/database"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// DB returns a migrated in-memory SQLite database. The pool is pinned to one
// connection because every new :memory: connection is a fresh, empty database.
func DB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.AutoMigrate(db))
	return db
}

// Redis returns a client backed by miniredis, closed when the test ends.
func Redis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	return rdb, mr
}

// JSONRequest builds a request with a JSON body.
func JSONRequest(method, target string, body interface{}) *http.Request {
	var r io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// File is one part of a multipart test request.
type File struct {
	Field       string
	Name        string
	ContentType string
	Body        []byte
}

// MultipartRequest builds a multipart/form-data request with data encoded as
// JSON in the "data" field, followed by files.
func MultipartRequest(t *testing.T, method, target string, data interface{}, files ...File) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if data != nil {
		b, err := json.Marshal(data)
		require.NoError(t, err)
		require.NoError(t, w.WriteField("data", string(b)))
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, f.Field, f.Name))
		h.Set("Content-Type", f.ContentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.Body)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

// DecodeJSON reads the response body into out.
func DecodeJSON(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}
