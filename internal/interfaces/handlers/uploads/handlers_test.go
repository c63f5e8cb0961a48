package uploads

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	uploadsvc "portfolio-backend/internal/application/uploads"
	"portfolio-backend/internal/application/uploads/uploadstest"
	"portfolio-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSignTest(storage *uploadstest.Storage) *fiber.App {
	h := &Handlers{Service: &uploadsvc.Service{Client: storage, SupabaseURL: "https://x.supabase.co", Bucket: "portfolio"}}
	app := fiber.New()
	app.Post("/api/uploads/sign", h.Sign)
	return app
}

func TestSign(t *testing.T) {
	app := setupSignTest(&uploadstest.Storage{})
	resp, err := app.Test(testutil.JSONRequest(http.MethodPost, "/api/uploads/sign", map[string]string{"file_name": "shot.PNG", "folder": "projects"}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var res uploadsvc.UploadResult
	testutil.DecodeJSON(t, resp, &res)
	assert.True(t, strings.HasPrefix(res.Path, "projects/"))
	assert.True(t, strings.HasSuffix(res.Path, ".png"))
	assert.Equal(t, "https://x.supabase.co/storage/v1/object/public/portfolio/"+res.Path, res.PublicURL)
	assert.Contains(t, res.UploadURL, "token=")
}

func TestSign_BadRequests(t *testing.T) {
	app := setupSignTest(&uploadstest.Storage{})
	for _, body := range []map[string]string{
		{"folder": "projects"},
		{"file_name": "a.png", "folder": "../secrets"},
	} {
		resp, err := app.Test(testutil.JSONRequest(http.MethodPost, "/api/uploads/sign", body))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	}
}

func TestSign_StorageFailure(t *testing.T) {
	app := setupSignTest(&uploadstest.Storage{Err: errors.New("403 forbidden")})
	resp, err := app.Test(testutil.JSONRequest(http.MethodPost, "/api/uploads/sign", map[string]string{"file_name": "a.png", "folder": "profile"}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
