package reviewcodes

import (
	"net/http"
	"testing"

	codesvc "portfolio-backend/internal/application/reviewcodes"
	uploadsvc "portfolio-backend/internal/application/uploads"
	"portfolio-backend/internal/application/uploads/uploadstest"
	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/middleware"
	"portfolio-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupReviewCodesTest(t *testing.T, signedIn bool) (*fiber.App, *gorm.DB, *uploadstest.Storage) {
	db := testutil.DB(t)
	storage := &uploadstest.Storage{}
	h := &Handlers{
		Service: &codesvc.Service{DB: db, DefaultAvatar: "https://cdn.test/default.jpg"},
		Uploads: &uploadsvc.Service{Client: storage, SupabaseURL: "https://x.supabase.co", Bucket: "portfolio"},
	}
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if signedIn {
			c.Locals("user", map[string]interface{}{"id": "admin"})
		}
		return c.Next()
	})
	app.Get("/api/review-codes/check/:code", h.Check)
	app.Post("/api/reviews/submit", h.Submit)
	app.Get("/api/review-codes", middleware.RequireAuth(), h.List)
	app.Post("/api/review-codes", middleware.RequireAuth(), h.Generate)
	app.Delete("/api/review-codes/:id", middleware.RequireAuth(), h.Delete)
	return app, db, storage
}

func submit(t *testing.T, app *fiber.App, body map[string]interface{}) (*http.Response, map[string]interface{}) {
	resp, err := app.Test(testutil.JSONRequest(http.MethodPost, "/api/reviews/submit", body))
	require.NoError(t, err)
	var out map[string]interface{}
	testutil.DecodeJSON(t, resp, &out)
	return resp, out
}

func TestSubmit_RedeemsOnce(t *testing.T) {
	app, db, _ := setupReviewCodesTest(t, false)
	require.NoError(t, db.Create(&domain.ReviewCode{Code: "REV-ABC123", ClientName: "Acme"}).Error)

	resp, body := submit(t, app, map[string]interface{}{"code": "REV-ABC123", "name": "Bob", "review": "Great work!", "avatar": nil})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	var r domain.Review
	require.NoError(t, db.First(&r, "name = ?", "Bob").Error)
	assert.Equal(t, "Great work!", r.Review)
	assert.Equal(t, "https://cdn.test/default.jpg", r.Avatar)

	var rc domain.ReviewCode
	require.NoError(t, db.First(&rc, "code = ?", "REV-ABC123").Error)
	assert.True(t, rc.IsUsed)

	resp, body = submit(t, app, map[string]interface{}{"code": "REV-ABC123", "name": "Bob", "review": "Again"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "This code has already been used!", body["error"])
}

func TestSubmit_InvalidCode(t *testing.T) {
	app, _, _ := setupReviewCodesTest(t, false)
	resp, body := submit(t, app, map[string]interface{}{"code": "REV-NOPE00", "name": "Bob", "review": "Hi"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid Review Code", body["error"])
}

func TestSubmit_MissingFields(t *testing.T) {
	app, _, _ := setupReviewCodesTest(t, false)
	resp, body := submit(t, app, map[string]interface{}{"code": "REV-ABC123", "name": "Bob"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Missing required fields", body["error"])
}

func TestSubmit_UsedCodeSkipsUpload(t *testing.T) {
	app, db, storage := setupReviewCodesTest(t, false)
	used := &domain.ReviewCode{Code: "REV-USED01"}
	require.NoError(t, db.Create(used).Error)
	require.NoError(t, db.Model(used).Update("is_used", true).Error)

	req := testutil.MultipartRequest(t, http.MethodPost, "/api/reviews/submit",
		map[string]string{"code": "REV-USED01", "name": "Bob", "review": "Hi"},
		testutil.File{Field: "avatar", Name: "bob.png", ContentType: "image/png", Body: []byte("png")},
	)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Zero(t, storage.Count())
}

func TestSubmit_MultipartAvatar(t *testing.T) {
	app, db, storage := setupReviewCodesTest(t, false)
	require.NoError(t, db.Create(&domain.ReviewCode{Code: "REV-PIC001"}).Error)

	req := testutil.MultipartRequest(t, http.MethodPost, "/api/reviews/submit",
		map[string]string{"code": "REV-PIC001", "name": "Ann", "review": "Nice"},
		testutil.File{Field: "avatar", Name: "ann.png", ContentType: "image/png", Body: []byte("png")},
	)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, storage.Count())

	var r domain.Review
	require.NoError(t, db.First(&r, "name = ?", "Ann").Error)
	assert.Contains(t, r.Avatar, "/portfolio/reviews/")
}

func TestCheck(t *testing.T) {
	app, db, _ := setupReviewCodesTest(t, false)
	require.NoError(t, db.Create(&domain.ReviewCode{Code: "REV-CHECK1", ClientName: "Acme"}).Error)

	resp, err := app.Test(testutil.JSONRequest(http.MethodGet, "/api/review-codes/check/REV-CHECK1", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	testutil.DecodeJSON(t, resp, &body)
	assert.Equal(t, true, body["valid"])
	assert.Equal(t, "Acme", body["client_name"])

	resp, err = app.Test(testutil.JSONRequest(http.MethodGet, "/api/review-codes/check/REV-NOPE00", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAdminEndpoints(t *testing.T) {
	app, db, _ := setupReviewCodesTest(t, true)

	resp, err := app.Test(testutil.JSONRequest(http.MethodPost, "/api/review-codes", map[string]string{"client_name": "Acme"}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var rc domain.ReviewCode
	testutil.DecodeJSON(t, resp, &rc)
	assert.Regexp(t, `^REV-[0-9A-Z]{6}$`, rc.Code)
	assert.Equal(t, "Acme", rc.ClientName)

	resp, err = app.Test(testutil.JSONRequest(http.MethodGet, "/api/review-codes", nil))
	require.NoError(t, err)
	var list []domain.ReviewCode
	testutil.DecodeJSON(t, resp, &list)
	assert.Len(t, list, 1)

	resp, err = app.Test(testutil.JSONRequest(http.MethodDelete, "/api/review-codes/"+rc.ID.String(), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var n int64
	db.Model(&domain.ReviewCode{}).Count(&n)
	assert.Zero(t, n)
}

func TestAdminEndpoints_Unauthorized(t *testing.T) {
	app, db, _ := setupReviewCodesTest(t, false)
	resp, err := app.Test(testutil.JSONRequest(http.MethodPost, "/api/review-codes", map[string]string{"client_name": "Acme"}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var n int64
	db.Model(&domain.ReviewCode{}).Count(&n)
	assert.Zero(t, n)
}
