package request

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Title *string `json:"title"`
}

func decodeApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		var p payload
		if err := Decode(c, &p); err != nil {
			return c.Status(400).SendString(err.Error())
		}
		title := ""
		if p.Title != nil {
			title = *p.Title
		}
		if f := File(c, "image"); f != nil {
			title += "+" + f.Filename
		}
		return c.SendString(title)
	})
	return app
}

func TestDecode_JSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"title":"Site"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := decodeApp(t).Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestDecode_EmptyBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/", nil)
	req.Header.Set("Content-Type", "application/json")
	resp, err := decodeApp(t).Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestDecode_MultipartWithFile(t *testing.T) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField(DataField, `{"title":"Cert"}`))
	fw, err := w.CreateFormFile("image", "cert.png")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("png"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := decodeApp(t).Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body := new(bytes.Buffer)
	_, _ = body.ReadFrom(resp.Body)
	assert.Equal(t, "Cert+cert.png", body.String())
}
