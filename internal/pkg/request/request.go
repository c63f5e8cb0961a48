// Package request decodes admin payloads sent either as JSON or as
// multipart/form-data with a JSON "data" field next to file parts.
package request

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// DataField is the multipart field that carries the JSON payload.
const DataField = "data"

var ErrInvalidBody = errors.New("Invalid request body")

// IsMultipart reports whether the request body is multipart/form-data.
func IsMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm)
}

// Decode fills out from the JSON body, or from the "data" field of a multipart form.
func Decode(c *fiber.Ctx, out interface{}) error {
	if IsMultipart(c) {
		raw := c.FormValue(DataField)
		if raw == "" {
			return nil
		}
		if err := json.Unmarshal([]byte(raw), out); err != nil {
			return ErrInvalidBody
		}
		return nil
	}
	if len(c.Body()) == 0 {
		return ErrInvalidBody
	}
	if err := c.BodyParser(out); err != nil {
		return ErrInvalidBody
	}
	return nil
}

// Files returns the uploaded files for field, or nil when the request is not multipart.
func Files(c *fiber.Ctx, field string) []*multipart.FileHeader {
	if !IsMultipart(c) {
		return nil
	}
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File[field]
}

// File returns the first uploaded file for field, or nil.
func File(c *fiber.Ctx, field string) *multipart.FileHeader {
	files := Files(c, field)
	if len(files) == 0 {
		return nil
	}
	return files[0]
}
