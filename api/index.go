package handler

import (
	"net/http"

	"portfolio-backend/bootstrap"
	"portfolio-backend/internal/interfaces/router"

	"github.com/gofiber/fiber/v2"
)

var (
	fiberApp    *fiber.App
	httpHandler http.Handler
)

func init() {
	var err error
	fiberApp, err = bootstrap.New()
	if err != nil {
		panic("app create: " + err.Error())
	}
	httpHandler = router.Handler(fiberApp)
}

// Handler is the Vercel serverless entry point. All requests are rewritten here.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()
	httpHandler.ServeHTTP(w, r)
}
