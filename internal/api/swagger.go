package api

import (
	docs "userdirectory/docs"

	"github.com/gofiber/fiber/v2"
	fiberSwagger "github.com/swaggo/fiber-swagger"
)

func RegisterSwagger(app *fiber.App) {
	// keep Host/Schemes in sync with whatever the caller hit
	app.Use(func(c *fiber.Ctx) error {
		docs.SwaggerInfo.Host = c.Hostname()
		docs.SwaggerInfo.Schemes = []string{c.Protocol()}
		return c.Next()
	})

	app.Get("/swagger/*", fiberSwagger.WrapHandler)
}
