package webserver

import (
	"github.com/gofiber/fiber/v2"
)

func routes(app *fiber.App, controllers Controllers, supportedLanguages []string) {
	app.Use(SetLanguage(supportedLanguages))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "version": c.App().Config().AppName})
	})

	app.Post("/sessions", controllers.Auth.SignIn)
	app.Post("/sessions/recover", controllers.Auth.Request)
	app.Post("/sessions/reset", controllers.Auth.ResetPassword)

	publicGroup := app.Group("/public")
	publicGroup.Get("/grave/:code", controllers.Public.Grave)
	publicGroup.Get("/grave/:code/photo", controllers.Public.Photo)
	publicGroup.Get("/search", controllers.Public.Search)

	app.Get("/invitations/details", controllers.Invitations.Details)
	app.Post("/invitations/accept", controllers.Invitations.Accept)

	app.Post("/users/me/password", controllers.RequireAuthentication, controllers.Auth.UpdatePassword)
	app.Get("/users/by-email", controllers.RequireAuthentication, RequireOperator, controllers.Users.ByEmail)

	app.Get("/users", controllers.RequireAuthentication, RequireAdmin, controllers.Users.List)
	app.Post("/users", controllers.RequireAuthentication, RequireAdmin, controllers.Users.Create)
	app.Get("/users/:id<guid>", controllers.RequireAuthentication, RequireAdmin, controllers.Users.Detail)
	app.Patch("/users/:id<guid>", controllers.RequireAuthentication, RequireAdmin, controllers.Users.Update)
	app.Delete("/users/:id<guid>", controllers.RequireAuthentication, RequireAdmin, controllers.Users.Delete)

	recordsGroup := app.Group("/burial-records", controllers.RequireAuthentication, RequireOperator)

	recordsGroup.Post("/", controllers.BurialRecords.Create)
	recordsGroup.Get("/", controllers.BurialRecords.List)
	recordsGroup.Get("/:id<guid>", controllers.BurialRecords.Detail)
	recordsGroup.Patch("/:id<guid>", controllers.BurialRecords.Update)
	recordsGroup.Put("/:id<guid>/contacts/:slot", controllers.BurialRecords.UpdateContact)
	recordsGroup.Post("/:id<guid>/photo", controllers.BurialRecords.UploadPhoto)

	recordsGroup.Get("/:id<guid>/invitation/status", controllers.Invitations.Status)
	recordsGroup.Post("/:id<guid>/invitation/send", controllers.Invitations.Send)
	recordsGroup.Post("/:id<guid>/invitation/resend", controllers.Invitations.Resend)

	recordsGroup.Get("/:id<guid>/qr-code", controllers.QRCodes.Active)

	qrCodesGroup := app.Group("/qr-codes", controllers.RequireAuthentication, RequireOperator)

	qrCodesGroup.Post("/generate/:id<guid>", controllers.QRCodes.Generate)
	qrCodesGroup.Post("/regenerate/:id<guid>", controllers.QRCodes.Regenerate)
	qrCodesGroup.Patch("/:code/deactivate", controllers.QRCodes.Deactivate)
	qrCodesGroup.Get("/:code/image", controllers.QRCodes.Image)
}
