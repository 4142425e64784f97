package certificateRoutes

import (
	controllers "lms/controllers/certificate"
	"lms/middleware"
	validators "lms/validators/certificate"

	"github.com/gofiber/fiber/v2"
)

// SetupCertificateRoutes sets up all certificate, placeholder and issuance routes
func SetupCertificateRoutes(app *fiber.App) {
	certGroup := app.Group("/certificate")

	// Template image upload (blob-store collaborator)
	certGroup.Post("/upload", middleware.JWTMiddleware, middleware.RequireRole("INSTRUCTOR", "ADMIN", "SUPER_ADMIN"), controllers.UploadTemplateImage)

	// Registry
	certGroup.Post("/", middleware.JWTMiddleware, middleware.RequireRole("INSTRUCTOR", "ADMIN", "SUPER_ADMIN"), validators.CreateCertificate(), controllers.CreateCertificate)
	certGroup.Get("/list", middleware.JWTMiddleware, validators.CertificateList(), controllers.GetCertificateList)
	certGroup.Get("/:id", middleware.JWTMiddleware, validators.GetCertificate(), controllers.GetCertificate)
	certGroup.Patch("/:id", middleware.JWTMiddleware, validators.UpdateCertificate(), controllers.UpdateCertificate)
	certGroup.Delete("/:id", middleware.JWTMiddleware, validators.DeleteCertificate(), controllers.DeleteCertificate)

	// Publish lifecycle
	certGroup.Patch("/:id/publish", middleware.JWTMiddleware, middleware.RequireRole("INSTRUCTOR", "ADMIN", "SUPER_ADMIN"), validators.SetPublishState(), controllers.SetPublishState)

	// Placeholders
	certGroup.Post("/:id/placeholders", middleware.JWTMiddleware, validators.UpsertPlaceholders(), controllers.UpsertPlaceholders)
	certGroup.Get("/:id/placeholders", middleware.JWTMiddleware, validators.GetPlaceholders(), controllers.GetPlaceholders)
	certGroup.Patch("/placeholder/:placeholderId/position", middleware.JWTMiddleware, validators.UpdatePlaceholderPosition(), controllers.UpdatePlaceholderPosition)

	// Issuance ledger
	certGroup.Post("/:id/issue", middleware.JWTMiddleware, middleware.RequireRole("INSTRUCTOR", "ADMIN", "SUPER_ADMIN"), validators.IssueCertificate(), controllers.IssueCertificate)
	certGroup.Get("/:id/issuances", middleware.JWTMiddleware, validators.IssuanceList(), controllers.GetIssuances)
	certGroup.Patch("/issuance/:issuanceId", middleware.JWTMiddleware, middleware.RequireRole("INSTRUCTOR", "ADMIN", "SUPER_ADMIN"), validators.UpdateIssuanceFlags(), controllers.UpdateIssuanceFlags)
}
