package controllers

import (
	"lms/middleware"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// UploadTemplateImage pushes a template image to the object store and returns
// the durable reference the caller passes back as certificate_data on create.
func UploadTemplateImage(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	file, err := c.FormFile("template")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Template image file is required!", nil)
	}

	contentType := file.Header.Get("Content-Type")
	if contentType != "image/png" && contentType != "image/jpeg" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Template must be a PNG or JPEG image!", nil)
	}

	ref, err := utils.UploadToBlobStore(file)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to store template image!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Template uploaded successfully!", fiber.Map{
		"certificate_data": ref,
	})
}
