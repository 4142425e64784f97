package controllers

import (
	"lms/database"
	"lms/middleware"
	certModels "lms/models/certificate"
	validators "lms/validators/certificate"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UpsertPlaceholders applies a batch of placeholder payloads to one
// certificate. A payload whose key matches an existing row updates that row
// in place; anything else inserts. The response is a fresh read of the full
// set, not the input echoed back.
func UpsertPlaceholders(c *fiber.Ctx) error {
	certID := c.Locals("certificateID").(int)

	cert, err := findCertificate(certID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	reqData, ok := c.Locals("validatedPlaceholders").(*validators.UpsertPlaceholdersRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		for _, payload := range reqData.Placeholders {
			// Omitted optional fields take their defaults; a payload is the
			// complete desired state of its row, not a partial patch.
			row := certModels.Placeholder{
				CertificateID: cert.ID,
				Key:           payload.Key,
				Label:         payload.Label,
				Value:         payload.Value,
				X:             0,
				Y:             0,
				FontSize:      14,
				Color:         "#000000",
				IsVisible:     true,
				Discount:      0,
			}
			if payload.X != nil {
				row.X = *payload.X
			}
			if payload.Y != nil {
				row.Y = *payload.Y
			}
			if payload.FontSize != nil {
				row.FontSize = *payload.FontSize
			}
			if payload.Color != nil {
				row.Color = *payload.Color
			}
			if payload.IsVisible != nil {
				row.IsVisible = *payload.IsVisible
			}
			if payload.Discount != nil {
				row.Discount = *payload.Discount
			}

			var existing certModels.Placeholder
			findErr := tx.Where("certificate_id = ? AND key = ?", cert.ID, payload.Key).First(&existing).Error

			if findErr == nil {
				// Write all mutable fields on the matched row. A map is
				// used so zero values (is_visible=false, x=0) still apply.
				if err := tx.Model(&existing).Updates(map[string]interface{}{
					"label":      row.Label,
					"value":      row.Value,
					"x":          row.X,
					"y":          row.Y,
					"font_size":  row.FontSize,
					"color":      row.Color,
					"is_visible": row.IsVisible,
					"discount":   row.Discount,
				}).Error; err != nil {
					return err
				}
				continue
			}

			if findErr != gorm.ErrRecordNotFound {
				return findErr
			}

			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save placeholders!", nil)
	}

	// Fresh read of the current set
	var placeholders []certModels.Placeholder
	if err := database.Database.Db.Where("certificate_id = ?", cert.ID).Find(&placeholders).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch placeholders!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Placeholders saved successfully!", fiber.Map{
		"placeholders": placeholders,
	})
}

// UpdatePlaceholderPosition moves a single placeholder by its own id. This is
// the drag-to-position path used by the template editor and does not touch
// the batch upsert flow.
func UpdatePlaceholderPosition(c *fiber.Ctx) error {
	placeholderID := c.Locals("placeholderID").(int)
	reqData := c.Locals("validatedPosition").(*validators.PositionRequest)

	var placeholder certModels.Placeholder
	if err := database.Database.Db.Where("id = ?", placeholderID).First(&placeholder).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Placeholder not found!", nil)
	}

	if err := database.Database.Db.Model(&placeholder).Updates(map[string]interface{}{
		"x": *reqData.X,
		"y": *reqData.Y,
	}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update placeholder position!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Placeholder position updated successfully!", fiber.Map{
		"id": placeholder.ID,
		"x":  *reqData.X,
		"y":  *reqData.Y,
	})
}

// GetPlaceholders lists all placeholders for a certificate
func GetPlaceholders(c *fiber.Ctx) error {
	certID := c.Locals("certificateID").(int)

	cert, err := findCertificate(certID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	var placeholders []certModels.Placeholder
	if err := database.Database.Db.Where("certificate_id = ?", cert.ID).Find(&placeholders).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch placeholders!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Placeholders fetched successfully!", fiber.Map{
		"placeholders": placeholders,
	})
}
