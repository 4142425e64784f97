package controllers

import (
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	certModels "lms/models/certificate"
	validators "lms/validators/certificate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// findCertificate resolves a non-deleted certificate by id. Soft-deleted rows
// are invisible to every caller of this helper.
func findCertificate(id int) (*certModels.Certificate, error) {
	var cert certModels.Certificate
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", id, false).First(&cert).Error; err != nil {
		return nil, err
	}
	return &cert, nil
}

// canMutate reports whether the user may modify the certificate: the owner,
// or an administrative role.
func canMutate(user *models.User, cert *certModels.Certificate) bool {
	if cert.OwnerID == user.ID {
		return true
	}
	return user.Role == "ADMIN" || user.Role == "SUPER_ADMIN"
}

// CreateCertificate creates a new certificate template
func CreateCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCertificate").(*validators.CreateCertificateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Titles are unique across non-deleted certificates
	var existing certModels.Certificate
	if err := database.Database.Db.Where("title = ? AND is_deleted = ?", reqData.Title, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "A certificate with this title already exists!", nil)
	}

	isRevocable := true
	if reqData.IsRevocable != nil {
		isRevocable = *reqData.IsRevocable
	}

	cert := certModels.Certificate{
		OwnerID:          userID,
		CourseID:         reqData.CourseID,
		Title:            reqData.Title,
		Description:      reqData.Description,
		Metadata:         []byte(reqData.Metadata),
		UniqueIdentifier: "CERT-" + uuid.NewString(),
		CertificateData:  reqData.CertificateData,
		IsPublished:      false,
		ExpirationDate:   reqData.ParsedExpiration,
		IsRevocable:      isRevocable,
	}

	if err := database.Database.Db.Create(&cert).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create certificate!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate created successfully!", cert)
}

// GetCertificate returns the composed view: certificate scalar fields plus
// the full placeholder set.
func GetCertificate(c *fiber.Ctx) error {
	certID := c.Locals("certificateID").(int)

	cert, err := findCertificate(certID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	var placeholders []certModels.Placeholder
	if err := database.Database.Db.Where("certificate_id = ?", cert.ID).Find(&placeholders).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch placeholders!", nil)
	}

	type CertificateWithPlaceholders struct {
		certModels.Certificate
		Placeholders []certModels.Placeholder `json:"placeholders"`
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate fetched successfully!", CertificateWithPlaceholders{
		Certificate:  *cert,
		Placeholders: placeholders,
	})
}

// GetCertificateList returns the caller's non-deleted certificates
func GetCertificateList(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db.Model(&certModels.Certificate{}).Where("owner_id = ? AND is_deleted = ?", userID, false)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	page, limit := 1, int(total)
	if reqData, ok := c.Locals("validatedList").(*validators.ListQuery); ok {
		if reqData.Page != nil {
			page = *reqData.Page
		}
		if reqData.Limit != nil {
			limit = *reqData.Limit
		}
	}

	var certificates []certModels.Certificate
	query := db.Order("created_at desc")
	if limit > 0 {
		query = query.Offset((page - 1) * limit).Limit(limit)
	}
	if err := query.Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": certificates,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// UpdateCertificate applies a partial update of title/description/metadata
func UpdateCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	certID := c.Locals("certificateID").(int)

	cert, err := findCertificate(certID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	if !canMutate(&user, cert) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the owner or an admin can update this certificate!", nil)
	}

	reqData, ok := c.Locals("validatedCertificateUpdate").(*validators.UpdateCertificateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Update only provided fields
	if reqData.Title != nil && *reqData.Title != cert.Title {
		var existing certModels.Certificate
		if err := database.Database.Db.Where("title = ? AND id <> ? AND is_deleted = ?", *reqData.Title, cert.ID, false).First(&existing).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "A certificate with this title already exists!", nil)
		}
		cert.Title = *reqData.Title
	}
	if reqData.Description != nil {
		cert.Description = *reqData.Description
	}
	if len(reqData.Metadata) > 0 {
		cert.Metadata = []byte(reqData.Metadata)
	}

	if err := database.Database.Db.Save(cert).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update certificate!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate updated successfully!", cert)
}

// SetPublishState handles the publish/unpublish transition. Publishing runs
// through one transaction that first unpublishes every other certificate in
// the same course, then publishes the target, so at most one certificate per
// course is ever published.
func SetPublishState(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	certID := c.Locals("certificateID").(int)

	cert, err := findCertificate(certID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	// Publish state is owner-only, strict equality. Admin roles pass the
	// route gate but still cannot publish someone else's certificate.
	if cert.OwnerID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the certificate owner can change publish state!", nil)
	}

	reqData := c.Locals("validatedPublish").(*validators.PublishRequest)

	if !*reqData.IsPublished {
		// Unpublishing has no cross-row effect
		if err := database.Database.Db.Model(cert).Update("is_published", false).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update publish state!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate unpublished successfully!", fiber.Map{
			"id":           cert.ID,
			"is_published": false,
		})
	}

	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if cert.CourseID != nil {
			// Lock the course's certificate rows so concurrent publish
			// calls serialize instead of interleaving. SQLite has no
			// FOR UPDATE; its single-writer lock covers the same ground.
			lockTx := tx
			if tx.Dialector.Name() == "postgres" {
				lockTx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
			}
			var siblings []certModels.Certificate
			if err := lockTx.Where("course_id = ? AND is_deleted = ?", *cert.CourseID, false).Find(&siblings).Error; err != nil {
				return err
			}

			if err := tx.Model(&certModels.Certificate{}).
				Where("course_id = ? AND id <> ? AND is_deleted = ?", *cert.CourseID, cert.ID, false).
				Update("is_published", false).Error; err != nil {
				return err
			}
		}

		return tx.Model(&certModels.Certificate{}).Where("id = ?", cert.ID).Update("is_published", true).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update publish state!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate published successfully!", fiber.Map{
		"id":           cert.ID,
		"is_published": true,
	})
}

// DeleteCertificate soft deletes a certificate. The row is retained for
// audit; list/read/publish paths exclude it from here on.
func DeleteCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	certID := c.Locals("certificateID").(int)

	cert, err := findCertificate(certID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	if !canMutate(&user, cert) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the owner or an admin can delete this certificate!", nil)
	}

	if err := database.Database.Db.Model(cert).Updates(map[string]interface{}{
		"is_deleted":   true,
		"deleted_at":   time.Now(),
		"is_published": false,
	}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete certificate!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate deleted successfully!", nil)
}
