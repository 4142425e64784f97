package controllers

import (
	"log"
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	certModels "lms/models/certificate"
	"lms/utils"
	validators "lms/validators/certificate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// IssueCertificate grants a certificate to a recipient. Every grant creates
// its own ledger row; issuing the same certificate to the same recipient
// again creates a second, independent row (re-issuance after revocation).
func IssueCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	certID := c.Locals("certificateID").(int)

	cert, err := findCertificate(certID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	reqData, ok := c.Locals("validatedIssue").(*validators.IssueRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	issuance := certModels.Issuance{
		CertificateID:            cert.ID,
		IssuedTo:                 *reqData.IssuedTo,
		IssuedBy:                 userID,
		IssuanceUniqueIdentifier: "ISSUE-" + uuid.NewString(),
		Description:              reqData.Description,
		IssuedAt:                 time.Now(),
	}

	if err := database.Database.Db.Create(&issuance).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue certificate!", nil)
	}

	// Notify the recipient; mail failure never fails the issuance
	var recipient models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", issuance.IssuedTo, false).First(&recipient).Error; err == nil {
		if err := utils.SendIssuanceEmail(recipient.Email, recipient.Name, cert.Title, issuance.IssuanceUniqueIdentifier); err != nil {
			log.Printf("Failed to send issuance email for %s: %v", issuance.IssuanceUniqueIdentifier, err)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate issued successfully!", issuance)
}

// UpdateIssuanceFlags flips the revocation/expiration flags. The flags are
// independent: either may be set or cleared without touching the other, and
// a row can carry both at once.
func UpdateIssuanceFlags(c *fiber.Ctx) error {
	issuanceID := c.Locals("issuanceID").(int)
	reqData := c.Locals("validatedIssuanceFlags").(*validators.IssuanceFlagsRequest)

	var issuance certModels.Issuance
	if err := database.Database.Db.Where("id = ?", issuanceID).First(&issuance).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Issuance not found!", nil)
	}

	updates := map[string]interface{}{}
	if reqData.IsRevoked != nil {
		updates["is_revoked"] = *reqData.IsRevoked
	}
	if reqData.IsExpired != nil {
		updates["is_expired"] = *reqData.IsExpired
	}

	if err := database.Database.Db.Model(&issuance).Updates(updates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update issuance!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Issuance updated successfully!", issuance)
}

// GetIssuances lists the ledger rows for a certificate
func GetIssuances(c *fiber.Ctx) error {
	certID := c.Locals("certificateID").(int)

	cert, err := findCertificate(certID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	var issuances []certModels.Issuance
	if err := database.Database.Db.Where("certificate_id = ?", cert.ID).Order("issued_at desc").Find(&issuances).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch issuances!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Issuances fetched successfully!", fiber.Map{
		"issuances": issuances,
		"total":     len(issuances),
	})
}
