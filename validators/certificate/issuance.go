package certificateValidator

import (
	"strconv"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// IssueRequest is the validated issue payload; issued_by comes from the token
type IssueRequest struct {
	IssuedTo    *uint  `json:"issued_to"`
	Description string `json:"description"`
}

// IssuanceFlagsRequest carries the revocation/expiration flag updates. Either
// flag may be provided on its own; both together are allowed.
type IssuanceFlagsRequest struct {
	IsRevoked *bool `json:"is_revoked"`
	IsExpired *bool `json:"is_expired"`
}

func IssueCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := validateCertificateID(c); err != nil {
			return err
		}

		reqData := new(IssueRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.IssuedTo == nil || *reqData.IssuedTo < 1 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"issued_to": "Recipient user id is required!",
			})
		}

		c.Locals("validatedIssue", reqData)
		return c.Next()
	}
}

func UpdateIssuanceFlags() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("issuanceId"))
		if err != nil || id < 1 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"issuance_id": "Issuance id must be a positive integer!",
			})
		}

		reqData := new(IssuanceFlagsRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.IsRevoked == nil && reqData.IsExpired == nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"flags": "At least one of is_revoked or is_expired is required!",
			})
		}

		c.Locals("issuanceID", id)
		c.Locals("validatedIssuanceFlags", reqData)
		return c.Next()
	}
}

func IssuanceList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := validateCertificateID(c); err != nil {
			return err
		}
		return c.Next()
	}
}
