package certificateValidator

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// CreateCertificateRequest is the validated create payload handed to the controller
type CreateCertificateRequest struct {
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	CertificateData string          `json:"certificate_data"`
	CourseID        *uint           `json:"course_id"`
	Metadata        json.RawMessage `json:"metadata"`
	ExpirationDate  string          `json:"expiration_date"`
	IsRevocable     *bool           `json:"is_revocable"`

	ParsedExpiration *time.Time `json:"-"`
}

// UpdateCertificateRequest is the validated partial-update payload
type UpdateCertificateRequest struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Metadata    json.RawMessage `json:"metadata"`
}

// PublishRequest carries the requested publish state
type PublishRequest struct {
	IsPublished *bool `json:"is_published"`
}

// ListQuery is the optional pagination query
type ListQuery struct {
	Page  *int `json:"page"`
	Limit *int `json:"limit"`
}

func CreateCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCertificateRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Title
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		} else if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		// Validate CertificateData (template image reference from the upload step)
		if strings.TrimSpace(reqData.CertificateData) == "" {
			errors["certificate_data"] = "Certificate template reference is required!"
		}

		// Validate Metadata is well-formed JSON when present
		if len(reqData.Metadata) > 0 && !json.Valid(reqData.Metadata) {
			errors["metadata"] = "Metadata must be valid JSON!"
		}

		// Validate ExpirationDate when present
		if strings.TrimSpace(reqData.ExpirationDate) != "" {
			parsed, err := time.Parse(time.RFC3339, reqData.ExpirationDate)
			if err != nil {
				errors["expiration_date"] = "Expiration date must be RFC3339 formatted!"
			} else {
				reqData.ParsedExpiration = &parsed
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCertificate", reqData)
		return c.Next()
	}
}

func UpdateCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := validateCertificateID(c); err != nil {
			return err
		}

		reqData := new(UpdateCertificateRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title != nil && len(strings.TrimSpace(*reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if len(reqData.Metadata) > 0 && !json.Valid(reqData.Metadata) {
			errors["metadata"] = "Metadata must be valid JSON!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCertificateUpdate", reqData)
		return c.Next()
	}
}

func SetPublishState() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := validateCertificateID(c); err != nil {
			return err
		}

		reqData := new(PublishRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.IsPublished == nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"is_published": "is_published is required!",
			})
		}

		c.Locals("validatedPublish", reqData)
		return c.Next()
	}
}

func GetCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := validateCertificateID(c); err != nil {
			return err
		}
		return c.Next()
	}
}

func DeleteCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := validateCertificateID(c); err != nil {
			return err
		}
		return c.Next()
	}
}

func CertificateList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ListQuery)

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request query!", nil)
		}

		// Pagination is optional; when provided both values must be positive
		errors := make(map[string]string)
		if reqData.Page != nil && *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}
		if reqData.Limit != nil && *reqData.Limit < 1 {
			errors["limit"] = "Limit must be greater than 0!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}

// validateCertificateID checks the :id route param and stores it as an int
func validateCertificateID(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return middleware.ValidationErrorResponse(c, map[string]string{
			"id": "Certificate id must be a positive integer!",
		})
	}
	c.Locals("certificateID", id)
	return nil
}
