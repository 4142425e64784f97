package certificateValidator

import (
	"strconv"
	"strings"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// PlaceholderPayload is one entry of an upsert batch. Optional fields are
// pointers so the controller can tell "absent" from zero and apply defaults.
type PlaceholderPayload struct {
	Key       string   `json:"key"`
	Label     string   `json:"label"`
	Value     string   `json:"value"`
	X         *float64 `json:"x"`
	Y         *float64 `json:"y"`
	FontSize  *uint    `json:"font_size"`
	Color     *string  `json:"color"`
	IsVisible *bool    `json:"is_visible"`
	Discount  *float64 `json:"discount"`
}

// UpsertPlaceholdersRequest is the validated batch payload
type UpsertPlaceholdersRequest struct {
	Placeholders []PlaceholderPayload `json:"placeholders"`
}

// PositionRequest is the validated point-update payload
type PositionRequest struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

func UpsertPlaceholders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := validateCertificateID(c); err != nil {
			return err
		}

		reqData := new(UpsertPlaceholdersRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(reqData.Placeholders) == 0 {
			errors["placeholders"] = "At least one placeholder is required!"
		}

		seen := make(map[string]bool)
		for i, p := range reqData.Placeholders {
			field := "placeholders[" + strconv.Itoa(i) + "]"
			key := strings.TrimSpace(p.Key)
			if key == "" {
				errors[field+".key"] = "Key is required!"
				continue
			}
			if seen[key] {
				errors[field+".key"] = "Duplicate key in batch: " + key
			}
			seen[key] = true

			if p.X != nil && (*p.X < 0 || *p.X > 100) {
				errors[field+".x"] = "X must be between 0 and 100 (percent of image)!"
			}
			if p.Y != nil && (*p.Y < 0 || *p.Y > 100) {
				errors[field+".y"] = "Y must be between 0 and 100 (percent of image)!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPlaceholders", reqData)
		return c.Next()
	}
}

// UpdatePlaceholderPosition validates the placeholder id and the new
// coordinates before any write happens. A malformed id never reaches the
// database.
func UpdatePlaceholderPosition() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("placeholderId"))
		if err != nil || id < 1 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"placeholder_id": "Placeholder id must be a positive integer!",
			})
		}

		reqData := new(PositionRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.X == nil {
			errors["x"] = "X is required!"
		} else if *reqData.X < 0 || *reqData.X > 100 {
			errors["x"] = "X must be between 0 and 100 (percent of image)!"
		}

		if reqData.Y == nil {
			errors["y"] = "Y is required!"
		} else if *reqData.Y < 0 || *reqData.Y > 100 {
			errors["y"] = "Y must be between 0 and 100 (percent of image)!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("placeholderID", id)
		c.Locals("validatedPosition", reqData)
		return c.Next()
	}
}

func GetPlaceholders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := validateCertificateID(c); err != nil {
			return err
		}
		return c.Next()
	}
}
