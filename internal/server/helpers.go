package server

import (
	"encoding/json"

	"forumapi/internal/models"
	"forumapi/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// respondError maps a use case error onto its HTTP status.
func respondError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.StatusFor(err), err)
}

// respondSuccess writes {"status":"success","data":data}; a nil data omits the field.
func respondSuccess(c *fiber.Ctx, status int, data fiber.Map) error {
	body := fiber.Map{"status": "success"}
	if data != nil {
		body["data"] = data
	}
	return c.Status(status).JSON(body)
}

// parsePayload decodes the request body as a JSON object. An empty body is
// an empty payload so the entity validators report the missing fields.
func parsePayload(c *fiber.Ctx) (validation.Payload, error) {
	payload := validation.Payload{}
	body := c.Body()
	if len(body) == 0 {
		return payload, nil
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, models.NewValidationError("PAYLOAD.INVALID_JSON", "payload harus berupa objek JSON")
	}
	return payload, nil
}

// currentUserID reads the id AuthRequired stored.
func currentUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals("userID").(string)
	return userID
}
