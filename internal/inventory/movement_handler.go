package inventory

import (
	"bondyard-backend/internal/database"
	"bondyard-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/vehicles/:id/movements
func ListMovementsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var vehicle models.Vehicle
		if err := database.DB.First(&vehicle, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Vehicle not found")
		}

		var movements []models.Movement
		if err := database.DB.
			Where("vehicle_id = ?", vehicle.ID).
			Order("date ASC, id ASC").
			Find(&movements).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Movements could not be listed")
		}

		resp := make([]MovementResponse, 0, len(movements))
		for _, m := range movements {
			resp = append(resp, toMovementResponse(m))
		}

		return c.JSON(resp)
	}
}

// POST /api/vehicles/:id/movements
// Appends one movement without touching the rest of the list.
func CreateMovementHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var vehicle models.Vehicle
		if err := database.DB.First(&vehicle, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Vehicle not found")
		}

		var body MovementRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		movement, err := parseMovement(vehicle.ID, body)
		if err != nil {
			return err
		}

		if err := database.DB.Create(&movement).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Movement could not be created")
		}

		return c.Status(fiber.StatusCreated).JSON(toMovementResponse(movement))
	}
}

// DELETE /api/vehicles/:id/movements/:movementID
func DeleteMovementHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		movementID := c.Params("movementID")

		var movement models.Movement
		if err := database.DB.First(&movement, "id = ? AND vehicle_id = ?", movementID, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Movement not found")
		}

		if err := database.DB.Delete(&movement).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Movement could not be deleted")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
