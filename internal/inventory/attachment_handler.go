package inventory

import (
	"fmt"
	"log"

	"bondyard-backend/internal/database"
	"bondyard-backend/internal/models"
	"bondyard-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
)

// GET /api/vehicles/:id/attachments
func ListAttachmentsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var vehicle models.Vehicle
		if err := database.DB.First(&vehicle, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Vehicle not found")
		}

		var attachments []models.Attachment
		if err := database.DB.
			Where("vehicle_id = ?", vehicle.ID).
			Order("created_at ASC, id ASC").
			Find(&attachments).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Attachments could not be listed")
		}

		resp := make([]AttachmentResponse, 0, len(attachments))
		for _, a := range attachments {
			resp = append(resp, toAttachmentResponse(a))
		}

		return c.JSON(resp)
	}
}

// POST /api/vehicles/:id/attachments
// Multipart upload, field name "files". Accepts one or more files in a
// single request; each goes to the configured storage backend as-is.
func UploadAttachmentsHandler(store storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var vehicle models.Vehicle
		if err := database.DB.First(&vehicle, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Vehicle not found")
		}

		form, err := c.MultipartForm()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Expected a multipart form")
		}

		files := form.File["files"]
		if len(files) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "At least one file is required in the 'files' field")
		}

		resp := make([]AttachmentResponse, 0, len(files))
		for _, fh := range files {
			src, err := fh.Open()
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("File could not be read: %s", fh.Filename))
			}

			contentType := fh.Header.Get("Content-Type")
			if contentType == "" {
				contentType = "application/octet-stream"
			}

			key := storage.NewKey(vehicle.ID, fh.Filename)
			url, err := store.Save(c.Context(), key, contentType, src, fh.Size)
			src.Close()
			if err != nil {
				log.Printf("[ERROR] attachment upload failed: %s: %v", fh.Filename, err)
				return fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("File could not be stored: %s", fh.Filename))
			}

			attachment := models.Attachment{
				VehicleID:  vehicle.ID,
				FileName:   fh.Filename,
				MimeType:   contentType,
				Size:       fh.Size,
				StorageKey: key,
				URL:        url,
			}

			if err := database.DB.Create(&attachment).Error; err != nil {
				// No row points at the stored blob now, remove it.
				if remErr := store.Remove(c.Context(), key); remErr != nil {
					log.Printf("[WARN] orphan blob could not be removed: %s: %v", key, remErr)
				}
				return fiber.NewError(fiber.StatusInternalServerError, "Attachment could not be saved")
			}

			resp = append(resp, toAttachmentResponse(attachment))
		}

		return c.Status(fiber.StatusCreated).JSON(resp)
	}
}

// DELETE /api/vehicles/:id/attachments/:attachmentID
func DeleteAttachmentHandler(store storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		attachmentID := c.Params("attachmentID")

		var attachment models.Attachment
		if err := database.DB.First(&attachment, "id = ? AND vehicle_id = ?", attachmentID, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Attachment not found")
		}

		if err := database.DB.Delete(&attachment).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Attachment could not be deleted")
		}

		if err := store.Remove(c.Context(), attachment.StorageKey); err != nil {
			log.Printf("[WARN] attachment file could not be removed: %s: %v", attachment.StorageKey, err)
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
