package inventory

import (
	"log"
	"strings"
	"time"

	"bondyard-backend/internal/database"
	"bondyard-backend/internal/models"
	"bondyard-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MovementRequest is one stock movement line, used both when embedded in a
// vehicle payload and when appended on its own.
type MovementRequest struct {
	Type     string `json:"type"` // "INWARD" or "OUTWARD"
	Date     string `json:"date"` // "2025-12-09"
	Quantity string `json:"quantity"`
	Notes    string `json:"notes"`
}

type CreateVehicleRequest struct {
	VIN          string `json:"vin"`
	StockNo      string `json:"stock_no"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	Color        string `json:"color"`
	YardLocation string `json:"yard_location"`
	Status       string `json:"status"`
	Supplier     string `json:"supplier"`
	Buyer        string `json:"buyer"`
	InDate       string `json:"in_date"`  // "2025-12-09", optional
	OutDate      string `json:"out_date"` // optional
	Notes        string `json:"notes"`
	// Opening movements, saved together with the vehicle.
	Movements []MovementRequest `json:"movements"`
}

// UpdateVehicleRequest carries only the fields the client wants to change.
// A movements array, when present, replaces the vehicle's whole movement
// list; an empty array clears it, a missing key leaves it alone.
type UpdateVehicleRequest struct {
	VIN          *string            `json:"vin"`
	StockNo      *string            `json:"stock_no"`
	Make         *string            `json:"make"`
	Model        *string            `json:"model"`
	Year         *int               `json:"year"`
	Color        *string            `json:"color"`
	YardLocation *string            `json:"yard_location"`
	Status       *string            `json:"status"`
	Supplier     *string            `json:"supplier"`
	Buyer        *string            `json:"buyer"`
	InDate       *string            `json:"in_date"`  // "" clears the date
	OutDate      *string            `json:"out_date"` // "" clears the date
	Notes        *string            `json:"notes"`
	Movements    *[]MovementRequest `json:"movements"`
}

type MovementResponse struct {
	ID        uint   `json:"id"`
	VehicleID uint   `json:"vehicle_id"`
	Type      string `json:"type"`
	Date      string `json:"date"`
	Quantity  string `json:"quantity"`
	Notes     string `json:"notes"`
	CreatedAt string `json:"created_at"`
}

type AttachmentResponse struct {
	ID        uint   `json:"id"`
	VehicleID uint   `json:"vehicle_id"`
	FileName  string `json:"file_name"`
	MimeType  string `json:"mime_type"`
	Size      int64  `json:"size"`
	URL       string `json:"url"`
	CreatedAt string `json:"created_at"`
}

type VehicleResponse struct {
	ID           uint    `json:"id"`
	VIN          string  `json:"vin"`
	StockNo      string  `json:"stock_no"`
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	Color        string  `json:"color"`
	YardLocation string  `json:"yard_location"`
	Status       string  `json:"status"`
	Supplier     string  `json:"supplier"`
	Buyer        string  `json:"buyer"`
	InDate       *string `json:"in_date"`
	OutDate      *string `json:"out_date"`
	Notes        string  `json:"notes"`
	// Derived from the movements on every read, never stored.
	OnHand      string               `json:"on_hand"`
	Movements   []MovementResponse   `json:"movements"`
	Attachments []AttachmentResponse `json:"attachments"`
	CreatedAt   string               `json:"created_at"`
	UpdatedAt   string               `json:"updated_at"`
}

func toMovementResponse(m models.Movement) MovementResponse {
	return MovementResponse{
		ID:        m.ID,
		VehicleID: m.VehicleID,
		Type:      string(m.Type),
		Date:      m.Date.Format("2006-01-02"),
		Quantity:  m.Quantity,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func toAttachmentResponse(a models.Attachment) AttachmentResponse {
	return AttachmentResponse{
		ID:        a.ID,
		VehicleID: a.VehicleID,
		FileName:  a.FileName,
		MimeType:  a.MimeType,
		Size:      a.Size,
		URL:       a.URL,
		CreatedAt: a.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func toVehicleResponse(v models.Vehicle) VehicleResponse {
	movements := make([]MovementResponse, 0, len(v.Movements))
	for _, m := range v.Movements {
		movements = append(movements, toMovementResponse(m))
	}

	attachments := make([]AttachmentResponse, 0, len(v.Attachments))
	for _, a := range v.Attachments {
		attachments = append(attachments, toAttachmentResponse(a))
	}

	return VehicleResponse{
		ID:           v.ID,
		VIN:          v.VIN,
		StockNo:      v.StockNo,
		Make:         v.Make,
		Model:        v.Model,
		Year:         v.Year,
		Color:        v.Color,
		YardLocation: v.YardLocation,
		Status:       string(v.Status),
		Supplier:     v.Supplier,
		Buyer:        v.Buyer,
		InDate:       formatDatePtr(v.InDate),
		OutDate:      formatDatePtr(v.OutDate),
		Notes:        v.Notes,
		OnHand:       OnHand(v.Movements).String(),
		Movements:    movements,
		Attachments:  attachments,
		CreatedAt:    v.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:    v.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

// parseMovement validates one movement line. vehicleID stays zero when the
// movement is created through a vehicle association.
func parseMovement(vehicleID uint, req MovementRequest) (models.Movement, error) {
	mt := models.MovementType(strings.ToUpper(strings.TrimSpace(req.Type)))
	if !mt.Valid() {
		return models.Movement{}, fiber.NewError(fiber.StatusBadRequest, "Movement type must be 'INWARD' or 'OUTWARD'")
	}

	d, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return models.Movement{}, fiber.NewError(fiber.StatusBadRequest, "Movement date must be 'YYYY-MM-DD'")
	}

	qty := strings.TrimSpace(req.Quantity)
	if qty == "" {
		return models.Movement{}, fiber.NewError(fiber.StatusBadRequest, "Movement quantity is required")
	}
	parsed, err := decimal.NewFromString(qty)
	if err != nil {
		return models.Movement{}, fiber.NewError(fiber.StatusBadRequest, "Movement quantity must be a number")
	}
	if parsed.IsNegative() {
		return models.Movement{}, fiber.NewError(fiber.StatusBadRequest, "Movement quantity cannot be negative")
	}

	return models.Movement{
		VehicleID: vehicleID,
		Type:      mt,
		Date:      d,
		Quantity:  qty,
		Notes:     req.Notes,
	}, nil
}

func parseMovements(vehicleID uint, reqs []MovementRequest) ([]models.Movement, error) {
	movements := make([]models.Movement, 0, len(reqs))
	for _, req := range reqs {
		m, err := parseMovement(vehicleID, req)
		if err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}
	return movements, nil
}

func parseStatus(s string) (models.VehicleStatus, error) {
	status := models.VehicleStatus(strings.TrimSpace(s))
	if !status.Valid() {
		return "", fiber.NewError(fiber.StatusBadRequest, "Status must be one of 'In Bond', 'Released', 'Sold', 'Hold'")
	}
	return status, nil
}

func validateYear(year int) error {
	if year != 0 && (year < 1900 || year > time.Now().Year()+1) {
		return fiber.NewError(fiber.StatusBadRequest, "Year is out of range")
	}
	return nil
}

// escapeLike backslash-escapes %, _ and \ so they match themselves inside a
// LIKE pattern.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	return strings.ReplaceAll(s, "_", `\_`)
}

// buildVehicleQuery applies the shared q/status filters. The free-text search
// is case-insensitive and matches anywhere inside the identifying fields; an
// empty q means no text filter at all, and LIKE wildcards in q match
// literally.
func buildVehicleQuery(q, status string) (*gorm.DB, error) {
	tx := database.DB.Model(&models.Vehicle{})

	if status != "" {
		parsed, err := parseStatus(status)
		if err != nil {
			return nil, err
		}
		tx = tx.Where("status = ?", parsed)
	}

	if q = strings.TrimSpace(q); q != "" {
		like := "%" + escapeLike(strings.ToLower(q)) + "%"
		tx = tx.Where(
			"LOWER(vin) LIKE ? ESCAPE '\\' OR LOWER(stock_no) LIKE ? ESCAPE '\\' OR LOWER(make) LIKE ? ESCAPE '\\' OR LOWER(model) LIKE ? ESCAPE '\\' OR "+
				"LOWER(color) LIKE ? ESCAPE '\\' OR LOWER(yard_location) LIKE ? ESCAPE '\\' OR LOWER(supplier) LIKE ? ESCAPE '\\' OR LOWER(buyer) LIKE ? ESCAPE '\\'",
			like, like, like, like, like, like, like, like,
		)
	}

	return tx, nil
}

// GET /api/vehicles?q=&status=
func ListVehiclesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query, err := buildVehicleQuery(c.Query("q"), c.Query("status"))
		if err != nil {
			return err
		}

		var vehicles []models.Vehicle
		if err := query.
			Preload("Movements").
			Preload("Attachments").
			Order("created_at DESC, id DESC").
			Find(&vehicles).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Vehicles could not be listed")
		}

		resp := make([]VehicleResponse, 0, len(vehicles))
		for _, v := range vehicles {
			resp = append(resp, toVehicleResponse(v))
		}

		return c.JSON(resp)
	}
}

// POST /api/vehicles
func CreateVehicleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateVehicleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.VIN = strings.TrimSpace(body.VIN)
		body.StockNo = strings.TrimSpace(body.StockNo)
		if body.VIN == "" {
			return fiber.NewError(fiber.StatusBadRequest, "VIN is required")
		}
		if err := validateYear(body.Year); err != nil {
			return err
		}

		status := models.StatusInBond
		if body.Status != "" {
			parsed, err := parseStatus(body.Status)
			if err != nil {
				return err
			}
			status = parsed
		}

		inDate, err := parseDatePtr(body.InDate)
		if err != nil {
			return err
		}
		outDate, err := parseDatePtr(body.OutDate)
		if err != nil {
			return err
		}

		movements, err := parseMovements(0, body.Movements)
		if err != nil {
			return err
		}

		vehicle := models.Vehicle{
			VIN:          body.VIN,
			StockNo:      body.StockNo,
			Make:         body.Make,
			Model:        body.Model,
			Year:         body.Year,
			Color:        body.Color,
			YardLocation: body.YardLocation,
			Status:       status,
			Supplier:     body.Supplier,
			Buyer:        body.Buyer,
			InDate:       inDate,
			OutDate:      outDate,
			Notes:        body.Notes,
			Movements:    movements,
		}

		if err := database.DB.Create(&vehicle).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Vehicle could not be created")
		}

		if err := database.DB.
			Preload("Movements").
			Preload("Attachments").
			First(&vehicle, "id = ?", vehicle.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Vehicle could not be loaded")
		}

		return c.Status(fiber.StatusCreated).JSON(toVehicleResponse(vehicle))
	}
}

func parseDatePtr(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Date must be 'YYYY-MM-DD'")
	}
	return &d, nil
}

// GET /api/vehicles/:id
func GetVehicleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var vehicle models.Vehicle
		if err := database.DB.
			Preload("Movements").
			Preload("Attachments").
			First(&vehicle, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Vehicle not found")
		}

		return c.JSON(toVehicleResponse(vehicle))
	}
}

// PUT /api/vehicles/:id
func UpdateVehicleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var vehicle models.Vehicle
		if err := database.DB.First(&vehicle, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Vehicle not found")
		}

		var body UpdateVehicleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.VIN != nil {
			vin := strings.TrimSpace(*body.VIN)
			if vin == "" {
				return fiber.NewError(fiber.StatusBadRequest, "VIN cannot be empty")
			}
			vehicle.VIN = vin
		}
		if body.StockNo != nil {
			vehicle.StockNo = strings.TrimSpace(*body.StockNo)
		}
		if body.Make != nil {
			vehicle.Make = *body.Make
		}
		if body.Model != nil {
			vehicle.Model = *body.Model
		}
		if body.Year != nil {
			if err := validateYear(*body.Year); err != nil {
				return err
			}
			vehicle.Year = *body.Year
		}
		if body.Color != nil {
			vehicle.Color = *body.Color
		}
		if body.YardLocation != nil {
			vehicle.YardLocation = *body.YardLocation
		}
		if body.Status != nil {
			parsed, err := parseStatus(*body.Status)
			if err != nil {
				return err
			}
			vehicle.Status = parsed
		}
		if body.Supplier != nil {
			vehicle.Supplier = *body.Supplier
		}
		if body.Buyer != nil {
			vehicle.Buyer = *body.Buyer
		}
		if body.InDate != nil {
			d, err := parseDatePtr(*body.InDate)
			if err != nil {
				return err
			}
			vehicle.InDate = d
		}
		if body.OutDate != nil {
			d, err := parseDatePtr(*body.OutDate)
			if err != nil {
				return err
			}
			vehicle.OutDate = d
		}
		if body.Notes != nil {
			vehicle.Notes = *body.Notes
		}

		if body.Movements != nil {
			// Full replace: the submitted list becomes the vehicle's
			// movement history, whatever was there before is dropped.
			movements, err := parseMovements(vehicle.ID, *body.Movements)
			if err != nil {
				return err
			}

			tx := database.DB.Begin()
			if tx.Error != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Transaction could not be started")
			}

			if err := tx.Where("vehicle_id = ?", vehicle.ID).Delete(&models.Movement{}).Error; err != nil {
				tx.Rollback()
				return fiber.NewError(fiber.StatusInternalServerError, "Existing movements could not be cleared")
			}

			if len(movements) > 0 {
				if err := tx.Create(&movements).Error; err != nil {
					tx.Rollback()
					return fiber.NewError(fiber.StatusInternalServerError, "Movements could not be saved")
				}
			}

			if err := tx.Save(&vehicle).Error; err != nil {
				tx.Rollback()
				return fiber.NewError(fiber.StatusInternalServerError, "Vehicle could not be updated")
			}

			if err := tx.Commit().Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Update could not be completed")
			}
		} else {
			if err := database.DB.Save(&vehicle).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Vehicle could not be updated")
			}
		}

		if err := database.DB.
			Preload("Movements").
			Preload("Attachments").
			First(&vehicle, "id = ?", vehicle.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Vehicle could not be loaded")
		}

		return c.JSON(toVehicleResponse(vehicle))
	}
}

// DELETE /api/vehicles/:id
// Removes the vehicle together with its movements and attachments.
func DeleteVehicleHandler(store storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var vehicle models.Vehicle
		if err := database.DB.Preload("Attachments").First(&vehicle, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Vehicle not found")
		}

		tx := database.DB.Begin()
		if tx.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Transaction could not be started")
		}

		if err := tx.Where("vehicle_id = ?", vehicle.ID).Delete(&models.Movement{}).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Movements could not be deleted")
		}

		if err := tx.Where("vehicle_id = ?", vehicle.ID).Delete(&models.Attachment{}).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Attachments could not be deleted")
		}

		if err := tx.Delete(&models.Vehicle{}, "id = ?", vehicle.ID).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Vehicle could not be deleted")
		}

		if err := tx.Commit().Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Delete could not be completed")
		}

		// Blob cleanup happens after the rows are gone. A missing or
		// unreachable blob does not bring the delete back.
		for _, a := range vehicle.Attachments {
			if err := store.Remove(c.Context(), a.StorageKey); err != nil {
				log.Printf("[WARN] attachment file could not be removed: %s: %v", a.StorageKey, err)
			}
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/statuses
func ListStatusesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(models.VehicleStatuses)
	}
}
