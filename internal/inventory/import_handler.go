package inventory

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"bondyard-backend/internal/database"
	"bondyard-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

func cellAt(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// POST /api/vehicles/import
// Bulk-creates vehicles from an .xlsx sheet. Expected column order:
//
//	VIN | Stock No | Make | Model | Year | Color | Yard Location | Status | Supplier | Buyer | In Date | Notes
//
// A first row whose first cell mentions VIN is treated as a header and
// skipped. Rows that cannot be used are reported back with their reason;
// the rest are created in one pass.
func ImportVehiclesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "File could not be read: "+err.Error())
		}

		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return fiber.NewError(fiber.StatusBadRequest, "Only .xlsx files can be imported")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "File could not be opened: "+err.Error())
		}
		defer file.Close()

		excelFile, err := excelize.OpenReader(file)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Excel file could not be read: "+err.Error())
		}
		defer excelFile.Close()

		sheetList := excelFile.GetSheetList()
		if len(sheetList) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Excel file has no sheets")
		}

		rows, err := excelFile.GetRows(sheetList[0])
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Sheet could not be read: "+err.Error())
		}
		if len(rows) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Excel file is empty")
		}

		startIndex := 0
		if len(rows[0]) > 0 && strings.Contains(strings.ToUpper(strings.TrimSpace(rows[0][0])), "VIN") {
			startIndex = 1
		}

		created := 0
		skipped := make([]string, 0)

		for i := startIndex; i < len(rows); i++ {
			row := rows[i]
			rowNo := i + 1

			vin := cellAt(row, 0)
			if vin == "" {
				if len(row) > 0 {
					skipped = append(skipped, fmt.Sprintf("row %d: VIN is empty", rowNo))
				}
				continue
			}

			var count int64
			database.DB.Model(&models.Vehicle{}).Where("vin = ?", vin).Count(&count)
			if count > 0 {
				skipped = append(skipped, fmt.Sprintf("row %d: VIN %s already exists", rowNo, vin))
				continue
			}

			status := models.StatusInBond
			if s := cellAt(row, 7); s != "" {
				parsed := models.VehicleStatus(s)
				if !parsed.Valid() {
					skipped = append(skipped, fmt.Sprintf("row %d: unknown status %q", rowNo, s))
					continue
				}
				status = parsed
			}

			year := 0
			if y := cellAt(row, 4); y != "" {
				year, err = strconv.Atoi(y)
				if err != nil || year < 1900 || year > time.Now().Year()+1 {
					skipped = append(skipped, fmt.Sprintf("row %d: year %q is not usable", rowNo, y))
					continue
				}
			}

			var inDate *time.Time
			if d := cellAt(row, 10); d != "" {
				parsed, err := time.Parse("2006-01-02", d)
				if err != nil {
					skipped = append(skipped, fmt.Sprintf("row %d: in date %q must be 'YYYY-MM-DD'", rowNo, d))
					continue
				}
				inDate = &parsed
			}

			vehicle := models.Vehicle{
				VIN:          vin,
				StockNo:      cellAt(row, 1),
				Make:         cellAt(row, 2),
				Model:        cellAt(row, 3),
				Year:         year,
				Color:        cellAt(row, 5),
				YardLocation: cellAt(row, 6),
				Status:       status,
				Supplier:     cellAt(row, 8),
				Buyer:        cellAt(row, 9),
				InDate:       inDate,
				Notes:        cellAt(row, 11),
			}

			if err := database.DB.Create(&vehicle).Error; err != nil {
				skipped = append(skipped, fmt.Sprintf("row %d: could not be saved", rowNo))
				continue
			}
			created++
		}

		return c.JSON(fiber.Map{
			"created": created,
			"skipped": skipped,
		})
	}
}
