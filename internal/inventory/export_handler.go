package inventory

import (
	"fmt"
	"time"

	"bondyard-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// GET /api/vehicles/export
// Streams the vehicle list as an .xlsx workbook. Honors the same q and
// status filters as the list endpoint, so the export matches whatever the
// client is looking at.
func ExportVehiclesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query, err := buildVehicleQuery(c.Query("q"), c.Query("status"))
		if err != nil {
			return err
		}

		var vehicles []models.Vehicle
		if err := query.
			Preload("Movements").
			Order("created_at DESC, id DESC").
			Find(&vehicles).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Vehicles could not be loaded")
		}

		f := excelize.NewFile()
		sheet := "Vehicles"
		f.SetSheetName("Sheet1", sheet)

		headerStyle, _ := f.NewStyle(&excelize.Style{
			Font:      &excelize.Font{Bold: true},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		})

		headers := []string{
			"ID", "VIN", "Stock No", "Make", "Model", "Year", "Color",
			"Yard Location", "Status", "Supplier", "Buyer",
			"In Date", "Out Date", "On Hand", "Notes", "Created At",
		}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
			f.SetCellStyle(sheet, cell, cell, headerStyle)
		}

		row := 2
		for _, v := range vehicles {
			inDate := ""
			if v.InDate != nil {
				inDate = v.InDate.Format("2006-01-02")
			}
			outDate := ""
			if v.OutDate != nil {
				outDate = v.OutDate.Format("2006-01-02")
			}

			values := []interface{}{
				v.ID,
				v.VIN,
				v.StockNo,
				v.Make,
				v.Model,
				v.Year,
				v.Color,
				v.YardLocation,
				string(v.Status),
				v.Supplier,
				v.Buyer,
				inDate,
				outDate,
				OnHand(v.Movements).String(),
				v.Notes,
				v.CreatedAt.Format("2006-01-02 15:04:05"),
			}
			for i, val := range values {
				cell, _ := excelize.CoordinatesToCellName(i+1, row)
				f.SetCellValue(sheet, cell, val)
			}
			row++
		}

		f.AutoFilter(sheet, "A1:P1", []excelize.AutoFilterOptions{})
		f.SetPanes(sheet, &excelize.Panes{Freeze: true, Split: true, YSplit: 1})
		f.SetActiveSheet(0)

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Workbook could not be written")
		}

		c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=vehicles_%s.xlsx", time.Now().Format("2006-01-02")))
		return c.Send(buf.Bytes())
	}
}
