package dashboard

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"bondyard-backend/internal/database"
	"bondyard-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type YardSummaryResponse struct {
	TotalVehicles  int64         `json:"total_vehicles"`
	ByStatus       []StatusCount `json:"by_status"`
	MovementsLast7 int64         `json:"movements_last_7_days"`
	Attachments    int64         `json:"attachments"`
}

// GET /api/dashboard/summary
func YardSummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var total int64
		if err := database.DB.Model(&models.Vehicle{}).Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Summary could not be computed")
		}

		type statusRow struct {
			Status string
			Count  int64
		}
		var rows []statusRow
		if err := database.DB.Model(&models.Vehicle{}).
			Select("status, COUNT(*) AS count").
			Group("status").
			Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Summary could not be computed")
		}

		counts := make(map[string]int64, len(rows))
		for _, r := range rows {
			counts[r.Status] = r.Count
		}

		// Every status shows up, also the empty ones, so clients can
		// render a fixed set of tiles.
		byStatus := make([]StatusCount, 0, len(models.VehicleStatuses))
		for _, s := range models.VehicleStatuses {
			byStatus = append(byStatus, StatusCount{Status: string(s), Count: counts[string(s)]})
		}

		weekAgo := time.Now().UTC().AddDate(0, 0, -7)
		var recentMovements int64
		if err := database.DB.Model(&models.Movement{}).
			Where("date >= ?", weekAgo).
			Count(&recentMovements).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Summary could not be computed")
		}

		var attachments int64
		if err := database.DB.Model(&models.Attachment{}).Count(&attachments).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Summary could not be computed")
		}

		return c.JSON(YardSummaryResponse{
			TotalVehicles:  total,
			ByStatus:       byStatus,
			MovementsLast7: recentMovements,
			Attachments:    attachments,
		})
	}
}

type MovementChartPoint struct {
	Label   string `json:"label"`
	Inward  string `json:"inward"`
	Outward string `json:"outward"`
	Net     string `json:"net"`
}

type MovementChartTotals struct {
	Inward  string `json:"inward"`
	Outward string `json:"outward"`
	Net     string `json:"net"`
}

type MovementChartResponse struct {
	From   string               `json:"from"`
	To     string               `json:"to"`
	Points []MovementChartPoint `json:"points"`
	Totals MovementChartTotals  `json:"totals"`
}

// GET /api/dashboard/movement-chart?days=30
// Buckets movement quantities per day across the window. Quantities are
// stored as text, so the folding happens here rather than in SQL.
func MovementChartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		days := 30
		if d := c.Query("days"); d != "" {
			if _, err := fmt.Sscan(d, &days); err != nil || days <= 0 || days > 365 {
				return fiber.NewError(fiber.StatusBadRequest, "days must be between 1 and 365")
			}
		}

		now := time.Now().UTC()
		end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		start := end.AddDate(0, 0, -(days - 1))

		var movements []models.Movement
		if err := database.DB.
			Where("date >= ? AND date < ?", start, end.AddDate(0, 0, 1)).
			Order("date ASC").
			Find(&movements).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Movements could not be loaded")
		}

		type bucket struct {
			inward  decimal.Decimal
			outward decimal.Decimal
		}
		buckets := make(map[string]*bucket)

		for _, m := range movements {
			label := m.Date.Format("2006-01-02")
			agg, ok := buckets[label]
			if !ok {
				agg = &bucket{}
				buckets[label] = agg
			}

			qty, err := decimal.NewFromString(strings.TrimSpace(m.Quantity))
			if err != nil {
				continue
			}
			switch m.Type {
			case models.MovementInward:
				agg.inward = agg.inward.Add(qty)
			case models.MovementOutward:
				agg.outward = agg.outward.Add(qty)
			}
		}

		labels := make([]string, 0, len(buckets))
		for label := range buckets {
			labels = append(labels, label)
		}
		sort.Strings(labels)

		points := make([]MovementChartPoint, 0, len(labels))
		totalIn, totalOut := decimal.Zero, decimal.Zero
		for _, label := range labels {
			b := buckets[label]
			points = append(points, MovementChartPoint{
				Label:   label,
				Inward:  b.inward.String(),
				Outward: b.outward.String(),
				Net:     b.inward.Sub(b.outward).String(),
			})
			totalIn = totalIn.Add(b.inward)
			totalOut = totalOut.Add(b.outward)
		}

		return c.JSON(MovementChartResponse{
			From:   start.Format("2006-01-02"),
			To:     end.Format("2006-01-02"),
			Points: points,
			Totals: MovementChartTotals{
				Inward:  totalIn.String(),
				Outward: totalOut.String(),
				Net:     totalIn.Sub(totalOut).String(),
			},
		})
	}
}
