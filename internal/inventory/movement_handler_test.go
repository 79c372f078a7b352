package inventory

import (
	"fmt"
	"net/http"
	"testing"

	"bondyard-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendMovement(t *testing.T) {
	app, db, _ := setupTest(t)

	resp := doJSON(t, app, http.MethodPost, "/api/vehicles", CreateVehicleRequest{
		VIN: "MOV1",
		Movements: []MovementRequest{
			{Type: "INWARD", Date: "2025-10-01", Quantity: "1"},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var vehicle VehicleResponse
	decodeJSON(t, resp, &vehicle)

	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/vehicles/%d/movements", vehicle.ID), MovementRequest{
		Type:     "outward",
		Date:     "2025-10-15",
		Quantity: "1",
		Notes:    "released to buyer",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var movement MovementResponse
	decodeJSON(t, resp, &movement)
	// Lowercase input is normalized on the way in.
	assert.Equal(t, "OUTWARD", movement.Type)
	assert.Equal(t, vehicle.ID, movement.VehicleID)

	// Appending leaves the earlier rows in place.
	var count int64
	db.Model(&models.Movement{}).Where("vehicle_id = ?", vehicle.ID).Count(&count)
	assert.Equal(t, int64(2), count)

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/vehicles/%d", vehicle.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var reloaded VehicleResponse
	decodeJSON(t, resp, &reloaded)
	assert.Equal(t, "0", reloaded.OnHand)
}

func TestAppendMovementValidation(t *testing.T) {
	app, _, _ := setupTest(t)

	resp := doJSON(t, app, http.MethodPost, "/api/vehicles", CreateVehicleRequest{VIN: "MOV2"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var vehicle VehicleResponse
	decodeJSON(t, resp, &vehicle)

	tests := []struct {
		name string
		body MovementRequest
	}{
		{"bad type", MovementRequest{Type: "UP", Date: "2025-10-01", Quantity: "1"}},
		{"bad date", MovementRequest{Type: "INWARD", Date: "01.10.2025", Quantity: "1"}},
		{"empty quantity", MovementRequest{Type: "INWARD", Date: "2025-10-01", Quantity: "  "}},
		{"non-numeric quantity", MovementRequest{Type: "INWARD", Date: "2025-10-01", Quantity: "1x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/vehicles/%d/movements", vehicle.ID), tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}

	resp = doJSON(t, app, http.MethodPost, "/api/vehicles/9999/movements", MovementRequest{
		Type: "INWARD", Date: "2025-10-01", Quantity: "1",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListMovementsOrderedByDate(t *testing.T) {
	app, _, _ := setupTest(t)

	resp := doJSON(t, app, http.MethodPost, "/api/vehicles", CreateVehicleRequest{
		VIN: "MOV3",
		Movements: []MovementRequest{
			{Type: "INWARD", Date: "2025-10-20", Quantity: "1"},
			{Type: "INWARD", Date: "2025-10-01", Quantity: "1"},
			{Type: "OUTWARD", Date: "2025-10-10", Quantity: "1"},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var vehicle VehicleResponse
	decodeJSON(t, resp, &vehicle)

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/vehicles/%d/movements", vehicle.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out []MovementResponse
	decodeJSON(t, resp, &out)
	require.Len(t, out, 3)
	assert.Equal(t, "2025-10-01", out[0].Date)
	assert.Equal(t, "2025-10-10", out[1].Date)
	assert.Equal(t, "2025-10-20", out[2].Date)
}

func TestDeleteMovement(t *testing.T) {
	app, db, _ := setupTest(t)

	resp := doJSON(t, app, http.MethodPost, "/api/vehicles", CreateVehicleRequest{
		VIN: "MOV4",
		Movements: []MovementRequest{
			{Type: "INWARD", Date: "2025-10-01", Quantity: "1"},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var first VehicleResponse
	decodeJSON(t, resp, &first)

	resp = doJSON(t, app, http.MethodPost, "/api/vehicles", CreateVehicleRequest{
		VIN: "MOV5",
		Movements: []MovementRequest{
			{Type: "INWARD", Date: "2025-10-01", Quantity: "1"},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var second VehicleResponse
	decodeJSON(t, resp, &second)

	// A movement can only be deleted through its own vehicle.
	resp = doJSON(t, app, http.MethodDelete,
		fmt.Sprintf("/api/vehicles/%d/movements/%d", second.ID, first.Movements[0].ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete,
		fmt.Sprintf("/api/vehicles/%d/movements/%d", first.ID, first.Movements[0].ID), nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	var count int64
	db.Model(&models.Movement{}).Where("vehicle_id = ?", first.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}
