package inventory

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"bondyard-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildImportSheet(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	header := []interface{}{
		"VIN", "Stock No", "Make", "Model", "Year", "Color",
		"Yard Location", "Status", "Supplier", "Buyer", "In Date", "Notes",
	}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func postImport(t *testing.T, app *fiber.App, filename string, content *bytes.Buffer) *http.Response {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content.Bytes())
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/vehicles/import", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestImportVehicles(t *testing.T) {
	app, db, _ := setupTest(t)

	// One vehicle already in the yard, its VIN shows up again in the sheet.
	resp := doJSON(t, app, http.MethodPost, "/api/vehicles", CreateVehicleRequest{VIN: "IMP-DUP"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	sheet := buildImportSheet(t, [][]interface{}{
		{"IMP1", "BY-10", "Toyota", "Vitz", 2018, "Blue", "Row A / Bay 2", "In Bond", "Osaka Auctions", "", "2025-11-02", "clean"},
		{"IMP2", "BY-11", "Suzuki", "Swift", 2020, "Red", "", "", "", "", "", ""},
		{"IMP-DUP", "BY-12", "Honda", "Fit", 2017, "", "", "", "", "", "", ""},
		{"IMP3", "BY-13", "Mazda", "Demio", "not-a-year", "", "", "", "", "", "", ""},
		{"IMP4", "BY-14", "Nissan", "March", 2019, "", "", "Scrapped", "", "", "", ""},
		{"", "BY-15", "", "", "", "", "", "", "", "", "", ""},
	})

	importResp := postImport(t, app, "vehicles.xlsx", sheet)
	require.Equal(t, http.StatusOK, importResp.StatusCode)

	var out struct {
		Created int      `json:"created"`
		Skipped []string `json:"skipped"`
	}
	decodeJSON(t, importResp, &out)

	assert.Equal(t, 2, out.Created)
	require.Len(t, out.Skipped, 4)
	assert.Contains(t, out.Skipped[0], "IMP-DUP")
	assert.Contains(t, out.Skipped[1], "not-a-year")
	assert.Contains(t, out.Skipped[2], "Scrapped")
	assert.Contains(t, out.Skipped[3], "VIN is empty")

	var imp1 models.Vehicle
	require.NoError(t, db.First(&imp1, "vin = ?", "IMP1").Error)
	assert.Equal(t, "Toyota", imp1.Make)
	assert.Equal(t, 2018, imp1.Year)
	assert.Equal(t, models.StatusInBond, imp1.Status)
	require.NotNil(t, imp1.InDate)
	assert.Equal(t, "2025-11-02", imp1.InDate.Format("2006-01-02"))

	// Blank status falls back to In Bond.
	var imp2 models.Vehicle
	require.NoError(t, db.First(&imp2, "vin = ?", "IMP2").Error)
	assert.Equal(t, models.StatusInBond, imp2.Status)
}

func TestImportRejectsWrongFileType(t *testing.T) {
	app, _, _ := setupTest(t)

	content := bytes.NewBufferString("vin,make\nX1,Toyota\n")
	resp := postImport(t, app, "vehicles.csv", content)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestImportWithoutFile(t *testing.T) {
	app, _, _ := setupTest(t)

	resp := doJSON(t, app, http.MethodPost, "/api/vehicles/import", map[string]string{"x": "y"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
