package inventory

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"bondyard-backend/internal/database"
	"bondyard-backend/internal/storage"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// Every pooled connection to :memory: is its own empty database, so
	// the pool has to stay at one connection.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })

	return db
}

func newTestApp(store storage.Store) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Unexpected server error"})
		},
	})

	app.Get("/api/vehicles", ListVehiclesHandler())
	app.Get("/api/vehicles/export", ExportVehiclesHandler())
	app.Post("/api/vehicles/import", ImportVehiclesHandler())
	app.Post("/api/vehicles", CreateVehicleHandler())
	app.Get("/api/vehicles/:id", GetVehicleHandler())
	app.Put("/api/vehicles/:id", UpdateVehicleHandler())
	app.Delete("/api/vehicles/:id", DeleteVehicleHandler(store))

	app.Get("/api/vehicles/:id/movements", ListMovementsHandler())
	app.Post("/api/vehicles/:id/movements", CreateMovementHandler())
	app.Delete("/api/vehicles/:id/movements/:movementID", DeleteMovementHandler())

	app.Get("/api/vehicles/:id/attachments", ListAttachmentsHandler())
	app.Post("/api/vehicles/:id/attachments", UploadAttachmentsHandler(store))
	app.Delete("/api/vehicles/:id/attachments/:attachmentID", DeleteAttachmentHandler(store))

	app.Get("/api/statuses", ListStatusesHandler())

	return app
}

// setupTest wires a fresh in-memory database, a temp-dir local store and a
// fiber app carrying the vehicle routes.
func setupTest(t *testing.T) (*fiber.App, *gorm.DB, string) {
	t.Helper()

	db := setupDB(t)

	uploadDir := t.TempDir()
	store, err := storage.NewLocalStore(uploadDir)
	require.NoError(t, err)

	return newTestApp(store), db, uploadDir
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}
