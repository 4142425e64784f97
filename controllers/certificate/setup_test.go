package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	certModels "lms/models/certificate"
	certificateRoutes "lms/routers/certificateRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestApp wires the certificate routes against a fresh in-memory
// database, exactly as main.go does against postgres.
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:    "test-secret",
		SaltRound: 4,
	}

	// A named shared-cache database so every pooled connection sees the
	// same tables, unique per test to keep tests independent.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&certModels.Certificate{},
		&certModels.Placeholder{},
		&certModels.Issuance{},
	))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	certificateRoutes.SetupCertificateRoutes(app)
	return app
}

// createUser inserts a user with the given role and returns it with a token
func createUser(t *testing.T, name, role string) (models.User, string) {
	t.Helper()

	user := models.User{
		Name:     name,
		Email:    name + "@example.com",
		Password: "not-used-in-these-tests",
		Role:     role,
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)

	return user, token
}

// doJSON runs one request through the fiber app and decodes the response envelope
func doJSON(t *testing.T, app *fiber.App, method, url, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, url, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &envelope), "response was not JSON: %s", raw)

	return resp.StatusCode, envelope
}

// data extracts the data field from a response envelope as a map
func data(t *testing.T, envelope map[string]interface{}) map[string]interface{} {
	t.Helper()
	m, ok := envelope["data"].(map[string]interface{})
	require.True(t, ok, "expected object data, got %v", envelope["data"])
	return m
}
