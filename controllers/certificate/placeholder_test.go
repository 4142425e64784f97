package controllers_test

import (
	"net/http"
	"strconv"
	"testing"

	"lms/database"
	certModels "lms/models/certificate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertPlaceholdersInsertsWithDefaults(t *testing.T) {
	app := setupTestApp(t)
	_, token := createUser(t, "instructor", "INSTRUCTOR")
	certID := createCertificate(t, app, token, "Defaults", nil)

	status, envelope := doJSON(t, app, http.MethodPost, certURL(certID)+"/placeholders", token, map[string]interface{}{
		"placeholders": []map[string]interface{}{
			{"key": "recipientName", "label": "Name", "value": "Alice"},
		},
	})
	require.Equal(t, http.StatusOK, status)

	placeholders := data(t, envelope)["placeholders"].([]interface{})
	require.Len(t, placeholders, 1)

	row := placeholders[0].(map[string]interface{})
	assert.Equal(t, 0.0, row["x"])
	assert.Equal(t, 0.0, row["y"])
	assert.Equal(t, 14.0, row["font_size"])
	assert.Equal(t, "#000000", row["color"])
	assert.Equal(t, true, row["is_visible"])
	assert.Equal(t, 0.0, row["discount"])
}

func TestUpsertPlaceholdersIsIdempotent(t *testing.T) {
	app := setupTestApp(t)
	_, token := createUser(t, "instructor", "INSTRUCTOR")
	certID := createCertificate(t, app, token, "Idempotent", nil)

	batch := map[string]interface{}{
		"placeholders": []map[string]interface{}{
			{"key": "name", "label": "Name", "value": "Alice", "x": 10.0, "y": 20.0},
			{"key": "date", "label": "Date", "value": "2026-01-01", "x": 5.0, "y": 5.0},
		},
	}

	status, _ := doJSON(t, app, http.MethodPost, certURL(certID)+"/placeholders", token, batch)
	require.Equal(t, http.StatusOK, status)
	status, envelope := doJSON(t, app, http.MethodPost, certURL(certID)+"/placeholders", token, batch)
	require.Equal(t, http.StatusOK, status)

	// The same batch twice yields the same final row set, no duplicates per key
	placeholders := data(t, envelope)["placeholders"].([]interface{})
	assert.Len(t, placeholders, 2)

	var count int64
	require.NoError(t, database.Database.Db.Model(&certModels.Placeholder{}).
		Where("certificate_id = ?", certID).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestUpsertPlaceholdersUpdatesAndInserts(t *testing.T) {
	app := setupTestApp(t)
	_, token := createUser(t, "instructor", "INSTRUCTOR")
	certID := createCertificate(t, app, token, "Mixed Batch", nil)

	status, _ := doJSON(t, app, http.MethodPost, certURL(certID)+"/placeholders", token, map[string]interface{}{
		"placeholders": []map[string]interface{}{
			{"key": "name", "label": "Name", "value": "Alice", "x": 10.0, "y": 20.0},
		},
	})
	require.Equal(t, http.StatusOK, status)

	// Second batch updates "name" in place and inserts "date"
	status, envelope := doJSON(t, app, http.MethodPost, certURL(certID)+"/placeholders", token, map[string]interface{}{
		"placeholders": []map[string]interface{}{
			{"key": "name", "label": "Name", "value": "Bob", "x": 10.0, "y": 20.0},
			{"key": "date", "label": "Date", "value": "2024-01-01", "x": 5.0, "y": 5.0},
		},
	})
	require.Equal(t, http.StatusOK, status)

	placeholders := data(t, envelope)["placeholders"].([]interface{})
	require.Len(t, placeholders, 2)

	byKey := map[string]map[string]interface{}{}
	for _, p := range placeholders {
		row := p.(map[string]interface{})
		byKey[row["key"].(string)] = row
	}

	assert.Equal(t, "Bob", byKey["name"]["value"])
	assert.Equal(t, "2024-01-01", byKey["date"]["value"])
	assert.Equal(t, 5.0, byKey["date"]["x"])
}

func TestUpsertPlaceholdersOmittedFieldsResetToDefaults(t *testing.T) {
	app := setupTestApp(t)
	_, token := createUser(t, "instructor", "INSTRUCTOR")
	certID := createCertificate(t, app, token, "Full State", nil)

	status, _ := doJSON(t, app, http.MethodPost, certURL(certID)+"/placeholders", token, map[string]interface{}{
		"placeholders": []map[string]interface{}{
			{"key": "name", "label": "Name", "value": "Alice", "x": 30.0, "y": 30.0, "font_size": 20, "color": "#FF0000"},
		},
	})
	require.Equal(t, http.StatusOK, status)

	// A payload is the complete desired state: re-upserting the key with
	// only a value resets the omitted styling and position to defaults.
	status, envelope := doJSON(t, app, http.MethodPost, certURL(certID)+"/placeholders", token, map[string]interface{}{
		"placeholders": []map[string]interface{}{
			{"key": "name", "value": "Bob"},
		},
	})
	require.Equal(t, http.StatusOK, status)

	row := data(t, envelope)["placeholders"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "Bob", row["value"])
	assert.Equal(t, 0.0, row["x"])
	assert.Equal(t, 0.0, row["y"])
	assert.Equal(t, 14.0, row["font_size"])
	assert.Equal(t, "#000000", row["color"])
	assert.Equal(t, true, row["is_visible"])
	assert.Equal(t, 0.0, row["discount"])
}

func TestUpsertPlaceholdersZeroValuesApply(t *testing.T) {
	app := setupTestApp(t)
	_, token := createUser(t, "instructor", "INSTRUCTOR")
	certID := createCertificate(t, app, token, "Zero Values", nil)

	status, _ := doJSON(t, app, http.MethodPost, certURL(certID)+"/placeholders", token, map[string]interface{}{
		"placeholders": []map[string]interface{}{
			{"key": "name", "label": "Name", "value": "Alice", "x": 30.0, "y": 30.0, "is_visible": true},
		},
	})
	require.Equal(t, http.StatusOK, status)

	// Hiding the field and moving it to the origin must stick
	status, envelope := doJSON(t, app, http.MethodPost, certURL(certID)+"/placeholders", token, map[string]interface{}{
		"placeholders": []map[string]interface{}{
			{"key": "name", "label": "Name", "value": "Alice", "x": 0.0, "y": 0.0, "is_visible": false},
		},
	})
	require.Equal(t, http.StatusOK, status)

	row := data(t, envelope)["placeholders"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, 0.0, row["x"])
	assert.Equal(t, 0.0, row["y"])
	assert.Equal(t, false, row["is_visible"])
}

func TestUpsertPlaceholdersUnknownCertificate(t *testing.T) {
	app := setupTestApp(t)
	_, token := createUser(t, "instructor", "INSTRUCTOR")

	status, _ := doJSON(t, app, http.MethodPost, "/certificate/9999/placeholders", token, map[string]interface{}{
		"placeholders": []map[string]interface{}{
			{"key": "name", "label": "Name", "value": "Alice"},
		},
	})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUpdatePlaceholderPosition(t *testing.T) {
	app := setupTestApp(t)
	_, token := createUser(t, "instructor", "INSTRUCTOR")
	certID := createCertificate(t, app, token, "Drag Target", nil)

	status, envelope := doJSON(t, app, http.MethodPost, certURL(certID)+"/placeholders", token, map[string]interface{}{
		"placeholders": []map[string]interface{}{
			{"key": "name", "label": "Name", "value": "Alice", "x": 10.0, "y": 10.0},
		},
	})
	require.Equal(t, http.StatusOK, status)

	row := data(t, envelope)["placeholders"].([]interface{})[0].(map[string]interface{})
	placeholderID := strconv.Itoa(int(row["ID"].(float64)))

	status, envelope = doJSON(t, app, http.MethodPatch, "/certificate/placeholder/"+placeholderID+"/position", token, map[string]interface{}{
		"x": 42.5,
		"y": 77.0,
	})
	require.Equal(t, http.StatusOK, status)

	// Echo of applied values
	applied := data(t, envelope)
	assert.Equal(t, 42.5, applied["x"])
	assert.Equal(t, 77.0, applied["y"])

	var stored certModels.Placeholder
	require.NoError(t, database.Database.Db.First(&stored, row["ID"]).Error)
	assert.Equal(t, 42.5, stored.X)
	assert.Equal(t, 77.0, stored.Y)
}

func TestUpdatePlaceholderPositionMalformedID(t *testing.T) {
	app := setupTestApp(t)
	_, token := createUser(t, "instructor", "INSTRUCTOR")

	// Rejected before any write
	status, _ := doJSON(t, app, http.MethodPatch, "/certificate/placeholder/not-a-number/position", token, map[string]interface{}{
		"x": 1.0,
		"y": 1.0,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestUpdatePlaceholderPositionNotFound(t *testing.T) {
	app := setupTestApp(t)
	_, token := createUser(t, "instructor", "INSTRUCTOR")

	status, _ := doJSON(t, app, http.MethodPatch, "/certificate/placeholder/12345/position", token, map[string]interface{}{
		"x": 1.0,
		"y": 1.0,
	})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestGetPlaceholders(t *testing.T) {
	app := setupTestApp(t)
	_, token := createUser(t, "instructor", "INSTRUCTOR")
	certID := createCertificate(t, app, token, "Listing", nil)

	status, _ := doJSON(t, app, http.MethodPost, certURL(certID)+"/placeholders", token, map[string]interface{}{
		"placeholders": []map[string]interface{}{
			{"key": "name", "label": "Name", "value": "Alice"},
			{"key": "date", "label": "Date", "value": "2026-06-01"},
		},
	})
	require.Equal(t, http.StatusOK, status)

	status, envelope := doJSON(t, app, http.MethodGet, certURL(certID)+"/placeholders", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, data(t, envelope)["placeholders"].([]interface{}), 2)
}
