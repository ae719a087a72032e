package favorites

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveRequiresConfirmation(t *testing.T) {
	body := `{"flight":{"ORIGIN":"MAD","DEST":"BCN","AIRLINE":"IB","FL_DATE":"2024-01-05"}}`
	req := httptest.NewRequest(http.MethodPost, "/favorites/remove", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handleRemove(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp struct {
		Success              bool   `json:"success"`
		ConfirmationRequired bool   `json:"confirmationRequired"`
		Prompt               string `json:"prompt"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.True(t, resp.ConfirmationRequired)
	assert.Contains(t, resp.Prompt, "MAD → BCN (IB)")
}

func TestRemoveConfirmedCallsBackend(t *testing.T) {
	var deleted bool
	setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodDelete {
			deleted = true
		}
		w.Write([]byte(`{"success":true,"data":{"favorites":[]}}`))
	})

	body := `{"flight":{"ORIGIN":"MAD","DEST":"BCN","AIRLINE":"IB","FL_DATE":"2024-01-05"},"confirmed":true}`
	req := httptest.NewRequest(http.MethodPost, "/favorites/remove", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handleRemove(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, deleted)
}

func TestRemoveSkipConfirmationBypassesPrompt(t *testing.T) {
	var deleted bool
	setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodDelete {
			deleted = true
		}
		w.Write([]byte(`{"success":true,"data":{"favorites":[]}}`))
	})

	body := `{"flight":{"ORIGIN":"MAD","DEST":"BCN","AIRLINE":"IB","FL_DATE":"2024-01-05"},"skipConfirmation":true}`
	req := httptest.NewRequest(http.MethodPost, "/favorites/remove", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handleRemove(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, deleted)
}

func TestExportXLSXProducesWorkbook(t *testing.T) {
	setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"favorites":[{"ORIGIN":"MAD","DEST":"BCN","AIRLINE":"IB","FL_DATE":"2024-01-05"}]}}`))
	})

	req := httptest.NewRequest(http.MethodGet, "/favorites/export/xlsx", nil)
	rec := httptest.NewRecorder()
	handleExportXLSX(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "ubicair_favoritos_")

	// xlsx files are zip archives underneath.
	_, err := zip.NewReader(bytes.NewReader(rec.Body.Bytes()), int64(rec.Body.Len()))
	assert.NoError(t, err)
}

func TestAddSurfacesBackendFailure(t *testing.T) {
	setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"success":false,"error":"backend unavailable"}`))
	})

	body := `{"flight":{"ORIGIN":"MAD","DEST":"BCN","AIRLINE":"IB","FL_DATE":"2024-01-05"}}`
	req := httptest.NewRequest(http.MethodPost, "/favorites/add", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handleAdd(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "backend unavailable")
}
