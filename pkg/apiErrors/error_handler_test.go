package apiErrors

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name   string
		code   string
		status int
	}{
		{"formato inválido", ErrInvalidFormat, http.StatusBadRequest},
		{"pesos inválidos", ErrInvalidWeightings, http.StatusBadRequest},
		{"upload grande demais", ErrPayloadTooLarge, http.StatusRequestEntityTooLarge},
		{"sem dados", ErrNoSalesData, http.StatusNotFound},
		{"privilégio", ErrInsufficientPrivilege, http.StatusForbidden},
		{"código desconhecido", "XYZ_999", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tt.code, "mensagem", map[string]int{"total": 90})

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body APIError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, "mensagem", body.Message)
		})
	}
}

func TestFromError(t *testing.T) {
	apiErr := FromError(nil, ErrInvalidFormat)
	assert.Equal(t, ErrInternalServer, apiErr.Code)

	apiErr = FromError(errors.New("falhou"), ErrCommunication)
	assert.Equal(t, ErrCommunication, apiErr.Code)
	assert.Equal(t, "SRV_004: falhou", apiErr.Error())
}
