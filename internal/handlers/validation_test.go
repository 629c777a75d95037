package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterDomainValidations(t *testing.T) {
	v := validator.New()
	require.NoError(t, registerDomainValidations(v))

	type payload struct {
		Unit     string `validate:"material_unit"`
		Category string `validate:"omitempty,snack_category"`
		Payment  string `validate:"omitempty,payment_method"`
	}

	assert.NoError(t, v.Struct(payload{Unit: "kg", Category: "Chips", Payment: "UPI"}))
	assert.Error(t, v.Struct(payload{Unit: "tons"}))
	assert.Error(t, v.Struct(payload{Unit: "kg", Category: "Candy"}))
	assert.Error(t, v.Struct(payload{Unit: "kg", Payment: "Barter"}))
}

func TestRespondBindError_Envelope(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondBindError(c, assert.AnError, "test")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Input validation failed", body["message"])
	errObj := body["error"].(map[string]interface{})
	assert.Equal(t, "VALIDATION_FAILED", errObj["code"])
	assert.Equal(t, assert.AnError.Error(), errObj["details"])
}
