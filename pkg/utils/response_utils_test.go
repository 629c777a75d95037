package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRespondWithError_Envelope(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondWithError(c, NewAPIError(http.StatusConflict, ErrCodeConflict, "sku already in use", "sku ABC"))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.True(t, c.IsAborted())
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "sku already in use", body["message"])
	errObj := body["error"].(map[string]interface{})
	assert.Equal(t, ErrCodeConflict, errObj["code"])
	assert.Equal(t, "sku ABC", errObj["details"])
}

func TestRespondList_IncludesCount(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondList(c, []string{}, 0)

	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(0), body["count"])
	assert.NotContains(t, body, "message")
}

func TestRespondSuccess_WithMessage(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondSuccess(c, http.StatusCreated, "Created", map[string]string{"id": "1"})

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Created", body["message"])
	assert.NotContains(t, body, "count")
}

func TestQueryHelpers(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x?inStock=true&limit=20&bad=abc&blank=%20", nil)

	b, err := QueryBool(c, "inStock")
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.True(t, *b)

	n, err := QueryInt(c, "limit", 100)
	require.NoError(t, err)
	assert.Equal(t, 20, n)

	n, err = QueryInt(c, "missing", 100)
	require.NoError(t, err)
	assert.Equal(t, 100, n)

	_, err = QueryInt(c, "bad", 100)
	assert.Error(t, err)
	_, err = QueryBool(c, "bad")
	assert.Error(t, err)

	assert.Nil(t, OptionalQuery(c, "blank"))
}

func TestGetenvDuration(t *testing.T) {
	t.Setenv("SNACK_TEST_TIMEOUT", "15s")
	assert.Equal(t, 15*time.Second, GetenvDuration("SNACK_TEST_TIMEOUT", time.Second))

	t.Setenv("SNACK_TEST_TIMEOUT", "7")
	assert.Equal(t, 7*time.Second, GetenvDuration("SNACK_TEST_TIMEOUT", time.Second))

	t.Setenv("SNACK_TEST_TIMEOUT", "soon")
	assert.Equal(t, time.Second, GetenvDuration("SNACK_TEST_TIMEOUT", time.Second))

	assert.Equal(t, "fallback", Getenv("SNACK_TEST_UNSET", "fallback"))
}
