package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rentit-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(t *testing.T, handler gin.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := gin.New()
	r.POST("/test", handler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestJSON(t *testing.T) {
	w := perform(t, func(c *gin.Context) {
		JSON(c, http.StatusCreated, gin.H{"id": "1"}, "created")
	}, "")

	require.Equal(t, http.StatusCreated, w.Code)

	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, http.StatusCreated, env.StatusCode)
	assert.Equal(t, "created", env.Message)
	assert.True(t, env.Success)
}

func TestError_TypedError(t *testing.T) {
	w := perform(t, func(c *gin.Context) {
		Error(c, apperror.Forbidden("Not authorized to update this product"))
	}, "")

	require.Equal(t, http.StatusForbidden, w.Code)

	var env ErrorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, http.StatusForbidden, env.StatusCode)
	assert.False(t, env.Success)
	assert.Equal(t, "Not authorized to update this product", env.Message)
	assert.Empty(t, env.Errors)
}

func TestError_UntypedErrorHidesCause(t *testing.T) {
	w := perform(t, func(c *gin.Context) {
		Error(c, errors.New("pq: relation does not exist"))
	}, "")

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "relation does not exist")
}

func TestBindError_ListsFields(t *testing.T) {
	type payload struct {
		Email string `json:"email" binding:"required,email"`
	}

	w := perform(t, func(c *gin.Context) {
		var p payload
		if err := c.ShouldBindJSON(&p); err != nil {
			BindError(c, err)
			return
		}
		JSON(c, http.StatusOK, nil, "ok")
	}, `{"email":"not-an-email"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var env ErrorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Len(t, env.Errors, 1)
	assert.Contains(t, env.Errors[0], "Email")
}
