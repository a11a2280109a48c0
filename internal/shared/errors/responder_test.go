package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(t *testing.T, handler gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.GET("/things/:id", handler)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/things/42", nil))
	return rec
}

func TestRespondWritesProblemJSON(t *testing.T) {
	rec := serve(t, func(c *gin.Context) {
		NewResponder("").Respond(c, NewNotFoundProblem("thing", "42"))
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))

	var body ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, TypeNotFound, body.Type)
	assert.Equal(t, "/things/42", body.Instance)
	assert.Equal(t, "thing", body.Extensions["resourceType"])
}

func TestChainedResponderUsesFirstMatchingMapper(t *testing.T) {
	sentinel := errors.New("sentinel")
	responder := NewChainedResponder("https://example.test",
		func(err error) (ProblemDetail, bool) {
			if errors.Is(err, sentinel) {
				return ErrConflict.WithDetail(err.Error()), true
			}
			return ProblemDetail{}, false
		},
	)

	rec := serve(t, func(c *gin.Context) { responder.RespondError(c, sentinel) })
	require.Equal(t, http.StatusConflict, rec.Code)
	var body ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "https://example.test"+TypeConflict, body.Type)

	rec = serve(t, func(c *gin.Context) { responder.RespondError(c, errors.New("db password leaked")) })
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestWithExtensionDoesNotMutateTemplate(t *testing.T) {
	p := NewPeriodOverlapProblem("brw-1", "brw-2", "overlap")
	assert.Equal(t, "brw-1", p.Extensions["existingBorrowingId"])
	assert.Equal(t, "brw-2", p.Extensions["newBorrowingId"])
	assert.Nil(t, ErrPeriodOverlap.Extensions)
	assert.Equal(t, http.StatusConflict, p.Status)
}

func TestResponderPassesProblemErrorsThrough(t *testing.T) {
	rec := serve(t, func(c *gin.Context) {
		var err error = NewValidationProblem(map[string]string{"name": "required"})
		NewResponder("").RespondError(c, err)
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), TypeValidation)
}
