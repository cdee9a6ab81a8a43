package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondErrorBodyShape(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondNotFound(rec)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, http.StatusNotFound, body.Error)
	assert.Equal(t, MsgNotFound, body.Message)
}

func TestRespondHelpersStatusAndMessage(t *testing.T) {
	cases := []struct {
		respond func(http.ResponseWriter)
		status  int
		message string
	}{
		{RespondBadRequest, http.StatusBadRequest, MsgInvalidRequest},
		{RespondNotFound, http.StatusNotFound, MsgNotFound},
		{RespondMethodNotAllowed, http.StatusMethodNotAllowed, MsgMethodNotAllowed},
		{RespondInternalError, http.StatusInternalServerError, MsgInternalError},
	}

	for _, c := range cases {
		rec := httptest.NewRecorder()
		c.respond(rec)

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, c.status, rec.Code)
		assert.Equal(t, c.status, body.Error)
		assert.Equal(t, c.message, body.Message)
	}
}
