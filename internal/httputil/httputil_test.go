package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondErrorWithExtras(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondErrorWithExtras(rec, http.StatusBadRequest, "unknown layout type: chart", map[string]interface{}{"layout": "chart"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Bad Request", body["title"])
	assert.Equal(t, "unknown layout type: chart", body["detail"])
	assert.Equal(t, "chart", body["layout"])
}

func TestOptionalString(t *testing.T) {
	var body struct {
		Name OptionalString `json:"name"`
		Desc OptionalString `json:"desc"`
		Icon OptionalString `json:"icon"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Plan","desc":null}`), &body))

	assert.True(t, body.Name.Present)
	require.NotNil(t, body.Name.Value)
	assert.Equal(t, "Plan", *body.Name.Value)
	assert.True(t, body.Desc.Present)
	assert.Nil(t, body.Desc.Value)
	assert.False(t, body.Icon.Present)

	assert.Equal(t, "Plan", *body.Name.Patch())
	assert.Equal(t, "", *body.Desc.Patch())
	assert.Nil(t, body.Icon.Patch())
}

func TestParseJSONAndQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/?limit=5&bad=x", strings.NewReader(`{"a":1}`))
	var dest map[string]int
	require.NoError(t, ParseJSON(httptest.NewRecorder(), req, &dest))
	assert.Equal(t, 1, dest["a"])

	assert.Equal(t, 5, QueryInt(req, "limit", 10))
	assert.Equal(t, 10, QueryInt(req, "bad", 10))
	assert.Equal(t, 10, QueryInt(req, "missing", 10))

	bad := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	assert.Error(t, ParseJSON(httptest.NewRecorder(), bad, &dest))
}
