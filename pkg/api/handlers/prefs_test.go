package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Keerthan22-sys/Instigar/pkg/cache"
	"github.com/Keerthan22-sys/Instigar/pkg/models"
	"github.com/Keerthan22-sys/Instigar/pkg/prefs"
)

func setupPrefsTest(t *testing.T) *PrefsHandler {
	t.Helper()
	mr := miniredis.RunT(t)
	c := &cache.Client{Redis: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	return NewPrefsHandler(prefs.NewAssignees(c), prefs.NewChannels(c))
}

func prefsContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestListChannels_Defaults(t *testing.T) {
	handler := setupPrefsTest(t)

	c, rec := prefsContext(http.MethodGet, "/api/channels", "")
	require.NoError(t, handler.ListChannels(c))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string][]prefs.Option
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp["data"], 4)
	assert.Equal(t, "Walk-ins", resp["data"][0].Label)
}

func TestAddAssignee_PersistsAndSlugs(t *testing.T) {
	handler := setupPrefsTest(t)

	c, rec := prefsContext(http.MethodPost, "/api/assignees", `{"name":"Priya Nair"}`)
	require.NoError(t, handler.AddAssignee(c))

	require.Equal(t, http.StatusCreated, rec.Code)

	var opt prefs.Option
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &opt))
	assert.Equal(t, "priya_nair", opt.Value)

	listC, listRec := prefsContext(http.MethodGet, "/api/assignees", "")
	require.NoError(t, handler.ListAssignees(listC))
	var resp map[string][]prefs.Option
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &resp))
	assert.Len(t, resp["data"], 4)
}

func TestAddChannel_DuplicateConflicts(t *testing.T) {
	handler := setupPrefsTest(t)

	c, _ := prefsContext(http.MethodPost, "/api/channels", `{"name":"Trade Fair"}`)
	require.NoError(t, handler.AddChannel(c))

	dupC, dupRec := prefsContext(http.MethodPost, "/api/channels", `{"name":"trade fair"}`)
	require.NoError(t, handler.AddChannel(dupC))

	assert.Equal(t, http.StatusConflict, dupRec.Code)
}

func TestAddAssignee_BlankRejected(t *testing.T) {
	handler := setupPrefsTest(t)

	c, rec := prefsContext(http.MethodPost, "/api/assignees", `{"name":""}`)
	require.NoError(t, handler.AddAssignee(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRemoveChannel_DefaultForbidden(t *testing.T) {
	handler := setupPrefsTest(t)

	c, rec := prefsContext(http.MethodDelete, "/api/channels/phone", "")
	c.SetParamNames("value")
	c.SetParamValues("phone")
	require.NoError(t, handler.RemoveChannel(c))

	assert.Equal(t, http.StatusForbidden, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "immutable_default", resp.Error)
}

func TestRemoveAssignee_CustomThenGone(t *testing.T) {
	handler := setupPrefsTest(t)

	addC, _ := prefsContext(http.MethodPost, "/api/assignees", `{"name":"Priya Nair"}`)
	require.NoError(t, handler.AddAssignee(addC))

	c, rec := prefsContext(http.MethodDelete, "/api/assignees/priya_nair", "")
	c.SetParamNames("value")
	c.SetParamValues("priya_nair")
	require.NoError(t, handler.RemoveAssignee(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	againC, againRec := prefsContext(http.MethodDelete, "/api/assignees/priya_nair", "")
	againC.SetParamNames("value")
	againC.SetParamValues("priya_nair")
	require.NoError(t, handler.RemoveAssignee(againC))
	assert.Equal(t, http.StatusNotFound, againRec.Code)
}
