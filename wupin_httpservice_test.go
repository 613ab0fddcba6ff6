package main

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wupin-golang/converter"
	"wupin-golang/ipa"
	"wupin-golang/lexicon"
)

var (
	testWords = map[string]string{
		"苏州":  "sou1 tseu1",
		"苏州话": "sou1 tseu1 gho6",
		"吴语":  "ngou6 gniu6",
		"上海人": "zaon6 he5 gnin6",
	}
	testChars = map[string][]string{
		"苏": {"sou1"},
		"州": {"tseu1"},
		"话": {"gho6"},
		"人": {"gnin6", "zen6"},
		"阿": {"a1", "aeq7"},
	}
)

func newTestService(t *testing.T) *WupinService {
	t.Helper()
	gin.SetMode(gin.TestMode)
	lex := lexicon.New(testWords, testChars)
	conv, err := converter.New(lex)
	require.NoError(t, err)
	return NewWupinService(lex, conv, ipa.ToneSandhi, ServerConfig{CacheTTL: time.Minute, CacheCleanup: time.Minute})
}

type apiResponse struct {
	Success bool           `json:"success"`
	Cached  bool           `json:"cached"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

func doRequest(t *testing.T, r http.Handler, method, target, body string) (int, apiResponse) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

func TestConvertHandler(t *testing.T) {
	r := newTestService(t).Router()

	code, resp := doRequest(t, r, http.MethodPost, "/api/convert", `{"text":"苏州话阿"}`)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, resp.Success)
	assert.False(t, resp.Cached)
	assert.Equal(t, "sou1 tseu1 gho6 a1", resp.Data["pinyin"])

	segs, ok := resp.Data["segments"].([]any)
	require.True(t, ok)
	require.Len(t, segs, 2)
	assert.Equal(t, []any{"a1", "aeq7"}, segs[1].(map[string]any)["alternatives"])

	_, resp = doRequest(t, r, http.MethodPost, "/api/convert", `{"text":"苏州话阿"}`)
	assert.True(t, resp.Cached)
	assert.Equal(t, "sou1 tseu1 gho6 a1", resp.Data["pinyin"])
}

func TestConvertHandler_IPA(t *testing.T) {
	r := newTestService(t).Router()

	code, resp := doRequest(t, r, http.MethodPost, "/api/convert", `{"text":"苏州","ipa":true,"tone":"none"}`)
	require.Equal(t, http.StatusOK, code)
	segs := resp.Data["segments"].([]any)
	require.Len(t, segs, 1)
	assert.Equal(t, "səu ʦøʏ", segs[0].(map[string]any)["ipa"])
}

func TestConvertHandler_BadRequest(t *testing.T) {
	r := newTestService(t).Router()

	code, resp := doRequest(t, r, http.MethodPost, "/api/convert", `{}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, resp.Success)

	code, _ = doRequest(t, r, http.MethodPost, "/api/convert", `{"text":"苏州","tone":"loud"}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestIPAHandler(t *testing.T) {
	r := newTestService(t).Router()

	code, resp := doRequest(t, r, http.MethodPost, "/api/ipa", `{"key":"sou1 tseu1"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "səu44 ʦøʏ44", resp.Data["ipa"])
	assert.Equal(t, "sandhi", resp.Data["tone"])

	code, _ = doRequest(t, r, http.MethodPost, "/api/ipa", `{"key":""}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestLookupHandler(t *testing.T) {
	r := newTestService(t).Router()

	_, resp := doRequest(t, r, http.MethodGet, "/api/lookup?word="+url.QueryEscape("苏州"), "")
	assert.Equal(t, true, resp.Data["found"])
	assert.Equal(t, "sou1 tseu1", resp.Data["pinyin"])
	assert.NotContains(t, resp.Data, "suggestions")

	_, resp = doRequest(t, r, http.MethodGet, "/api/lookup?word="+url.QueryEscape("阿"), "")
	assert.Equal(t, true, resp.Data["found"])
	assert.Equal(t, []any{"a1", "aeq7"}, resp.Data["readings"])

	_, resp = doRequest(t, r, http.MethodGet, "/api/lookup?word="+url.QueryEscape("苏州人"), "")
	assert.Equal(t, false, resp.Data["found"])
	assert.Equal(t, []any{"苏州", "苏州话", "上海人"}, resp.Data["suggestions"])

	code, _ := doRequest(t, r, http.MethodGet, "/api/lookup", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestMandarinHandler(t *testing.T) {
	r := newTestService(t).Router()

	code, resp := doRequest(t, r, http.MethodPost, "/api/mandarin", `{"zhtext":"OK"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "OK", resp.Data["zhtext"])
	assert.Equal(t, "", resp.Data["pinyins"])

	code, resp = doRequest(t, r, http.MethodPost, "/api/mandarin", `{"zhtext":"中文"}`)
	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, resp.Data["pinyins"])

	code, _ = doRequest(t, r, http.MethodPost, "/api/mandarin", `{}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestHealthHandler(t *testing.T) {
	r := newTestService(t).Router()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.EqualValues(t, 4, body["word_count"])
	assert.EqualValues(t, 5, body["char_count"])
	assert.EqualValues(t, converter.DefaultMaxWordLen, body["max_word_len"])
}

func TestCORSPreflight(t *testing.T) {
	r := newTestService(t).Router()

	req := httptest.NewRequest(http.MethodOptions, "/api/convert", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
