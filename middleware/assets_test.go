package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeFileHash(t *testing.T) {
	fsys := fstest.MapFS{"css/site.css": {Data: []byte("body { color: red; }")}}

	hash := computeFileHash(fsys, "css/site.css")
	assert.Len(t, hash, 8)
	assert.Equal(t, "", computeFileHash(fsys, "missing.css"))
}

func TestAssetVersions(t *testing.T) {
	fsys := fstest.MapFS{
		"css/site.css":  {Data: []byte("body { color: red; }")},
		"js/reveal.js":  {Data: []byte("console.log(1)")},
		"images/og.png": {Data: []byte{0x89, 0x50}},
	}
	InitAssetVersions(fsys)

	v := AssetVersion("css/site.css")
	assert.Len(t, v, 8)
	assert.NotEqual(t, v, AssetVersion("js/reveal.js"))
	assert.Equal(t, "1", AssetVersion("js/unknown.js"))
	assert.Equal(t, "/static/css/site.css?v="+v, AssetURL("css/site.css"))
}

func TestStaticCache(t *testing.T) {
	e := echo.New()
	handler := StaticCache()(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	rec := httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(httptest.NewRequest(http.MethodGet, "/static/css/site.css?v=abc", nil), rec)))
	assert.Contains(t, rec.Header().Get("Cache-Control"), "immutable")

	rec = httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(httptest.NewRequest(http.MethodGet, "/static/css/site.css", nil), rec)))
	assert.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))
}
