package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LOBYXLYX/javascript-interpreter/internal/interp"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
)

func locationProp(t *testing.T, cfg Config, name string) string {
	t.Helper()
	in := interp.New()
	window := newTestWindow()
	installLocation(in, window, cfg)
	loc, ok := window.Get("location")
	if !ok {
		t.Fatalf("location not installed")
	}
	v, ok := loc.Record().Get(name)
	if !ok {
		t.Fatalf("location.%s missing", name)
	}
	return jsvalue.ToString(v)
}

func TestLocationParsesFullSeedURL(t *testing.T) {
	cfg := Config{Domain: "https://example.com/foo/bar?q=1#section"}
	assert.Equal(t, "https:", locationProp(t, cfg, "protocol"))
	assert.Equal(t, "example.com", locationProp(t, cfg, "hostname"))
	assert.Equal(t, "/foo/bar", locationProp(t, cfg, "pathname"))
	assert.Equal(t, "?q=1", locationProp(t, cfg, "search"))
	assert.Equal(t, "#section", locationProp(t, cfg, "hash"))
}

func TestLocationDefaultsBareHostnameToHTTPS(t *testing.T) {
	cfg := Config{Domain: "localhost"}
	assert.Equal(t, "https:", locationProp(t, cfg, "protocol"))
	assert.Equal(t, "localhost", locationProp(t, cfg, "hostname"))
	assert.Equal(t, "/", locationProp(t, cfg, "pathname"))
	assert.Equal(t, "", locationProp(t, cfg, "search"))
}

func TestLocationAssignUpdatesHref(t *testing.T) {
	cfg := Config{Domain: "example.com"}
	in := interp.New()
	window := newTestWindow()
	installLocation(in, window, cfg)
	loc, _ := window.Get("location")
	assignFn, _ := loc.Record().Get("assign")
	_, err := in.CallValue(assignFn, loc, []jsvalue.Value{jsvalue.Str("https://other.example/x")})
	assert.NoError(t, err)
	href, _ := loc.Record().Get("href")
	assert.Equal(t, "https://other.example/x", jsvalue.ToString(href))
}
