package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Len(t, c.Places, 2)
	assert.Equal(t, "drive", c.NetworkType)
	assert.Equal(t, -7.410320408090181, c.Start.Lat)
	assert.Equal(t, 109.34781290790698, c.End.Lon)
	assert.Equal(t, "rute_kampus_uin_saizu_presisi.html", c.Output)
	assert.Equal(t, 12, c.Zoom)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "rute.yaml")
	body := `
places:
  - Banyumas, Central Java, Indonesia
network_type: walk
start:
  label: Alun-alun
  lat: -7.4245
  lon: 109.2302
zoom: 14
overpass:
  timeout: 90s
  retry: 4
cache:
  path: cache/net.db
  ttl: 24h
`
	require.NoError(t, os.WriteFile(file, []byte(body), 0o644))

	c, err := Load(file)
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, []string{"Banyumas, Central Java, Indonesia"}, c.Places)
	assert.Equal(t, "walk", c.NetworkType)
	assert.Equal(t, "Alun-alun", c.Start.Label)
	assert.Equal(t, -7.4245, c.Start.Lat)
	assert.Equal(t, 14, c.Zoom)
	assert.Equal(t, 90*time.Second, c.Overpass.Timeout)
	assert.Equal(t, 4, c.Overpass.Retry)
	assert.Equal(t, 24*time.Hour, c.Cache.TTL)
	assert.Equal(t, filepath.Join(dir, "cache", "net.db"), c.Cache.Path)

	// untouched keys keep defaults
	assert.Equal(t, "Kampus 2 UIN Saizu (Tujuan)", c.End.Label)
	assert.Equal(t, Default().Overpass.URL, c.Overpass.URL)

	opts := c.ClientOptions()
	assert.Equal(t, 4, opts.Retry)
	assert.Equal(t, 90*time.Second, opts.Timeout)
}

func TestLoad_DefaultCachePathStays(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "rute.yaml")
	require.NoError(t, os.WriteFile(file, []byte("zoom: 13\ncache:\n  ttl: 1h\n"), 0o644))

	c, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, Default().Cache.Path, c.Cache.Path)
	assert.Equal(t, time.Hour, c.Cache.TTL)

	abs := filepath.Join(t.TempDir(), "net.db")
	require.NoError(t, os.WriteFile(file, []byte("cache:\n  path: "+abs+"\n"), 0o644))
	c, err = Load(file)
	require.NoError(t, err)
	assert.Equal(t, abs, c.Cache.Path)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(file, []byte("places: [unterminated"), 0o644))
	_, err = Load(file)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"no places", func(c *Config) { c.Places = nil }},
		{"blank place", func(c *Config) { c.Places = []string{"  "} }},
		{"network type", func(c *Config) { c.NetworkType = "boat" }},
		{"start lat", func(c *Config) { c.Start.Lat = 91 }},
		{"end lon", func(c *Config) { c.End.Lon = -181 }},
		{"output", func(c *Config) { c.Output = "" }},
		{"zoom low", func(c *Config) { c.Zoom = 0 }},
		{"zoom high", func(c *Config) { c.Zoom = 20 }},
		{"snap", func(c *Config) { c.SnapWarn = -1 }},
		{"retry", func(c *Config) { c.Overpass.Retry = -1 }},
		{"cache path", func(c *Config) { c.Cache.Path = "" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := Default()
			tc.mutate(&c)
			assert.ErrorIs(t, c.Validate(), ErrInvalid)
		})
	}

	c := Default()
	c.Cache.Path = ""
	c.Cache.Disabled = true
	assert.NoError(t, c.Validate())
}
