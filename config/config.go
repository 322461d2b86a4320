// Package config holds the settings of the road route planner and reads them
// from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/uinsaizu/rute/geo"
	"github.com/uinsaizu/rute/osm"
)

// ErrInvalid indicates a configuration value that cannot be used.
var ErrInvalid = errors.New("config: invalid value")

// Marker is a labelled location on the map.
type Marker struct {
	Label     string `yaml:"label"`
	geo.Point `yaml:",inline"`
}

// Overpass configures network download.
type Overpass struct {
	URL          string        `yaml:"url"`
	NominatimURL string        `yaml:"nominatim_url"`
	UserAgent    string        `yaml:"user_agent"`
	Timeout      time.Duration `yaml:"timeout"`
	Retry        int           `yaml:"retry"`
	RetryDelay   time.Duration `yaml:"retry_delay"`
}

// Cache configures the local network cache.
type Cache struct {
	Path     string        `yaml:"path"`
	Disabled bool          `yaml:"disabled"`
	TTL      time.Duration `yaml:"ttl"` // 0 keeps entries forever
}

// Config is everything a route run needs.
type Config struct {
	Places      []string `yaml:"places"`
	NetworkType string   `yaml:"network_type"`

	Start Marker `yaml:"start"`
	End   Marker `yaml:"end"`

	Output string `yaml:"output"`
	Zoom   int    `yaml:"zoom"`

	// SnapWarn is the distance in metres between a marker and its nearest road
	// node above which a warning is logged.
	SnapWarn float64 `yaml:"snap_warn_meters"`

	Overpass Overpass `yaml:"overpass"`
	Cache    Cache    `yaml:"cache"`
}

// Default returns the campus-to-campus route between the two UIN Saizu sites.
func Default() Config {
	client := osm.DefaultClientOptions()

	return Config{
		Places: []string{
			"Banyumas, Central Java, Indonesia",
			"Purbalingga, Central Java, Indonesia",
		},
		NetworkType: string(osm.Drive),
		Start: Marker{
			Label: "Kampus 1 UIN Saizu (Awal)",
			Point: geo.Point{Lat: -7.410320408090181, Lon: 109.231287179008},
		},
		End: Marker{
			Label: "Kampus 2 UIN Saizu (Tujuan)",
			Point: geo.Point{Lat: -7.388018015327295, Lon: 109.34781290790698},
		},
		Output:   "rute_kampus_uin_saizu_presisi.html",
		Zoom:     12,
		SnapWarn: 500,
		Overpass: Overpass{
			URL:          client.OverpassURL,
			NominatimURL: client.NominatimURL,
			UserAgent:    client.UserAgent,
			Timeout:      client.Timeout,
			Retry:        client.Retry,
			RetryDelay:   client.RetryDelay,
		},
		Cache: Cache{
			Path: "rute-cache.db",
			TTL:  7 * 24 * time.Hour,
		},
	}
}

// Load reads a YAML file over Default. Keys missing from the file keep their
// default value. A relative cache path set in the file is resolved against the
// file's directory; the default cache path is left as is.
func Load(filePath string) (Config, error) {
	c := Default()

	data, err := os.ReadFile(filePath)
	if err != nil {
		return c, fmt.Errorf("failed to read config file %s: %s", filePath, err)
	}

	// Only a cache path written in the file is relative to it.
	defaultCache := c.Cache.Path
	c.Cache.Path = ""
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("failed to parse config YAML %s: %s", filePath, err)
	}

	switch {
	case c.Cache.Path == "":
		c.Cache.Path = defaultCache
	case !filepath.IsAbs(c.Cache.Path):
		c.Cache.Path = filepath.Join(filepath.Dir(filePath), c.Cache.Path)
	}

	return c, nil
}

// ClientOptions converts the overpass section for osm.NewClient.
func (c Config) ClientOptions() osm.ClientOptions {
	return osm.ClientOptions{
		OverpassURL:  c.Overpass.URL,
		NominatimURL: c.Overpass.NominatimURL,
		UserAgent:    c.Overpass.UserAgent,
		Timeout:      c.Overpass.Timeout,
		Retry:        c.Overpass.Retry,
		RetryDelay:   c.Overpass.RetryDelay,
	}
}

// Validate checks every field a run depends on.
func (c Config) Validate() error {
	if len(c.Places) == 0 {
		return fmt.Errorf("%w: at least one place is required", ErrInvalid)
	}
	for i, p := range c.Places {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("%w: place #%d is empty", ErrInvalid, i+1)
		}
	}
	if _, err := osm.ParseNetworkType(c.NetworkType); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalid, err)
	}
	if err := c.Start.Validate(); err != nil {
		return fmt.Errorf("%w: start: %s", ErrInvalid, err)
	}
	if err := c.End.Validate(); err != nil {
		return fmt.Errorf("%w: end: %s", ErrInvalid, err)
	}
	if c.Output == "" {
		return fmt.Errorf("%w: output path is empty", ErrInvalid)
	}
	if c.Zoom < 1 || c.Zoom > 19 {
		return fmt.Errorf("%w: zoom %d outside [1,19]", ErrInvalid, c.Zoom)
	}
	if c.SnapWarn < 0 {
		return fmt.Errorf("%w: snap_warn_meters %v is negative", ErrInvalid, c.SnapWarn)
	}
	if c.Overpass.Retry < 0 {
		return fmt.Errorf("%w: retry %d is negative", ErrInvalid, c.Overpass.Retry)
	}
	if !c.Cache.Disabled && c.Cache.Path == "" {
		return fmt.Errorf("%w: cache path is empty", ErrInvalid)
	}

	return nil
}
