package route

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/uinsaizu/rute/config"
	"github.com/uinsaizu/rute/geo"
)

// parse runs the command with its action swapped for loadConfig.
func parse(t *testing.T, args ...string) (config.Config, error) {
	t.Helper()
	var cfg config.Config
	var loadErr error

	cmd := Cmd()
	cmd.Action = func(_ context.Context, cmd *cli.Command) error {
		cfg, loadErr = loadConfig(cmd)
		return nil
	}
	require.NoError(t, cmd.Run(context.Background(), append([]string{"route"}, args...)))

	return cfg, loadErr
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := parse(t)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadConfig_Flags(t *testing.T) {
	cfg, err := parse(t,
		"--place", "Cilacap, Central Java, Indonesia",
		"--place", "Kebumen, Central Java, Indonesia",
		"--network-type", "bike",
		"--start", "-7.72, 109.01",
		"--end-label", "Tujuan",
		"-o", "out.html",
		"--zoom", "14",
		"--no-cache",
		"--timeout", "45s",
		"--retry", "5",
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"Cilacap, Central Java, Indonesia", "Kebumen, Central Java, Indonesia"}, cfg.Places)
	assert.Equal(t, "bike", cfg.NetworkType)
	assert.Equal(t, geo.Point{Lat: -7.72, Lon: 109.01}, cfg.Start.Point)
	assert.Equal(t, "Kampus 1 UIN Saizu (Awal)", cfg.Start.Label)
	assert.Equal(t, "Tujuan", cfg.End.Label)
	assert.Equal(t, "out.html", cfg.Output)
	assert.Equal(t, 14, cfg.Zoom)
	assert.True(t, cfg.Cache.Disabled)
	assert.Equal(t, 45*time.Second, cfg.Overpass.Timeout)
	assert.Equal(t, 5, cfg.Overpass.Retry)
}

func TestLoadConfig_FileThenFlags(t *testing.T) {
	file := filepath.Join(t.TempDir(), "rute.yaml")
	require.NoError(t, os.WriteFile(file, []byte("zoom: 13\noutput: from-file.html\n"), 0o644))

	cfg, err := parse(t, "--config", file, "--output", "from-flag.html")
	require.NoError(t, err)
	assert.Equal(t, 13, cfg.Zoom)
	assert.Equal(t, "from-flag.html", cfg.Output)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := parse(t, "--start", "north")
	assert.ErrorIs(t, err, geo.ErrBadPoint)

	_, err = parse(t, "--network-type", "boat")
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestReportFailure(t *testing.T) {
	var buf bytes.Buffer
	err := reportFailure(&buf, errors.New("download network: overpass down"))

	var exit cli.ExitCoder
	require.ErrorAs(t, err, &exit)
	assert.Equal(t, 1, exit.ExitCode())
	assert.Empty(t, err.Error(), "the message is printed here, not by the caller")

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "overpass down"))
	assert.Contains(t, out, "Oops, terjadi kesalahan: download network: overpass down")
	assert.Contains(t, out, "Overpass dapat diakses")
}
