package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	origArgs := os.Args
	os.Args = append([]string{"clinivault"}, args...)
	t.Cleanup(func() { os.Args = origArgs })
}

func TestParseFlags_Overrides(t *testing.T) {
	withArgs(t, "-a", "https://flags.example.org", "-d", "/tmp/f.db", "-i", "10")

	var c Config
	c.LoadDefaults()
	parseFlags(&c)

	assert.Equal(t, "https://flags.example.org", c.ServerBaseURL)
	assert.Equal(t, "/tmp/f.db", c.CredentialsDSN)
	assert.Equal(t, 10*time.Second, c.RefreshCheckInterval)
}

func TestParseFlags_KeepsDefaultsWhenAbsent(t *testing.T) {
	withArgs(t)

	var c Config
	c.LoadDefaults()
	parseFlags(&c)

	assert.Equal(t, "http://127.0.0.1:8080", c.ServerBaseURL)
	assert.Equal(t, 30*time.Second, c.RefreshCheckInterval)
}

func TestParseFlags_IgnoresForeignFlags(t *testing.T) {
	withArgs(t, "-a", "https://flags.example.org", "-unknown", "x")

	var c Config
	c.LoadDefaults()
	parseFlags(&c)

	assert.Equal(t, "https://flags.example.org", c.ServerBaseURL)
}
