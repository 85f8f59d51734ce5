package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/capkmeans/config"
	"github.com/katalvlaran/capkmeans/kmeans"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 5, cfg.Clustering.Clusters)
	assert.Equal(t, []int{1, 1, 1, 1, 1}, cfg.Clustering.DemandVector())

	kc, err := cfg.Clustering.KMeans()
	require.NoError(t, err)
	assert.Equal(t, kmeans.DefaultMaxIterations, kc.MaxIterations)
	assert.Equal(t, kmeans.InitBoundingBox, kc.Init)
}

func TestLoadFormats(t *testing.T) {
	files := map[string]string{
		"run.yaml": `
clustering:
  clusters: 3
  demand: [2, 0, 4]
  max_iterations: 12
  seed: 7
  init: sample
log:
  level: debug
`,
		"run.toml": `
[clustering]
clusters = 3
demand = [2, 0, 4]
max_iterations = 12
seed = 7
init = "sample"

[log]
level = "debug"
`,
		"run.json": `{"clustering": {"clusters": 3, "demand": [2, 0, 4], "max_iterations": 12, "seed": 7, "init": "sample"}, "log": {"level": "debug"}}`,
	}
	for name, body := range files {
		t.Run(name, func(t *testing.T) {
			cfg, err := config.Load(writeFile(t, name, body))
			require.NoError(t, err)

			kc, err := cfg.Clustering.KMeans()
			require.NoError(t, err)
			assert.Equal(t, 3, kc.K)
			assert.Equal(t, []int{2, 0, 4}, kc.Demand)
			assert.Equal(t, 12, kc.MaxIterations)
			assert.Equal(t, int64(7), kc.Seed)
			assert.Equal(t, kmeans.InitSamplePoints, kc.Init)
			assert.Equal(t, "debug", cfg.Log.Level)
			// untouched sections keep defaults
			assert.Equal(t, ":8080", cfg.Server.Addr)
			assert.Equal(t, 1, cfg.Clustering.Restarts)
		})
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	for name, body := range map[string]string{
		"bad.yaml": "clustering:\n  clustres: 3\n",
		"bad.toml": "[clustering]\nclustres = 3\n",
		"bad.json": `{"clustering": {"clustres": 3}}`,
	} {
		_, err := config.Load(writeFile(t, name, body))
		require.Error(t, err, name)
	}
}

func TestLoadUnknownExtension(t *testing.T) {
	_, err := config.Load(writeFile(t, "run.ini", "clusters=3"))
	require.ErrorIs(t, err, config.ErrUnknownFormat)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CAPKMEANS_CLUSTERS", "4")
	t.Setenv("CAPKMEANS_MIN_POINTS", "3")
	t.Setenv("CAPKMEANS_MAX_ITERATIONS", "9")
	t.Setenv("CAPKMEANS_SEED", "-11")
	t.Setenv("CAPKMEANS_LOG_LEVEL", "WARN")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 3, 3, 3}, cfg.Clustering.DemandVector())
	assert.Equal(t, 9, cfg.Clustering.MaxIterations)
	assert.Equal(t, int64(-11), cfg.Clustering.Seed)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestEnvBadValue(t *testing.T) {
	env := map[string]string{"CAPKMEANS_CLUSTERS": "many"}
	lookup := func(k string) (string, bool) { v, ok := env[k]; return v, ok }
	err := config.ApplyEnv(config.Default(), lookup)
	require.ErrorIs(t, err, config.ErrBadEnv)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*config.Config){
		"zero clusters":    func(c *config.Config) { c.Clustering.Clusters = 0 },
		"zero iterations":  func(c *config.Config) { c.Clustering.MaxIterations = 0 },
		"negative demand":  func(c *config.Config) { c.Clustering.Clusters = 2; c.Clustering.Demand = []int{1, -1} },
		"demand length":    func(c *config.Config) { c.Clustering.Demand = []int{1, 2} },
		"bad init":         func(c *config.Config) { c.Clustering.Init = "kmeans++" },
		"bad level":        func(c *config.Config) { c.Log.Level = "loud" },
		"bad input format": func(c *config.Config) { c.Input.Format = "shp" },
		"empty addr":       func(c *config.Config) { c.Server.Addr = "" },
		"negative scale":   func(c *config.Config) { c.Clustering.CostScale = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := config.Default()
			mutate(cfg)
			err := cfg.Validate()
			require.ErrorIs(t, err, config.ErrInvalid)
		})
	}
}

func TestValidateMessage(t *testing.T) {
	cfg := config.Default()
	cfg.Clustering.Init = "random"
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "config.clustering.init must be one of: bbox sample"), err.Error())
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, "yaml", config.FormatOf("a/b.YML"))
	assert.Equal(t, "toml", config.FormatOf("x.toml"))
	assert.Equal(t, "json", config.FormatOf("x.json"))
	assert.Equal(t, "", config.FormatOf("x"))
}
