package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/svmlab/pkg/errors"
	"github.com/YuminosukeSato/svmlab/svm"
)

func TestBuildClassifier(t *testing.T) {
	cfg := DefaultClassifierConfig()
	cfg.C = 10

	est, err := Build(cfg)
	require.NoError(t, err)

	clf, ok := est.(*svm.SVC)
	require.True(t, ok)
	assert.Equal(t, 10.0, clf.C())
	assert.Equal(t, svm.KernelLinear, clf.Kernel())
}

func TestBuildRegressor(t *testing.T) {
	cfg := DefaultRegressorConfig()
	cfg.Kernel = "rbf"

	est, err := Build(cfg)
	require.NoError(t, err)

	reg, ok := est.(*svm.SVR)
	require.True(t, ok)
	assert.Equal(t, 1.0, reg.C())
}

func TestBuildIsDeterministic(t *testing.T) {
	cfg := DefaultClassifierConfig()
	cfg.C = 0.5
	cfg.Kernel = "rbf"

	a, err := Build(cfg)
	require.NoError(t, err)
	b, err := Build(cfg)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestBuildInvalidConfiguration(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown kernel", func(c *Config) { c.Kernel = "poly" }},
		{"unknown class weight", func(c *Config) { c.ClassWeight = "heavy" }},
		{"non-positive c", func(c *Config) { c.C = 0 }},
		{"negative c", func(c *Config) { c.C = -1 }},
		{"negative sweep value", func(c *Config) { c.CGrid = []float64{1, -10} }},
		{"k fold too small", func(c *Config) { c.KFold = 1 }},
		{"rfe on rbf kernel", func(c *Config) { c.RFE = true; c.Kernel = "rbf" }},
		{"rfe zero target", func(c *Config) { c.RFE = true; c.NFeaturesToSelect = 0 }},
		{"rfe zero step", func(c *Config) { c.RFE = true; c.RFEStep = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultClassifierConfig()
			tt.mutate(&cfg)

			_, err := Build(cfg)
			require.Error(t, err)

			var invalid *errors.InvalidConfigurationError
			assert.True(t, errors.As(err, &invalid))
		})
	}
}

func TestRegressorConfigSkipsClassWeight(t *testing.T) {
	cfg := DefaultRegressorConfig()
	cfg.ClassWeight = "heavy"

	// Class weighting is a classification concern; regression ignores it.
	require.NoError(t, cfg.Validate())
}
