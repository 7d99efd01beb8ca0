package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()

	c1, err := ReadOrCreate(dir)
	require.NoError(t, err)
	require.NotNil(t, c1)

	// defaults applied on first create
	assert.Equal(t, defaultProviderTimeoutSec, c1.ProviderTimeoutSec)
	assert.Equal(t, defaultCacheTTLMinutes, c1.CacheTTLMinutes)
	assert.Equal(t, defaultDBFileName, c1.DBFileName)
	assert.Equal(t, defaultLogLevel, c1.LogLevel)

	c1.StressProviderURL = "https://indicators.example.com/v1"
	c1.ProviderTimeoutSec = 10
	c1.LogLevel = "debug"

	err = Save(dir, c1)
	require.NoError(t, err)

	c2, err := ReadOrCreate(dir)
	require.NoError(t, err)
	require.NotNil(t, c2)
	assert.Equal(t, c1.StressProviderURL, c2.StressProviderURL)
	assert.Equal(t, c1.ProviderTimeoutSec, c2.ProviderTimeoutSec)
	assert.Equal(t, c1.LogLevel, c2.LogLevel)
}

func TestConfigValidation(t *testing.T) {
	_, err := ReadOrCreate("")
	assert.Error(t, err)

	err = Save("", &Config{})
	assert.Error(t, err)

	err = Save(t.TempDir(), nil)
	assert.Error(t, err)
}

func TestConfigAppliesDefaultsToSparseFile(t *testing.T) {
	dir := t.TempDir()

	err := Save(dir, &Config{StressProviderURL: "https://indicators.example.com"})
	require.NoError(t, err)

	c, err := ReadOrCreate(dir)
	require.NoError(t, err)
	assert.Equal(t, "https://indicators.example.com", c.StressProviderURL)
	assert.Equal(t, defaultProviderTimeoutSec, c.ProviderTimeoutSec)
	assert.Equal(t, defaultCacheTTLMinutes, c.CacheTTLMinutes)
	assert.Equal(t, defaultDBFileName, c.DBFileName)
}
