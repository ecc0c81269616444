package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	assert.False(t, c.Display.CompactMode)
	assert.True(t, c.Display.ShowRowNumbers)
	assert.True(t, c.Behavior.CaseInsensitiveDefault)
	assert.Equal(t, uint64(DefaultMaxDisplayRows), c.Behavior.MaxDisplayRows)
	assert.True(t, c.Behavior.AutoExecuteOnLoad)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name         string
		updateFunc   func(c *Config)
		expectErrMsg string
	}{
		{
			name:         "default config is valid",
			updateFunc:   nil,
			expectErrMsg: "",
		},
		{
			name: "max display rows zero is invalid",
			updateFunc: func(c *Config) {
				c.Behavior.MaxDisplayRows = 0
			},
			expectErrMsg: "behavior.max_display_rows must be greater than zero",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			if tc.updateFunc != nil {
				tc.updateFunc(&cfg)
			}

			err := cfg.Validate()
			if tc.expectErrMsg == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tc.expectErrMsg)
			}
		})
	}
}
