package config_test

import (
	"testing"
	"time"

	"github.com/lintang-b-s/osm-reachability/pkg/logger/config"
	"github.com/stretchr/testify/assert"
)

func TestConfigurationValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Configuration
		wantErr bool
	}{
		{"info", config.Configuration{Level: config.INFO_LEVEL, TimeFormat: time.RFC3339Nano}, false},
		{"debug", config.Configuration{Level: config.DEBUG_LEVEL, TimeFormat: time.RFC3339}, false},
		{"level too high", config.Configuration{Level: 5, TimeFormat: time.RFC3339}, true},
		{"no time format", config.Configuration{Level: config.INFO_LEVEL}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
