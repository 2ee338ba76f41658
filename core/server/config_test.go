package server_test

import (
	"testing"
	"time"

	"inventory-manager/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Addr(t *testing.T) {
	assert.Equal(t, ":8080", server.Config{Port: "8080"}.Addr())
}

func TestConfig_AuthEnabled(t *testing.T) {
	assert.False(t, server.Config{}.AuthEnabled())
	assert.True(t, server.Config{ApiKey: "k"}.AuthEnabled())
}

func TestConfig_ShutdownTimeout(t *testing.T) {
	tests := []struct {
		name    string
		seconds int
		want    time.Duration
	}{
		{"Configured", 3, 3 * time.Second},
		{"Zero", 0, 10 * time.Second},
		{"Negative", -1, 10 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{ShutdownTimeoutSeconds: tt.seconds}
			assert.Equal(t, tt.want, c.ShutdownTimeout())
		})
	}
}
