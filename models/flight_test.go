package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthStatusOf(t *testing.T) {
	tests := []struct {
		name     string
		response AIResponse
		want     HealthStatus
	}{
		{"normal marker", "✅ Normal. No adverse conditions expected.", HealthNormal},
		{"monitor marker", "⚠️ Monitor: gusty crosswinds near STA.", HealthMonitor},
		{"at risk marker", "❌ At Risk: destination runway closed.", HealthAtRisk},
		{"keyword only", "Normal operations expected throughout.", HealthNormal},
		{"no marker", "The flight follows its usual routing.", HealthUnknown},
		{"empty", "", HealthUnknown},
		{"marker buried deep is not a classification", AIResponse("A very long narrative preamble that keeps going before finally saying Normal"), HealthUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HealthStatusOf(tt.response))
		})
	}
}

func TestStationCodeValidity(t *testing.T) {
	assert.True(t, StationCode("KMIA").IsValid())
	assert.False(t, StationNotFound.IsValid())
	assert.False(t, StationCode("").IsValid())
	assert.False(t, StationCode("MIA").IsValid())
}

func TestNormalizeStationCode(t *testing.T) {
	assert.Equal(t, StationCode("SKRG"), NormalizeStationCode("  skrg "))
}

func TestRunwaySetJoined(t *testing.T) {
	assert.Equal(t, "08L, 26R", RunwaySet{"08L", "26R"}.Joined())
	assert.Equal(t, "Not available", RunwaySet{}.Joined())
}
