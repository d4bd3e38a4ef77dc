package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmergencyStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to EmergencyStatus
		want     bool
	}{
		{EmergencyStatusActive, EmergencyStatusResolved, true},
		{EmergencyStatusActive, EmergencyStatusClosed, true},
		{EmergencyStatusActive, EmergencyStatusActive, true},
		{EmergencyStatusResolved, EmergencyStatusResolved, true},
		{EmergencyStatusResolved, EmergencyStatusActive, false},
		{EmergencyStatusClosed, EmergencyStatusResolved, false},
		{EmergencyStatusActive, EmergencyStatus("escalated"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestEmergencyStatus_IsTerminal(t *testing.T) {
	assert.False(t, EmergencyStatusActive.IsTerminal())
	assert.True(t, EmergencyStatusResolved.IsTerminal())
	assert.True(t, EmergencyStatusClosed.IsTerminal())
}
