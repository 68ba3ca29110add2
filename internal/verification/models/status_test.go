package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStatuses = []Status{
	StatusInitiated, StatusProcessing, StatusRequiresAction, StatusSuccess, StatusFailedTechnical,
	StatusFailedAge, StatusExpired, StatusInsufficientCredit, StatusPending,
}

func TestTransitionGraph(t *testing.T) {
	allowed := map[Status]map[Status]bool{
		StatusInitiated:      {StatusProcessing: true, StatusRequiresAction: true},
		StatusProcessing:     {StatusSuccess: true, StatusFailedTechnical: true},
		StatusRequiresAction: {StatusSuccess: true, StatusFailedTechnical: true},
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			assert.Equal(t, allowed[from][to], from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestTerminalStatuses(t *testing.T) {
	for _, s := range allStatuses {
		switch s {
		case StatusInitiated, StatusProcessing, StatusRequiresAction:
			assert.False(t, s.IsTerminal(), s)
		default:
			assert.True(t, s.IsTerminal(), s)
		}
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range allStatuses {
		got, err := ParseStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := ParseStatus("cancelled")
	require.Error(t, err)
}
