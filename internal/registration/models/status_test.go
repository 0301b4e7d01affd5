package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "flock/pkg/domain-errors"
)

func TestParseStatus(t *testing.T) {
	t.Run("accepts canonical spellings", func(t *testing.T) {
		for _, raw := range []string{"pending", "confirmed", "declined"} {
			s, err := ParseStatus(raw)
			require.NoError(t, err)
			assert.Equal(t, raw, s.String())
			assert.True(t, s.IsValid())
		}
	})

	t.Run("rejects everything else", func(t *testing.T) {
		for _, raw := range []string{"", "approved", "Pending", "CONFIRMED", "cancelled"} {
			_, err := ParseStatus(raw)
			require.Error(t, err, "raw=%q", raw)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		}
	})
}

func TestStatuses(t *testing.T) {
	all := Statuses()
	assert.Equal(t, []Status{StatusPending, StatusConfirmed, StatusDeclined}, all)
	for _, s := range all {
		assert.True(t, s.IsValid())
	}
}
