package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flock/internal/registration/models"
)

func TestByKey(t *testing.T) {
	for _, d := range All() {
		found, ok := ByKey(d.Key)
		require.True(t, ok)
		assert.Equal(t, d.Entity, found.Entity)
	}

	_, ok := ByKey("bogus")
	assert.False(t, ok)
}

func TestDispositionLabel(t *testing.T) {
	assert.Equal(t, "confirmed", Events.DispositionLabel(models.StatusConfirmed))
	assert.Equal(t, "approved", HomeGroups.DispositionLabel(models.StatusConfirmed))
	assert.Equal(t, "approved", Serving.DispositionLabel(models.StatusConfirmed))

	// Pending and declined read the same everywhere.
	for _, d := range All() {
		assert.Equal(t, "pending", d.DispositionLabel(models.StatusPending))
		assert.Equal(t, "declined", d.DispositionLabel(models.StatusDeclined))
	}
}

func TestParseDisposition(t *testing.T) {
	t.Run("approval domains accept their synonym", func(t *testing.T) {
		for _, d := range []Descriptor{HomeGroups, Serving} {
			s, err := d.ParseDisposition("approved")
			require.NoError(t, err)
			assert.Equal(t, models.StatusConfirmed, s)
		}
	})

	t.Run("canonical spellings work everywhere", func(t *testing.T) {
		for _, d := range All() {
			for _, raw := range []string{"pending", "confirmed", "declined"} {
				s, err := d.ParseDisposition(raw)
				require.NoError(t, err)
				assert.Equal(t, raw, s.String())
			}
		}
	})

	t.Run("events domain does not accept approved", func(t *testing.T) {
		_, err := Events.ParseDisposition("approved")
		require.Error(t, err)
	})

	t.Run("unknown strings are rejected", func(t *testing.T) {
		_, err := HomeGroups.ParseDisposition("cancelled")
		require.Error(t, err)
	})
}
