package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidBloodGroup(t *testing.T) {
	for _, g := range BloodGroups {
		assert.True(t, ValidBloodGroup(g), g)
	}
	assert.False(t, ValidBloodGroup(""))
	assert.False(t, ValidBloodGroup("o+"), "matching is case sensitive")
	assert.False(t, ValidBloodGroup("C+"))
	assert.False(t, ValidBloodGroup("AB"))
}

func TestValidDistrict(t *testing.T) {
	assert.True(t, ValidDistrict("Chennai"))
	assert.True(t, ValidDistrict("Virudhunagar"))
	assert.False(t, ValidDistrict("chennai"))
	assert.False(t, ValidDistrict("Mumbai"))
	assert.False(t, ValidDistrict(""))
}

func TestAvailabilityWindowIsFourteenDays(t *testing.T) {
	assert.Equal(t, 14*24*time.Hour, AvailabilityWindow)
}

func TestDonorActive(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	d := Donor{
		IsAvailable:  true,
		RegisteredAt: now,
		ExpiresAt:    now.Add(AvailabilityWindow),
	}

	assert.True(t, d.Active(now))
	assert.True(t, d.Active(now.Add(AvailabilityWindow-time.Second)))

	// Expiry boundary is exclusive: at expires_at the profile is gone.
	assert.False(t, d.Active(now.Add(AvailabilityWindow)))
	assert.False(t, d.Active(now.Add(15*24*time.Hour)))

	// Deactivation overrides any remaining window.
	d.IsAvailable = false
	assert.False(t, d.Active(now))
}
