package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVehicleStatusValid(t *testing.T) {
	for _, s := range VehicleStatuses {
		assert.True(t, s.Valid(), "status %q", s)
	}

	assert.False(t, VehicleStatus("").Valid())
	assert.False(t, VehicleStatus("in bond").Valid())
	assert.False(t, VehicleStatus("Scrapped").Valid())
}

func TestMovementTypeValid(t *testing.T) {
	assert.True(t, MovementInward.Valid())
	assert.True(t, MovementOutward.Valid())

	assert.False(t, MovementType("").Valid())
	assert.False(t, MovementType("inward").Valid())
	assert.False(t, MovementType("TRANSFER").Valid())
}
