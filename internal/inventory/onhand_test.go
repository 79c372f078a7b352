package inventory

import (
	"testing"
	"time"

	"bondyard-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func mv(mt models.MovementType, qty string) models.Movement {
	return models.Movement{
		Type:     mt,
		Date:     time.Date(2025, 12, 9, 0, 0, 0, 0, time.UTC),
		Quantity: qty,
	}
}

func TestOnHand(t *testing.T) {
	tests := []struct {
		name      string
		movements []models.Movement
		want      string
	}{
		{
			name:      "no movements balances to zero",
			movements: nil,
			want:      "0",
		},
		{
			name: "inward only",
			movements: []models.Movement{
				mv(models.MovementInward, "1"),
				mv(models.MovementInward, "2"),
			},
			want: "3",
		},
		{
			name: "inward minus outward",
			movements: []models.Movement{
				mv(models.MovementInward, "5"),
				mv(models.MovementOutward, "2"),
			},
			want: "3",
		},
		{
			name: "fractional quantities",
			movements: []models.Movement{
				mv(models.MovementInward, "2.5"),
				mv(models.MovementInward, "2.5"),
				mv(models.MovementOutward, "1.25"),
			},
			want: "3.75",
		},
		{
			name: "outward can run past zero",
			movements: []models.Movement{
				mv(models.MovementInward, "1"),
				mv(models.MovementOutward, "3"),
			},
			want: "-2",
		},
		{
			name: "unparseable legacy quantity counts as zero",
			movements: []models.Movement{
				mv(models.MovementInward, "4"),
				mv(models.MovementInward, "a few"),
				mv(models.MovementOutward, "1"),
			},
			want: "3",
		},
		{
			name: "quantity text with surrounding spaces",
			movements: []models.Movement{
				mv(models.MovementInward, " 2 "),
			},
			want: "2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OnHand(tt.movements).String())
		})
	}
}
