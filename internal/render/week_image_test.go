package render

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/espaceform/formation_portal/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekImage(t *testing.T) {
	ref := time.Date(2024, 9, 4, 0, 0, 0, 0, time.UTC)
	slots := []*model.ScheduleSlot{
		{
			ID:        uuid.New(),
			Date:      time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC),
			StartTime: "09:30",
			EndTime:   "12:30",
			Room:      "Salle 101",
			Color:     "#4CAF50",
			Notes:     "Développement Web",
		},
		{
			ID:        uuid.New(),
			Date:      time.Date(2024, 9, 4, 0, 0, 0, 0, time.UTC),
			StartTime: "13:30",
			EndTime:   "17:30",
			Color:     "#2196F3",
		},
	}

	data, err := WeekImage(ref, slots)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, imageWidth, img.Bounds().Dx())
	assert.Equal(t, imageHeight, img.Bounds().Dy())
}

func TestWeekImageEmptyWeek(t *testing.T) {
	data, err := WeekImage(time.Date(2024, 9, 4, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)

	_, err = png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  [3]uint8
	}{
		{name: "full hex", value: "#4CAF50", want: [3]uint8{0x4C, 0xAF, 0x50}},
		{name: "short hex", value: "#abc", want: [3]uint8{0xAA, 0xBB, 0xCC}},
		{name: "garbage falls back to gray", value: "vert", want: [3]uint8{158, 158, 158}},
		{name: "empty falls back to gray", value: "", want: [3]uint8{158, 158, 158}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseHexColor(tt.value)
			assert.Equal(t, tt.want, [3]uint8{got.R, got.G, got.B})
		})
	}
}
