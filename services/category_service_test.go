package services

import (
	"testing"

	"stockmate_server/lib"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCategoryInput(t *testing.T) {
	testCases := []struct {
		name      string
		inName    string
		inColor   string
		wantName  string
		wantColor string
		wantErr   bool
	}{
		{
			name:      "valid name and color",
			inName:    "Beverages",
			inColor:   "#FF0000",
			wantName:  "Beverages",
			wantColor: "#FF0000",
		},
		{
			name:      "missing color gets the default",
			inName:    "Snacks",
			wantName:  "Snacks",
			wantColor: DefaultCategoryColor,
		},
		{
			name:      "name is trimmed",
			inName:    "  Dairy  ",
			inColor:   "#00ff00",
			wantName:  "Dairy",
			wantColor: "#00ff00",
		},
		{
			name:    "empty name",
			inName:  "",
			wantErr: true,
		},
		{
			name:    "whitespace only name",
			inName:  "   ",
			wantErr: true,
		},
		{
			name:    "malformed color",
			inName:  "Frozen",
			inColor: "red",
			wantErr: true,
		},
		{
			name:    "short hex color",
			inName:  "Frozen",
			inColor: "#fff",
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			name, color, err := normalizeCategoryInput(tc.inName, tc.inColor)
			if tc.wantErr {
				assert.ErrorIs(t, err, lib.ErrValidation)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tc.wantName, name)
			assert.Equal(t, tc.wantColor, color)
		})
	}
}
