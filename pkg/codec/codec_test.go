package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/lingo/pkg/errors"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{".json", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"yml", FormatYAML, false},
		{".yml", FormatYAML, false},
		{"toml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.True(t, errors.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestForPath(t *testing.T) {
	c, err := ForPath("locales/fr.json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, c.Format())

	c, err = ForPath("locales/fr.yml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, c.Format())

	_, err = ForPath("locales/fr")
	assert.True(t, errors.IsValidationError(err))

	_, err = ForPath("locales/fr.po")
	assert.True(t, errors.IsValidationError(err))

	_, err = ForFormat("xml")
	assert.True(t, errors.IsValidationError(err))
}

func TestFormatExtension(t *testing.T) {
	assert.Equal(t, ".json", FormatJSON.Extension())
	assert.Equal(t, "yaml", FormatYAML.String())
	assert.Equal(t, []Format{FormatJSON, FormatYAML}, Formats())
}
