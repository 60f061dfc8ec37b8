package weather

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hylin/go-cwa-forecast/internal/types"
)

func TestResolveLocation(t *testing.T) {
	t.Run("every supported code resolves to a non-empty name", func(t *testing.T) {
		for _, code := range SupportedCodes() {
			name, err := ResolveLocation(code)
			require.NoError(t, err, "code %q should resolve", code)
			assert.NotEmpty(t, name)
		}
	})

	t.Run("unknown code fails with the full supported set", func(t *testing.T) {
		_, err := ResolveLocation("gotham")
		require.Error(t, err)

		var notFound *types.LocationNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "gotham", notFound.Code)
		assert.Equal(t, SupportedCodes(), notFound.Supported)
	})

	t.Run("matching is exact, no normalization", func(t *testing.T) {
		_, err := ResolveLocation("Taipei")
		assert.Error(t, err)
		_, err = ResolveLocation(" taipei")
		assert.Error(t, err)
	})
}

func TestSupportedCodes(t *testing.T) {
	codes := SupportedCodes()
	assert.Len(t, codes, len(locationNames))
	assert.True(t, sort.StringsAreSorted(codes))
}
