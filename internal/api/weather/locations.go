package weather

import (
	"sort"

	"github.com/hylin/go-cwa-forecast/internal/types"
)

// locationNames maps caller-facing location codes to the location names the
// CWA forecast dataset expects. The table is fixed at build time; matching
// is exact, with no case folding or trimming.
var locationNames = map[string]string{
	"taipei":     "臺北市",
	"new-taipei": "新北市",
	"taichung":   "臺中市",
	"kaohsiung":  "高雄市",
}

// SupportedCodes returns the sorted set of supported location codes.
func SupportedCodes() []string {
	codes := make([]string, 0, len(locationNames))
	for code := range locationNames {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// ResolveLocation maps a location code to its canonical CWA location name.
// Unknown codes fail with a LocationNotFoundError carrying the supported
// set so callers can discover valid codes.
func ResolveLocation(code string) (string, error) {
	name, ok := locationNames[code]
	if !ok {
		return "", &types.LocationNotFoundError{Code: code, Supported: SupportedCodes()}
	}
	return name, nil
}
