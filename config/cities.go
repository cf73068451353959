package config

import (
	"strings"
	"time"
)

// Coordinates is a lat/lon pair for a search center.
type Coordinates struct {
	Lat float64
	Lon float64
}

// cityCoords covers the cities we see in practice so lookups stay offline.
// Unknown cities fall back to Austin, same as the search default.
var cityCoords = map[string]Coordinates{
	"austin":        {30.2672, -97.7431},
	"new york":      {40.7128, -74.0060},
	"los angeles":   {34.0522, -118.2437},
	"chicago":       {41.8781, -87.6298},
	"san francisco": {37.7749, -122.4194},
	"denver":        {39.7392, -104.9903},
	"nashville":     {36.1627, -86.7816},
	"seattle":       {47.6062, -122.3321},
	"portland":      {45.5155, -122.6789},
	"miami":         {25.7617, -80.1918},
	"new orleans":   {29.9511, -90.0715},
	"boston":        {42.3601, -71.0589},
	"atlanta":       {33.7490, -84.3880},
	"philadelphia":  {39.9526, -75.1652},
	"dallas":        {32.7767, -96.7970},
	"houston":       {29.7604, -95.3698},
	"phoenix":       {33.4484, -112.0740},
	"san diego":     {32.7157, -117.1611},
	"minneapolis":   {44.9778, -93.2650},
	"detroit":       {42.3314, -83.0458},
	"las vegas":     {36.1699, -115.1398},
	"washington dc": {38.9072, -77.0369},
	"sacramento":    {38.5816, -121.4944},
}

var defaultCoords = Coordinates{30.2672, -97.7431} // Austin

// CityCoordinates returns the coordinates for a city. Matching is
// case-insensitive and ignores anything after a comma ("Austin, TX").
func CityCoordinates(city string) (Coordinates, bool) {
	key := strings.ToLower(strings.TrimSpace(city))
	if i := strings.Index(key, ","); i >= 0 {
		key = strings.TrimSpace(key[:i])
	}
	if c, ok := cityCoords[key]; ok {
		return c, true
	}
	return defaultCoords, false
}

// NormalizeCity canonicalizes a city name for cache keys.
func NormalizeCity(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

// WeekendDates returns the Thursday and Saturday bracketing the requested
// weekend: "this", "next", or "two-weeks". After Thursday noon "this"
// rolls to the following week.
func WeekendDates(weekend string, now time.Time) (string, string) {
	daysUntilThursday := (int(time.Thursday) - int(now.Weekday()) + 7) % 7
	if daysUntilThursday == 0 && now.Hour() >= 12 {
		daysUntilThursday = 7
	}

	switch weekend {
	case "next":
		daysUntilThursday += 7
	case "two-weeks":
		daysUntilThursday += 14
	}

	thursday := now.AddDate(0, 0, daysUntilThursday)
	saturday := thursday.AddDate(0, 0, 2)
	return thursday.Format("2006-01-02"), saturday.Format("2006-01-02")
}
