package location

import (
	"context"
	"regexp"
	"strings"
)

// Coordinate is a (longitude, latitude) pair in degrees.
type Coordinate struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Place is a place-search candidate. Address fields may contain markup.
type Place struct {
	Title       string
	RoadAddress string
	Address     string
}

// Geocoder converts a postal address into coordinates.
// A clean miss is reported as a common.KindNotFound error.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (Coordinate, error)
}

// PlaceSearcher looks up place candidates by free text, in provider order.
type PlaceSearcher interface {
	SearchPlaces(ctx context.Context, query string) ([]Place, error)
}

var tagRE = regexp.MustCompile(`<[^>]+>`)

// CleanAddress strips markup and collapses whitespace.
func CleanAddress(s string) string {
	return strings.Join(strings.Fields(tagRE.ReplaceAllString(s, "")), " ")
}

// PreferredAddress returns the road address if usable, otherwise the lot address.
func (p Place) PreferredAddress() string {
	if road := CleanAddress(p.RoadAddress); road != "" {
		return road
	}
	return CleanAddress(p.Address)
}
