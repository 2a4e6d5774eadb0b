package geo

import (
	"slices"
	"strings"

	"itinerary-remediation-service/internal/domain"
)

// Location is a named point in the gazetteer.
type Location struct {
	Name        string             `yaml:"name" json:"name"`
	Aliases     []string           `yaml:"aliases" json:"aliases,omitempty"`
	Coordinates domain.Coordinates `yaml:"coordinates" json:"coordinates"`
}

// Gazetteer resolves city and station names mentioned in free text to coordinates.
// A Gazetteer is immutable once built and safe for concurrent use.
type Gazetteer struct {
	index map[string]Location
	keys  []string // longest first
}

// NewGazetteer indexes locations by name and aliases. Later entries win on conflicts.
func NewGazetteer(locations ...Location) *Gazetteer {
	g := &Gazetteer{index: make(map[string]Location)}
	for _, loc := range locations {
		for _, key := range append([]string{loc.Name}, loc.Aliases...) {
			k := normalizePlaceText(key)
			if k == "" {
				continue
			}
			g.index[k] = loc
		}
	}
	g.keys = make([]string, 0, len(g.index))
	for k := range g.index {
		g.keys = append(g.keys, k)
	}
	slices.SortFunc(g.keys, func(a, b string) int {
		if len(a) != len(b) {
			return len(b) - len(a)
		}
		return strings.Compare(a, b)
	})
	return g
}

// With returns a new gazetteer holding g's entries plus extra.
func (g *Gazetteer) With(extra ...Location) *Gazetteer {
	seen := make(map[string]struct{})
	all := make([]Location, 0, len(g.index)+len(extra))
	for _, k := range g.keys {
		loc := g.index[k]
		if _, ok := seen[loc.Name]; ok {
			continue
		}
		seen[loc.Name] = struct{}{}
		all = append(all, loc)
	}
	return NewGazetteer(append(all, extra...)...)
}

// Lookup finds the longest gazetteer name contained in text as whole words.
func (g *Gazetteer) Lookup(text string) (Location, bool) {
	if g == nil {
		return Location{}, false
	}
	norm := " " + normalizePlaceText(text) + " "
	for _, k := range g.keys {
		if strings.Contains(norm, " "+k+" ") {
			return g.index[k], true
		}
	}
	return Location{}, false
}

// LookupDestination resolves the destination of a transport activity name such as
// "Shinkansen to Kyoto" or "Tokyo → Osaka". The part after the last "to"/arrow is
// tried first, then the whole name.
func (g *Gazetteer) LookupDestination(name string) (Location, bool) {
	lower := strings.ToLower(name)
	for _, sep := range []string{"→", "->", " to "} {
		if i := strings.LastIndex(lower, sep); i >= 0 {
			if loc, ok := g.Lookup(lower[i+len(sep):]); ok {
				return loc, true
			}
		}
	}
	return g.Lookup(lower)
}

func normalizePlaceText(s string) string {
	s = strings.ToLower(s)
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r > 127:
			return r
		default:
			return ' '
		}
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// DefaultGazetteer covers the rail and air hubs generated itineraries most often name.
func DefaultGazetteer() *Gazetteer {
	return NewGazetteer(defaultLocations...)
}

var defaultLocations = []Location{
	{Name: "Tokyo", Aliases: []string{"tokyo station"}, Coordinates: domain.Coordinates{Lat: 35.6812, Lng: 139.7671}},
	{Name: "Shinagawa", Aliases: []string{"shinagawa station"}, Coordinates: domain.Coordinates{Lat: 35.6285, Lng: 139.7387}},
	{Name: "Ueno", Aliases: []string{"ueno station"}, Coordinates: domain.Coordinates{Lat: 35.7141, Lng: 139.7774}},
	{Name: "Yokohama", Aliases: []string{"shin-yokohama", "shin yokohama"}, Coordinates: domain.Coordinates{Lat: 35.5075, Lng: 139.6176}},
	{Name: "Kyoto", Aliases: []string{"kyoto station"}, Coordinates: domain.Coordinates{Lat: 34.9858, Lng: 135.7588}},
	{Name: "Osaka", Aliases: []string{"shin-osaka", "shin osaka", "osaka station", "umeda"}, Coordinates: domain.Coordinates{Lat: 34.7334, Lng: 135.5002}},
	{Name: "Nara", Aliases: []string{"nara station"}, Coordinates: domain.Coordinates{Lat: 34.6851, Lng: 135.8050}},
	{Name: "Kobe", Aliases: []string{"shin-kobe", "shin kobe"}, Coordinates: domain.Coordinates{Lat: 34.7066, Lng: 135.1953}},
	{Name: "Himeji", Coordinates: domain.Coordinates{Lat: 34.8269, Lng: 134.6908}},
	{Name: "Hiroshima", Aliases: []string{"hiroshima station"}, Coordinates: domain.Coordinates{Lat: 34.3978, Lng: 132.4753}},
	{Name: "Miyajima", Aliases: []string{"itsukushima"}, Coordinates: domain.Coordinates{Lat: 34.2960, Lng: 132.3198}},
	{Name: "Nagoya", Aliases: []string{"nagoya station"}, Coordinates: domain.Coordinates{Lat: 35.1709, Lng: 136.8815}},
	{Name: "Kanazawa", Coordinates: domain.Coordinates{Lat: 36.5781, Lng: 136.6481}},
	{Name: "Takayama", Coordinates: domain.Coordinates{Lat: 36.1410, Lng: 137.2513}},
	{Name: "Hakone", Aliases: []string{"hakone-yumoto", "odawara"}, Coordinates: domain.Coordinates{Lat: 35.2329, Lng: 139.1069}},
	{Name: "Nikko", Coordinates: domain.Coordinates{Lat: 36.7487, Lng: 139.6193}},
	{Name: "Kamakura", Coordinates: domain.Coordinates{Lat: 35.3192, Lng: 139.5467}},
	{Name: "Sendai", Coordinates: domain.Coordinates{Lat: 38.2601, Lng: 140.8823}},
	{Name: "Sapporo", Coordinates: domain.Coordinates{Lat: 43.0687, Lng: 141.3508}},
	{Name: "Fukuoka", Aliases: []string{"hakata", "hakata station"}, Coordinates: domain.Coordinates{Lat: 33.5897, Lng: 130.4207}},
	{Name: "Okayama", Coordinates: domain.Coordinates{Lat: 34.6661, Lng: 133.9177}},
	{Name: "Narita Airport", Aliases: []string{"narita"}, Coordinates: domain.Coordinates{Lat: 35.7720, Lng: 140.3929}},
	{Name: "Haneda Airport", Aliases: []string{"haneda"}, Coordinates: domain.Coordinates{Lat: 35.5494, Lng: 139.7798}},
	{Name: "Kansai Airport", Aliases: []string{"kix", "kansai international airport"}, Coordinates: domain.Coordinates{Lat: 34.4320, Lng: 135.2304}},
	{Name: "Paris", Aliases: []string{"gare de lyon", "gare du nord"}, Coordinates: domain.Coordinates{Lat: 48.8566, Lng: 2.3522}},
	{Name: "Lyon", Coordinates: domain.Coordinates{Lat: 45.7640, Lng: 4.8357}},
	{Name: "London", Aliases: []string{"st pancras", "kings cross"}, Coordinates: domain.Coordinates{Lat: 51.5074, Lng: -0.1278}},
	{Name: "Amsterdam", Coordinates: domain.Coordinates{Lat: 52.3676, Lng: 4.9041}},
	{Name: "Brussels", Coordinates: domain.Coordinates{Lat: 50.8503, Lng: 4.3517}},
	{Name: "Berlin", Coordinates: domain.Coordinates{Lat: 52.5200, Lng: 13.4050}},
	{Name: "Munich", Aliases: []string{"münchen"}, Coordinates: domain.Coordinates{Lat: 48.1351, Lng: 11.5820}},
	{Name: "Vienna", Aliases: []string{"wien"}, Coordinates: domain.Coordinates{Lat: 48.2082, Lng: 16.3738}},
	{Name: "Prague", Coordinates: domain.Coordinates{Lat: 50.0755, Lng: 14.4378}},
	{Name: "Zurich", Aliases: []string{"zürich"}, Coordinates: domain.Coordinates{Lat: 47.3769, Lng: 8.5417}},
	{Name: "Rome", Aliases: []string{"roma termini"}, Coordinates: domain.Coordinates{Lat: 41.9028, Lng: 12.4964}},
	{Name: "Florence", Aliases: []string{"firenze"}, Coordinates: domain.Coordinates{Lat: 43.7696, Lng: 11.2558}},
	{Name: "Venice", Aliases: []string{"venezia"}, Coordinates: domain.Coordinates{Lat: 45.4408, Lng: 12.3155}},
	{Name: "Milan", Aliases: []string{"milano"}, Coordinates: domain.Coordinates{Lat: 45.4642, Lng: 9.1900}},
	{Name: "Naples", Aliases: []string{"napoli"}, Coordinates: domain.Coordinates{Lat: 40.8518, Lng: 14.2681}},
	{Name: "Barcelona", Coordinates: domain.Coordinates{Lat: 41.3851, Lng: 2.1734}},
	{Name: "Madrid", Coordinates: domain.Coordinates{Lat: 40.4168, Lng: -3.7038}},
	{Name: "Seville", Aliases: []string{"sevilla"}, Coordinates: domain.Coordinates{Lat: 37.3891, Lng: -5.9845}},
	{Name: "Lisbon", Aliases: []string{"lisboa"}, Coordinates: domain.Coordinates{Lat: 38.7223, Lng: -9.1393}},
	{Name: "Porto", Coordinates: domain.Coordinates{Lat: 41.1579, Lng: -8.6291}},
	{Name: "Seoul", Coordinates: domain.Coordinates{Lat: 37.5665, Lng: 126.9780}},
	{Name: "Busan", Coordinates: domain.Coordinates{Lat: 35.1796, Lng: 129.0756}},
}
