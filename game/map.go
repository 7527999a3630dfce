package game

import (
	"fmt"
	"sort"
	"sync"

	"conquest/utils"
)

// MaxDistance is reported for regions that cannot reach each other.
const MaxDistance = 100

type Region struct {
	ID           int
	Name         string
	Abbreviation string
	Neighbors    []int
}

// Map is the region graph. It is immutable once built, apart from the
// distance cache which fills lazily and is safe for concurrent use.
type Map struct {
	Regions []*Region

	mu        sync.Mutex
	distances map[[2]int]int
}

func NewMap() *Map {
	return &Map{distances: make(map[[2]int]int)}
}

// AddRegion appends a region, its ID becomes its index.
func (m *Map) AddRegion(name, abbreviation string) *Region {
	r := &Region{ID: len(m.Regions), Name: name, Abbreviation: abbreviation}
	m.Regions = append(m.Regions, r)
	return r
}

// AddBorder adds a bidirectional border between two regions.
func (m *Map) AddBorder(id1, id2 int) {
	r1, r2 := m.Regions[id1], m.Regions[id2]
	if !utils.Contains(r1.Neighbors, id2) {
		r1.Neighbors = append(r1.Neighbors, id2)
	}
	if !utils.Contains(r2.Neighbors, id1) {
		r2.Neighbors = append(r2.Neighbors, id1)
	}
}

func (m *Map) Len() int {
	return len(m.Regions)
}

func (m *Map) Valid(id int) bool {
	return id >= 0 && id < len(m.Regions)
}

func (m *Map) Adjacent(id1, id2 int) bool {
	return m.Valid(id1) && utils.Contains(m.Regions[id1].Neighbors, id2)
}

// Lookup finds a region by ID, abbreviation or name.
func (m *Map) Lookup(key string) (*Region, error) {
	for _, r := range m.Regions {
		if r.Abbreviation == key || r.Name == key || fmt.Sprint(r.ID) == key {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%q: %w", key, ErrUnknownRegion)
}

// Distance is the number of borders crossed on the shortest path from a to b.
// Results are memoized symmetrically.
func (m *Map) Distance(a, b int) int {
	if a == b {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if d, ok := m.distances[distanceKey(a, b)]; ok {
		return d
	}

	// a single BFS from a settles every region reachable from it
	dist := map[int]int{a: 0}
	queue := []int{a}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, n := range m.Regions[current].Neighbors {
			if _, seen := dist[n]; !seen {
				dist[n] = dist[current] + 1
				queue = append(queue, n)
			}
		}
	}
	for _, r := range m.Regions {
		d, ok := dist[r.ID]
		if !ok {
			d = MaxDistance
		}
		if r.ID != a {
			m.distances[distanceKey(a, r.ID)] = d
		}
	}
	return m.distances[distanceKey(a, b)]
}

func distanceKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

// CreateMap builds the default board: the 26 Swiss cantons and their borders.
func CreateMap() *Map {
	m := NewMap()
	for i, abbrev := range cantonAbbreviations {
		m.AddRegion(cantonNames[i], abbrev)
	}
	for abbrev, neighbors := range adjacencyData {
		id1 := cantonIDs[abbrev]
		for _, neighborAbbrev := range neighbors {
			m.AddBorder(id1, cantonIDs[neighborAbbrev])
		}
	}
	// borders were added in map iteration order, keep neighbor lists stable
	for _, r := range m.Regions {
		sort.Ints(r.Neighbors)
	}
	return m
}

var cantonAbbreviations = []string{
	"AG", "AI", "AR", "BE", "BL", "BS", "FR", "GE", "GL", "GR",
	"JU", "LU", "NE", "NW", "OW", "SG", "SH", "SO", "SZ", "TG",
	"TI", "UR", "VD", "VS", "ZG", "ZH",
}

var cantonNames = []string{
	"Aargau", "Appenzell Innerrhoden", "Appenzell Ausserrhoden", "Bern",
	"Basel-Landschaft", "Basel-Stadt", "Fribourg", "Geneva", "Glarus",
	"Graubünden", "Jura", "Lucerne", "Neuchâtel", "Nidwalden", "Obwalden",
	"St. Gallen", "Schaffhausen", "Solothurn", "Schwyz", "Thurgau",
	"Ticino", "Uri", "Vaud", "Valais", "Zug", "Zürich",
}

var cantonIDs = func() map[string]int {
	ids := make(map[string]int, len(cantonAbbreviations))
	for i, abbrev := range cantonAbbreviations {
		ids[abbrev] = i
	}
	return ids
}()

var adjacencyData = map[string][]string{
	"AG": {"BL", "LU", "ZG", "ZH", "SO"},
	"AI": {"AR", "SG"},
	"AR": {"AI", "SG"},
	"BE": {"FR", "JU", "NE", "SO", "VD", "VS", "LU"},
	"BL": {"AG", "BS", "SO", "JU"},
	"BS": {"BL"},
	"FR": {"BE", "VD", "NE"},
	"GE": {"VD"},
	"GL": {"SG", "SZ", "GR"},
	"GR": {"SG", "TI", "GL", "UR"},
	"JU": {"BE", "SO", "BL"},
	"LU": {"AG", "BE", "NW", "OW", "ZG"},
	"NE": {"BE", "FR", "VD"},
	"NW": {"OW", "LU", "UR"},
	"OW": {"NW", "UR", "LU"},
	"SG": {"AI", "AR", "GL", "TG", "ZH", "GR"},
	"SH": {"ZH", "TG"},
	"SO": {"BE", "BL", "JU", "AG"},
	"SZ": {"ZG", "UR", "GL"},
	"TG": {"SH", "SG", "ZH"},
	"TI": {"GR", "VS", "UR"},
	"UR": {"SZ", "OW", "GR", "TI", "NW"},
	"VD": {"GE", "FR", "VS", "NE", "BE"},
	"VS": {"VD", "BE", "TI", "UR"},
	"ZG": {"AG", "SZ", "LU", "ZH"},
	"ZH": {"AG", "SG", "TG", "SH", "ZG"},
}
