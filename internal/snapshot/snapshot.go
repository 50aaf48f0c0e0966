// Package snapshot holds one immutable refresh of the route network data.
// A snapshot is validated once when assembled; queries take a reference at
// entry and never observe a later refresh.
package snapshot

import (
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/Jettpacked/UPSVAC-FlightFinder/pkg/models"
)

// MalformedDataError reports a leg referencing an airport absent from the
// airport set. The whole snapshot is rejected; partial data never reaches
// the searches.
type MalformedDataError struct {
	LegIndex int
	Airport  string
}

func (e *MalformedDataError) Error() string {
	return fmt.Sprintf("malformed data: leg %d references unknown airport %q", e.LegIndex, e.Airport)
}

// ---------------------------------------------------------------------------
// Snapshot
// ---------------------------------------------------------------------------

// Snapshot is an immutable set of airports, aircraft and legs from one
// data refresh.
type Snapshot struct {
	airports map[string]models.Airport
	aircraft map[string]models.Aircraft
	legs     []models.Leg
	loadedAt time.Time
}

// New validates the three collections and assembles a snapshot. Every leg
// must reference airports present in the airport set; the first violation
// rejects the snapshot with MalformedDataError.
func New(airports []models.Airport, aircraft []models.Aircraft, legs []models.Leg) (*Snapshot, error) {
	s := &Snapshot{
		airports: make(map[string]models.Airport, len(airports)),
		aircraft: make(map[string]models.Aircraft, len(aircraft)),
		legs:     make([]models.Leg, len(legs)),
		loadedAt: time.Now(),
	}
	for _, a := range airports {
		s.airports[a.Code] = a
	}
	for _, a := range aircraft {
		s.aircraft[a.ID] = a
	}
	copy(s.legs, legs)

	for i := range s.legs {
		if _, ok := s.airports[s.legs[i].Origin]; !ok {
			return nil, &MalformedDataError{LegIndex: i, Airport: s.legs[i].Origin}
		}
		if _, ok := s.airports[s.legs[i].Destination]; !ok {
			return nil, &MalformedDataError{LegIndex: i, Airport: s.legs[i].Destination}
		}
	}
	return s, nil
}

// HasAirport reports whether the airport code exists in this snapshot.
func (s *Snapshot) HasAirport(code string) bool {
	_, ok := s.airports[code]
	return ok
}

// HasAircraft reports whether the aircraft identifier exists in this snapshot.
func (s *Snapshot) HasAircraft(id string) bool {
	_, ok := s.aircraft[id]
	return ok
}

// Legs returns the snapshot's leg records in their original order.
// Callers must treat the slice as read-only.
func (s *Snapshot) Legs() []models.Leg {
	return s.legs
}

// Airports returns all airports sorted by code, for selection lists.
func (s *Snapshot) Airports() []models.Airport {
	out := make([]models.Airport, 0, len(s.airports))
	for _, a := range s.airports {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Aircraft returns all aircraft sorted by identifier, for selection lists.
func (s *Snapshot) Aircraft() []models.Aircraft {
	out := make([]models.Aircraft, 0, len(s.aircraft))
	for _, a := range s.aircraft {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Counts returns the number of airports, aircraft and legs.
func (s *Snapshot) Counts() (airports, aircraft, legs int) {
	return len(s.airports), len(s.aircraft), len(s.legs)
}

// LoadedAt returns when the snapshot was assembled.
func (s *Snapshot) LoadedAt() time.Time {
	return s.loadedAt
}

// ---------------------------------------------------------------------------
// Holder
// ---------------------------------------------------------------------------

// Holder publishes the current snapshot. A refresh builds a complete new
// snapshot and swaps the pointer; in-flight queries keep reading the one
// they loaded, so no locking is needed on the read path.
type Holder struct {
	cur atomic.Pointer[Snapshot]
}

// Load returns the current snapshot, or ok=false before the first refresh.
func (h *Holder) Load() (*Snapshot, bool) {
	s := h.cur.Load()
	return s, s != nil
}

// Store publishes a new snapshot.
func (h *Holder) Store(s *Snapshot) {
	h.cur.Store(s)
}
