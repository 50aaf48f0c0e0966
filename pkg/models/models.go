package models

// Airport identifies a single airport in the route network.
type Airport struct {
	Code string `json:"code"`
	Name string `json:"name,omitempty"`
}

// Aircraft identifies an aircraft type that may operate legs.
type Aircraft struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Leg is a directed flight connection between two airports.
// Aircraft lists the types permitted to fly it; an empty list permits
// nothing unless AllAircraft is set, which explicitly permits every type.
// Parallel legs over the same airport pair are distinct records.
type Leg struct {
	Origin      string   `json:"origin"`
	Destination string   `json:"destination"`
	Distance    float64  `json:"distance_nm"`
	Aircraft    []string `json:"aircraft,omitempty"`
	AllAircraft bool     `json:"all_aircraft,omitempty"`
}

// HopPath is a route measured in number of legs flown.
type HopPath struct {
	Airports []string `json:"airports"`
	Hops     int      `json:"hops"`
}

// DistancePath is a route measured in cumulative distance.
type DistancePath struct {
	Airports []string `json:"airports"`
	Distance float64  `json:"distance_nm"`
}

// RouteResult is the outcome of a single route query: the request echoed
// back plus both search results. A nil path means that search found no
// route; Available is false only when both are nil.
type RouteResult struct {
	Aircraft      string        `json:"aircraft"`
	Origin        string        `json:"origin"`
	Destination   string        `json:"destination"`
	FewestLegs    *HopPath      `json:"fewest_legs,omitempty"`
	LeastDistance *DistancePath `json:"least_distance,omitempty"`
	Available     bool          `json:"available"`
}
