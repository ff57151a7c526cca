package lookup

import "sort"

// Endpoint is one candidate host for an application. Lower Priority is
// preferred; Weight balances load among endpoints of equal priority.
type Endpoint struct {
	Target   string `json:"target"`
	Port     uint16 `json:"port"`
	Priority uint16 `json:"priority"`
	Weight   uint16 `json:"weight"`
}

// Application is the result of one successful application lookup.
type Application struct {
	id        ApplicationID
	endpoints []Endpoint
}

func newApplication(id ApplicationID, records []SRV) Application {
	endpoints := make([]Endpoint, 0, len(records))
	for _, r := range records {
		endpoints = append(endpoints, Endpoint{
			Target:   r.Target,
			Port:     r.Port,
			Priority: r.Priority,
			Weight:   r.Weight,
		})
	}
	return Application{id: id, endpoints: endpoints}
}

func (a Application) ID() ApplicationID { return a.id }

// Endpoints returns a copy of the endpoints in the order the resolver
// returned them.
func (a Application) Endpoints() []Endpoint {
	out := make([]Endpoint, len(a.endpoints))
	copy(out, a.endpoints)
	return out
}

// ByPreference returns a copy of the endpoints ordered by priority, then by
// descending weight. Ties keep resolver order.
func (a Application) ByPreference() []Endpoint {
	out := a.Endpoints()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].Weight > out[j].Weight
	})
	return out
}

// ApplicationResult is one entry of a resolve-all batch. Found is false when
// no records were published; Err is set when this application's lookup failed.
type ApplicationResult struct {
	Application Application
	Found       bool
	Err         error
}
