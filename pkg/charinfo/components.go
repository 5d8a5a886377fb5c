package charinfo

import "sync"

// MaxPerComponent bounds the recency list kept for each component.
const MaxPerComponent = 20

// SeenInDisplay caps the "seen in" view returned for display.
const SeenInDisplay = 5

// ComponentIndex maps a radical or sub-character component to the most
// recently seen characters containing it, most-recent-last, oldest evicted
// on overflow. It is mutated as a side effect of every lookup.
//
// A character's own radical is recorded in the same index as its structural
// components; "seen in" results therefore mix the two classifications.
// This is an intended simplification.
type ComponentIndex struct {
	mu  sync.Mutex
	occ map[string][]string
}

// NewComponentIndex creates an empty index.
func NewComponentIndex() *ComponentIndex {
	return &ComponentIndex{occ: make(map[string][]string)}
}

// RecordCharacter registers ch under its radical and each of its components.
func (ci *ComponentIndex) RecordCharacter(info CharacterInfo) {
	ci.Record(info.Radical, info.Character)
	for _, comp := range info.Components {
		ci.Record(comp, info.Character)
	}
}

// Record appends ch to the component's recency list if absent, evicting the
// oldest entry once the list exceeds MaxPerComponent.
func (ci *ComponentIndex) Record(component, ch string) {
	if component == "" || ch == "" {
		return
	}
	ci.mu.Lock()
	defer ci.mu.Unlock()

	list := ci.occ[component]
	for _, existing := range list {
		if existing == ch {
			return
		}
	}
	list = append(list, ch)
	if len(list) > MaxPerComponent {
		list = list[len(list)-MaxPerComponent:]
	}
	ci.occ[component] = list
}

// Characters returns a copy of the full recency list for a component.
func (ci *ComponentIndex) Characters(component string) []string {
	ci.mu.Lock()
	defer ci.mu.Unlock()
	list := ci.occ[component]
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// SeenIn returns up to SeenInDisplay characters previously seen containing
// the component, excluding the character being displayed.
func (ci *ComponentIndex) SeenIn(component, exclude string) []string {
	ci.mu.Lock()
	defer ci.mu.Unlock()

	var out []string
	for _, ch := range ci.occ[component] {
		if ch == exclude {
			continue
		}
		out = append(out, ch)
		if len(out) == SeenInDisplay {
			break
		}
	}
	return out
}
