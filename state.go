package kakuyomu

// Record is the attribute dictionary of a single entity. Values are whatever
// the upstream document carried: strings, numbers, lists or nested objects.
type Record map[string]any

// StateGraph maps opaque entity keys (e.g. "Work:1177354054881165840") to
// entity records. Keys are kept in document emission order.
type StateGraph struct {
	keys    []string
	records map[string]Record
}

// NewStateGraph returns an empty StateGraph.
func NewStateGraph() *StateGraph {
	return &StateGraph{records: make(map[string]Record)}
}

// Add stores rec under key. A repeated key replaces the record but keeps
// its original position.
func (g *StateGraph) Add(key string, rec Record) {
	if _, ok := g.records[key]; !ok {
		g.keys = append(g.keys, key)
	}
	g.records[key] = rec
}

// Keys returns all keys in document order.
func (g *StateGraph) Keys() []string {
	keys := make([]string, len(g.keys))
	copy(keys, g.keys)
	return keys
}

// Record returns the record stored under key.
func (g *StateGraph) Record(key string) (Record, bool) {
	rec, ok := g.records[key]
	return rec, ok
}

// Records returns the records for keys, in the order given.
// Keys not present in the graph are skipped.
func (g *StateGraph) Records(keys []string) []Record {
	recs := make([]Record, 0, len(keys))
	for _, key := range keys {
		if rec, ok := g.records[key]; ok {
			recs = append(recs, rec)
		}
	}
	return recs
}

// Len returns the number of entities in the graph.
func (g *StateGraph) Len() int {
	return len(g.keys)
}

// StateExtractor decodes the client-side state embedded in a page.
type StateExtractor interface {
	// Extract returns the state graph embedded in html.
	// Returns EMALFORMED if the state marker is missing, the payload is not
	// valid JSON, or the nested path to the graph does not exist.
	Extract(html string) (*StateGraph, error)
}

// Text returns the string value stored under key, or "" when the value is
// absent or not a string.
func (r Record) Text(key string) string {
	s, _ := r[key].(string)
	return s
}
