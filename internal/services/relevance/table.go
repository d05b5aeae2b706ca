package relevance

import (
	"encoding/json"
	"io"

	"olympos.io/encoding/edn"
)

// Table maps keyphrase -> text name -> matching score.
type Table map[string]map[string]float64

// Graph maps each keyphrase to the keyphrases it implies, derived from
// co-occurrence over a text corpus.
type Graph map[string][]string

// WriteEDN serializes the table in EDN, the exchange format consumed
// by the downstream analysis tooling.
func (t Table) WriteEDN(w io.Writer) error {
	return edn.NewEncoder(w).Encode(t)
}

// MarshalEDN returns the EDN serialization of the table.
func (t Table) MarshalEDN() ([]byte, error) {
	return edn.Marshal(map[string]map[string]float64(t))
}

// MarshalJSON keeps the plain-JSON path available next to EDN.
func (t Table) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]map[string]float64(t))
}
