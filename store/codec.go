package store

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/syssam/forma/diagram"
)

// Snapshots reuse the diagram package's json field names so blobs stay
// readable by the same names across the wire and the database.

func encodeGraph(g *diagram.Graph) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(g); err != nil {
		return nil, fmt.Errorf("store: encode graph: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeGraph(b []byte) (*diagram.Graph, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(b))
	dec.SetCustomStructTag("json")
	var g diagram.Graph
	if err := dec.Decode(&g); err != nil {
		return nil, fmt.Errorf("store: decode graph: %w", err)
	}
	return &g, nil
}
