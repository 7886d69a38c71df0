package snapshot

import (
	"encoding/hex"
	"io"
	"slices"
	"strconv"
	"time"

	"golang.org/x/crypto/sha3"

	"github.com/nao1215/homeheat/internal/model"
)

// Digest returns the hex SHA3-256 of the canonical encoding of snap.
// Records are hashed in admission order and edges by sorted source id, so
// two snapshots with the same content always share a digest.
func Digest(snap *model.Snapshot) string {
	h := sha3.New256()

	m := snap.Metadata
	writeFields(h,
		m.RunID,
		m.CreatedAt.UTC().Format(time.RFC3339Nano),
		m.Query.Address, m.Query.City, m.Query.State,
		formatFloat(m.Bounds.MinLat), formatFloat(m.Bounds.MaxLat),
		formatFloat(m.Bounds.MinLon), formatFloat(m.Bounds.MaxLon),
		strconv.Itoa(m.MaxSize), strconv.Itoa(m.MaxIterations),
		m.Reason.String(), strconv.Itoa(m.Iterations), strconv.Itoa(m.SeedCount),
	)

	if snap.Graph != nil {
		for _, r := range snap.Graph.RecordsInOrder() {
			writeFields(h, "r", r.ID, formatFloat(r.Latitude), formatFloat(r.Longitude), formatFloat(r.Value))
		}
		for _, from := range sortedKeys(snap.Graph.Adjacency) {
			fields := append([]string{"e", from}, snap.Graph.Adjacency[from]...)
			writeFields(h, fields...)
		}
	}

	return hex.EncodeToString(h.Sum(nil))
}

// writeFields writes each field prefixed with its length so that field
// boundaries are unambiguous.
func writeFields(w io.Writer, fields ...string) {
	for _, f := range fields {
		_, _ = io.WriteString(w, strconv.Itoa(len(f)))
		_, _ = io.WriteString(w, ":")
		_, _ = io.WriteString(w, f)
	}
	_, _ = io.WriteString(w, "\n")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
