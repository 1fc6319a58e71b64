package settings

import (
	"strings"

	"github.com/sheetsite/core/internal/modules/sheets/gviz"
)

// pair is one extracted key/value assignment.
type pair struct {
	key, value string
}

// detector extracts the assignments of one sheet shape. A detector that does
// not recognise its shape returns nothing.
type detector func(t *gviz.Table) []pair

// detectors run in order; later assignments overwrite earlier ones.
var detectors = []detector{
	keyValueColumns,
	packedLabels,
	packedCells,
	strayRows,
}

// Resolve extracts every setting from t, merges the shapes with last-wins
// semantics and back-fills missing keys from the defaults. It never fails;
// a nil or unreadable table yields the defaults.
func Resolve(t *gviz.Table) (out map[string]string) {
	out = Defaults()
	defer func() {
		if recover() != nil {
			out = Defaults()
		}
	}()
	if t == nil {
		return out
	}
	found := make(map[string]string)
	for _, d := range detectors {
		for _, p := range d(t) {
			found[p.key] = p.value
		}
	}
	for k, v := range found {
		out[k] = v
	}
	return out
}

// keyValueColumns reads the standard shape: a "key" column and a "value"
// column, one setting per row. Blank values are absent so the default
// applies. Packed key cells are left to packedCells.
func keyValueColumns(t *gviz.Table) []pair {
	if !hasLabel(t, "key") || !hasLabel(t, "value") {
		return nil
	}
	var out []pair
	for _, row := range t.Rows {
		key := strings.TrimSpace(row.Get("key").String())
		if key == "" || strings.ContainsAny(key, " \t\n") {
			continue
		}
		value := strings.TrimSpace(row.Get("value").String())
		if value == "" {
			continue
		}
		out = append(out, pair{key, value})
	}
	return out
}

// packedLabels reads a sheet whose header row swallowed the data: the first
// column label holds the space-separated keys and the second holds the
// values, each optionally led by the literal "key"/"value" header.
func packedLabels(t *gviz.Table) []pair {
	if len(t.Labels) < 2 {
		return nil
	}
	keys := strings.Fields(t.Labels[0])
	if len(keys) > 0 && strings.EqualFold(keys[0], "key") {
		keys = keys[1:]
	}
	if !mentionsKnownKey(keys) {
		return nil
	}
	values := strings.Fields(t.Labels[1])
	if len(values) > 0 && strings.EqualFold(values[0], "value") {
		values = values[1:]
	}
	return zip(keys, values)
}

// packedCells reads rows whose first cell packs several keys and whose
// second cell packs the matching values.
func packedCells(t *gviz.Table) []pair {
	var out []pair
	for i := range t.Rows {
		keys := strings.Fields(t.Cell(i, 0).String())
		if len(keys) < 2 || !mentionsKnownKey(keys) {
			continue
		}
		out = append(out, zip(keys, strings.Fields(t.Cell(i, 1).String()))...)
	}
	return out
}

// strayRows reads standalone single-key rows by position, for sheets that
// have lost their key/value headers (an "address" row under packed labels).
func strayRows(t *gviz.Table) []pair {
	if hasLabel(t, "key") && hasLabel(t, "value") {
		return nil
	}
	var out []pair
	for i := range t.Rows {
		key := strings.TrimSpace(t.Cell(i, 0).String())
		if key == "" || strings.ContainsAny(key, " \t\n") {
			continue
		}
		value := strings.TrimSpace(t.Cell(i, 1).String())
		if value == "" {
			continue
		}
		out = append(out, pair{key, value})
	}
	return out
}

// zip pairs keys with values by position. Surplus values are joined onto the
// last key; keys without a value are dropped.
func zip(keys, values []string) []pair {
	out := make([]pair, 0, len(keys))
	for i, k := range keys {
		if i >= len(values) {
			break
		}
		v := values[i]
		if i == len(keys)-1 && len(values) > len(keys) {
			v = strings.Join(values[i:], " ")
		}
		out = append(out, pair{k, v})
	}
	return out
}

func mentionsKnownKey(tokens []string) bool {
	for _, tok := range tokens {
		if IsKnown(tok) {
			return true
		}
	}
	return false
}

func hasLabel(t *gviz.Table, label string) bool {
	for _, l := range t.Labels {
		if strings.EqualFold(strings.TrimSpace(l), label) {
			return true
		}
	}
	return false
}
