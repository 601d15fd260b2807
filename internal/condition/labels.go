package condition

import (
	_ "embed"
	"strings"

	"github.com/leonelquinteros/gotext"
)

//go:embed locales/ja.po
var jaPo []byte

// displayLabels maps option values to their Japanese labels. Translations
// are read as plain strings so labels are never treated as format verbs.
var displayLabels = func() map[string]string {
	po := gotext.NewPo()
	po.Parse(jaPo)

	labels := make(map[string]string)
	for id, tr := range po.GetDomain().GetTranslations() {
		if id == "" {
			continue
		}
		labels[id] = tr.Get()
	}
	return labels
}()

// Label returns the player-facing label for a field value. Values without a
// translation (altitudes) are returned unchanged.
func Label(value string) string {
	if label, ok := displayLabels[value]; ok {
		return label
	}
	return value
}

// Labels returns display labels for every field of c. Multiple states are
// joined with a middle dot.
func (c Condition) Labels() map[Field]string {
	out := make(map[Field]string, len(Fields))
	for _, f := range Fields {
		values := c.Values(f)
		labels := make([]string, 0, len(values))
		for _, v := range values {
			labels = append(labels, Label(v))
		}
		out[f] = strings.Join(labels, "・")
	}
	return out
}
