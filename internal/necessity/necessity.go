// Package necessity decides which catalog items a hiking condition calls for
// and checks a packed grid against that list.
package necessity

import (
	"github.com/eugenenazirov/summit-pack/internal/catalog"
	"github.com/eugenenazirov/summit-pack/internal/condition"
	"github.com/zyedidia/generic/mapset"
)

// fieldPriority is the order override tables are consulted in. The first
// field with a matching entry decides.
var fieldPriority = []condition.Field{
	condition.FieldWeather,
	condition.FieldWind,
	condition.FieldSeason,
	condition.FieldPlan,
	condition.FieldState,
	condition.FieldAltitude,
}

// ItemLister provides catalog items in display order.
type ItemLister interface {
	Items() []catalog.Item
}

// Missing is an item the packing lacks. Shortfall is set for quantity items.
type Missing struct {
	ItemID    string `json:"itemId"`
	Name      string `json:"name"`
	Shortfall int    `json:"shortfall,omitempty"`
}

// Status is the evaluation of a single catalog item.
type Status struct {
	ItemID    string            `json:"itemId"`
	Necessity catalog.Necessity `json:"necessity"`
	Packed    int               `json:"packed"`
	Needed    int               `json:"needed"`
	// Skipped is set when the item depends on another item that is not packed.
	Skipped bool `json:"skipped,omitempty"`
}

// Report is the outcome of Evaluate.
type Report struct {
	Success         bool      `json:"success"`
	MissingRequired []Missing `json:"missingRequired"`
	MissingOptional []Missing `json:"missingOptional"`
	Statuses        []Status  `json:"statuses"`
}

// Resolve returns an item's necessity under c, ignoring dependencies and
// quantities.
func Resolve(item catalog.Item, c condition.Condition) catalog.Necessity {
	n := item.Rules.Default
	for _, f := range fieldPriority {
		if v, ok := item.Rules.Override(c, f); ok {
			n = v
			break
		}
	}
	if item.Rules.Predicate != nil {
		if v, ok := item.Rules.Predicate(c); ok {
			n = v
		}
	}
	return n
}

// Evaluate checks the packed item ids (one entry per placed instance) against
// every catalog item. It never mutates its inputs.
func Evaluate(items ItemLister, c condition.Condition, packed []string) Report {
	counts := make(map[string]int, len(packed))
	for _, id := range packed {
		counts[id]++
	}
	met := metDependencies(items, counts)

	report := Report{
		MissingRequired: []Missing{},
		MissingOptional: []Missing{},
	}
	for _, item := range items.Items() {
		status := Status{ItemID: item.ID, Packed: counts[item.ID]}

		if dep := item.Rules.Requires; dep != "" && !met.Has(dep) {
			status.Necessity = catalog.Irrelevant
			status.Skipped = true
			report.Statuses = append(report.Statuses, status)
			continue
		}

		status.Necessity = Resolve(item, c)

		if item.Rules.Quantity != nil {
			status.Needed = item.Rules.Quantity(c)
			if status.Packed < status.Needed {
				report.MissingRequired = append(report.MissingRequired, Missing{
					ItemID:    item.ID,
					Name:      item.Name,
					Shortfall: status.Needed - status.Packed,
				})
			}
			report.Statuses = append(report.Statuses, status)
			continue
		}

		if status.Necessity == catalog.Required {
			status.Needed = 1
		}
		if counts[item.ID] == 0 {
			switch status.Necessity {
			case catalog.Required:
				report.MissingRequired = append(report.MissingRequired, Missing{ItemID: item.ID, Name: item.Name})
			case catalog.Optional:
				report.MissingOptional = append(report.MissingOptional, Missing{ItemID: item.ID, Name: item.Name})
			}
		}
		report.Statuses = append(report.Statuses, status)
	}

	report.Success = len(report.MissingRequired) == 0
	return report
}

// metDependencies collects the "requires" targets that are packed.
func metDependencies(items ItemLister, counts map[string]int) mapset.Set[string] {
	met := mapset.New[string]()
	for _, item := range items.Items() {
		if dep := item.Rules.Requires; dep != "" && counts[dep] > 0 {
			met.Put(dep)
		}
	}
	return met
}
