// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package capacity converts a capacity-scheduler property list into a
// two-sheet workbook: queue-scoped properties sorted by name, and every
// other property in document order.
package capacity

import (
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/schedsheet/internal/xmltree"
	"github.com/pdiddy/schedsheet/pkg/types"
)

// RootTag is the root element of a capacity-scheduler document.
const RootTag = "configuration"

var columns = []string{"name", "value"}

// Summary counts the properties a conversion saw.
type Summary struct {
	Properties int
	Queue      int
	General    int
}

// ParseProperties returns one Property per property element directly under
// root, in document order. A missing name or value child yields "".
func ParseProperties(root *xmltree.Node) []types.Property {
	var props []types.Property
	for _, p := range root.ChildrenByTag("property") {
		name, _ := p.ChildText("name")
		value, _ := p.ChildText("value")
		props = append(props, types.Property{Name: name, Value: value})
	}
	return props
}

// IsQueueScoped reports whether a property name lies in the queue namespace.
func IsQueueScoped(name, prefix string) bool {
	return strings.Contains(name, prefix)
}

// Partition splits props into general and queue-scoped properties. General
// properties keep their input order. Queue-scoped properties are sorted by
// name, which groups properties of the same queue path together as long as
// sibling queue names do not prefix one another.
func Partition(props []types.Property, prefix string) (general, queue []types.Property) {
	for _, p := range props {
		if IsQueueScoped(p.Name, prefix) {
			queue = append(queue, p)
		} else {
			general = append(general, p)
		}
	}
	sort.SliceStable(queue, func(i, j int) bool {
		return queue[i].Name < queue[j].Name
	})
	return general, queue
}

// Convert builds the capacity workbook from a parsed document.
func Convert(root *xmltree.Node, cfg types.CapacityConfig) (types.Workbook, Summary) {
	cfg = cfg.WithDefaults()

	props := ParseProperties(root)
	general, queue := Partition(props, cfg.QueuePrefix)

	logrus.WithFields(logrus.Fields{
		"properties": len(props),
		"queue":      len(queue),
		"general":    len(general),
	}).Debug("partitioned capacity properties")

	wb := types.Workbook{Sheets: []types.Table{
		propertyTable(cfg.QueueSheet, queue),
		propertyTable(cfg.GeneralSheet, general),
	}}
	return wb, Summary{Properties: len(props), Queue: len(queue), General: len(general)}
}

func propertyTable(name string, props []types.Property) types.Table {
	records := make([]types.Record, len(props))
	for i, p := range props {
		records[i] = types.NewRecord("name", p.Name, "value", p.Value)
	}
	return types.NewTable(name, columns, records)
}
