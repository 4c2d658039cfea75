// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fair converts a fair-scheduler allocation file into a workbook of
// queue resources, users, and queues.
//
// Users, Queues, and Resources are independent walks over the same tree.
// Each can be called and tested on its own.
package fair

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/schedsheet/internal/xmltree"
	"github.com/pdiddy/schedsheet/pkg/types"
)

// Element tags of the allocation file.
const (
	RootTag         = "allocations"
	queueTag        = "queue"
	userTag         = "user"
	maxRunningApps  = "maxRunningApps"
	maxResourcesTag = "maxResources"
	minResourcesTag = "minResources"
	weightTag       = "weight"
)

// Summary counts the records a conversion produced.
type Summary struct {
	Queues    int
	Users     int
	Resources int
	Totals    bool
}

// Users returns a User for every user element in the tree, in pre-order.
func Users(n *xmltree.Node) []types.User {
	var users []types.User
	if n.Tag == userTag {
		u := types.User{Name: n.Attr("name")}
		if apps, ok := n.ChildText(maxRunningApps); ok {
			u.MaxRunningApps = types.Ptr(apps)
		}
		users = append(users, u)
	}
	for _, c := range n.Children {
		users = append(users, Users(c)...)
	}
	return users
}

// Queues returns a Queue for every queue element reachable from n. Nested
// queues are emitted before the queue that contains them. Non-queue children
// of a queue become fields; non-queue elements outside a queue are searched
// for queues.
func Queues(n *xmltree.Node) []types.Queue {
	return queues(n, "", false)
}

// QueuesTopDown is Queues with each queue emitted before the queues nested in it.
func QueuesTopDown(n *xmltree.Node) []types.Queue {
	return queues(n, "", true)
}

func queues(n *xmltree.Node, parent string, topDown bool) []types.Queue {
	if n.Tag != queueTag {
		var out []types.Queue
		for _, c := range n.Children {
			out = append(out, queues(c, parent, topDown)...)
		}
		return out
	}

	name := n.Attr("name")
	q := types.Queue{Name: name, Parent: parent}
	var nested []types.Queue
	for _, c := range n.Children {
		if c.Tag == queueTag {
			nested = append(nested, queues(c, name, topDown)...)
			continue
		}
		q.Fields.Set(c.Tag, c.Text)
	}
	if topDown {
		return append([]types.Queue{q}, nested...)
	}
	return append(nested, q)
}

// Resources returns the declared resource limits of every queue in the tree,
// in pre-order.
func Resources(n *xmltree.Node) []types.QueueResource {
	var out []types.QueueResource
	if n.Tag == queueTag {
		r := types.QueueResource{Name: n.Attr("name")}
		if s, ok := n.ChildText(maxResourcesTag); ok {
			mem, vcores := SplitResource(s)
			r.MaxMemory, r.MaxVcores = types.Ptr(mem), vcores
		}
		if s, ok := n.ChildText(minResourcesTag); ok {
			mem, vcores := SplitResource(s)
			r.MinMemory, r.MinVcores = types.Ptr(mem), vcores
		}
		if s, ok := n.ChildText(weightTag); ok {
			r.Weight = types.Ptr(s)
		}
		out = append(out, r)
	}
	for _, c := range n.Children {
		out = append(out, Resources(c)...)
	}
	return out
}

// SplitResource splits a "<memory>, <vcores>" resource string by position.
// The vcores half is nil when the string has no comma. Units and order are
// not checked.
func SplitResource(s string) (memory string, vcores *string) {
	parts := strings.Split(s, ",")
	memory = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		vcores = types.Ptr(strings.TrimSpace(parts[1]))
	}
	return memory, vcores
}

// Convert builds the fair-scheduler workbook from a parsed document.
func Convert(root *xmltree.Node, cfg types.FairConfig) (types.Workbook, Summary, error) {
	var qs []types.Queue
	switch cfg.QueueOrder {
	case "", types.OrderBottomUp:
		qs = Queues(root)
	case types.OrderTopDown:
		qs = QueuesTopDown(root)
	default:
		return types.Workbook{}, Summary{}, fmt.Errorf("unknown queue order %q", cfg.QueueOrder)
	}
	users := Users(root)
	resources := Resources(root)

	if cfg.Totals {
		resources = append(resources, Totals(resources))
	}

	logrus.WithFields(logrus.Fields{
		"queues":    len(qs),
		"users":     len(users),
		"resources": len(resources),
		"totals":    cfg.Totals,
	}).Debug("walked allocation tree")

	wb := types.Workbook{Sheets: []types.Table{
		resourceTable(resources),
		userTable(users),
		queueTable(qs),
	}}
	sum := Summary{Queues: len(qs), Users: len(users), Resources: len(resources), Totals: cfg.Totals}
	return wb, sum, nil
}

func resourceTable(resources []types.QueueResource) types.Table {
	records := make([]types.Record, len(resources))
	for i, r := range resources {
		rec := types.NewRecord("name", r.Name)
		setOptional(&rec, "maxMemory", r.MaxMemory)
		setOptional(&rec, "maxVcores", r.MaxVcores)
		setOptional(&rec, "minMemory", r.MinMemory)
		setOptional(&rec, "minVcores", r.MinVcores)
		setOptional(&rec, "weight", r.Weight)
		records[i] = rec
	}
	return types.NewTable(types.SheetQueueResources, []string{"name"}, records)
}

func userTable(users []types.User) types.Table {
	records := make([]types.Record, len(users))
	for i, u := range users {
		records[i] = types.NewRecord("name", u.Name, maxRunningApps, types.Deref(u.MaxRunningApps))
	}
	return types.NewTable(types.SheetUsers, []string{"name", maxRunningApps}, records)
}

func queueTable(qs []types.Queue) types.Table {
	records := make([]types.Record, len(qs))
	for i, q := range qs {
		rec := types.NewRecord("name", q.Name, "parent", q.Parent)
		for _, k := range q.Fields.Keys() {
			v, _ := q.Fields.Get(k)
			rec.Set(k, v)
		}
		// A child element named name or parent cannot replace the
		// structural columns.
		rec.Set("name", q.Name)
		rec.Set("parent", q.Parent)
		records[i] = rec
	}
	return types.NewTable(types.SheetQueues, []string{"name", "parent"}, records)
}

func setOptional(rec *types.Record, key string, v *string) {
	if v != nil {
		rec.Set(key, *v)
	}
}
