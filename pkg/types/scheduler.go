// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Property is one entry of a flat capacity-scheduler property list.
type Property struct {
	// Name is the dotted property key (e.g. "yarn.scheduler.capacity.root.queues").
	Name string `json:"name" yaml:"name"`

	// Value is the raw property value. Empty when the element has no value child.
	Value string `json:"value" yaml:"value"`
}

// Queue is one queue node of a fair-scheduler allocation tree.
type Queue struct {
	// Name is the queue's name attribute.
	Name string `json:"name" yaml:"name"`

	// Parent is the name of the immediately containing queue, empty for roots.
	Parent string `json:"parent" yaml:"parent"`

	// Fields holds every non-queue child element keyed by tag, in document order.
	// A repeated tag keeps its first position and its last value.
	Fields Record `json:"-" yaml:"-"`
}

// User is a user element from a fair-scheduler allocation file.
type User struct {
	Name string `json:"name" yaml:"name"`

	// MaxRunningApps is nil when the user element has no maxRunningApps child.
	MaxRunningApps *string `json:"max_running_apps,omitempty" yaml:"max_running_apps,omitempty"`
}

// QueueResource holds the resource limits declared on a queue. Each field is
// nil when the queue does not declare it.
type QueueResource struct {
	Name      string  `json:"name" yaml:"name"`
	MaxMemory *string `json:"max_memory,omitempty" yaml:"max_memory,omitempty"`
	MaxVcores *string `json:"max_vcores,omitempty" yaml:"max_vcores,omitempty"`
	MinMemory *string `json:"min_memory,omitempty" yaml:"min_memory,omitempty"`
	MinVcores *string `json:"min_vcores,omitempty" yaml:"min_vcores,omitempty"`
	Weight    *string `json:"weight,omitempty" yaml:"weight,omitempty"`
}

// Ptr returns a pointer to s. It is a convenience for optional record fields.
func Ptr(s string) *string {
	return &s
}

// Deref returns the value of an optional field, or "" when it is nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
