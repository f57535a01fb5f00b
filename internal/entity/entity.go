package entity

import (
	"time"

	"github.com/google/uuid"
)

// LocatorKind selects how a LocatorDescriptor is re-resolved later.
type LocatorKind string

const (
	LocatorByRole LocatorKind = "role"
	LocatorByCSS  LocatorKind = "css"
)

// LocatorDescriptor is an opaque, re-resolvable reference to a DOM element:
// either a role+name query or a structural CSS path. Nth is set only when
// the query is known to match several elements.
type LocatorDescriptor struct {
	Kind LocatorKind
	Role string
	Name string
	CSS  string
	Nth  *int
}

// RefEntry ties a short ref id to a locator descriptor. Nth is set only when
// the (role, name) pair occurred more than once in the snapshot.
type RefEntry struct {
	Selector LocatorDescriptor
	Role     string
	Name     string
	Nth      *int
}

// RefMap holds ref id -> RefEntry in discovery order. It is owned by exactly
// one snapshot invocation and rebuilt from scratch on the next one.
type RefMap struct {
	ids     []string
	entries map[string]*RefEntry
}

func NewRefMap() *RefMap {
	return &RefMap{
		entries: make(map[string]*RefEntry),
	}
}

func (m *RefMap) Append(id string, entry *RefEntry) {
	if _, ok := m.entries[id]; !ok {
		m.ids = append(m.ids, id)
	}

	m.entries[id] = entry
}

func (m *RefMap) Get(id string) (*RefEntry, bool) {
	entry, ok := m.entries[id]

	return entry, ok
}

// IDs returns ref ids in discovery order.
func (m *RefMap) IDs() []string {
	out := make([]string, len(m.ids))
	copy(out, m.ids)

	return out
}

func (m *RefMap) Len() int {
	return len(m.ids)
}

// SnapshotOptions configures one snapshot invocation.
type SnapshotOptions struct {
	// Interactive keeps only interactive roles and drops plain text lines.
	Interactive bool
	// Cursor additionally runs the cursor-interactive detector.
	Cursor bool
	// MaxDepth drops entries nested deeper than the limit (0 = unlimited).
	MaxDepth int
	// Compact removes structural lines without ref-bearing descendants.
	Compact bool
	// Selector scopes the snapshot to one subtree and bypasses region
	// partitioning.
	Selector string
}

// Snapshot is the result of one invocation: annotated tree text plus its
// ref map. Refs are valid only against this snapshot.
type Snapshot struct {
	ID      uuid.UUID
	URL     string
	Title   string
	Tree    string
	Refs    *RefMap
	TakenAt time.Time
}

// RegionKey names a pane of a recognized multi-pane shell.
type RegionKey string

const (
	RegionSidebar  RegionKey = "sidebar"
	RegionContents RegionKey = "contents"
	RegionDrawer   RegionKey = "drawer"
	RegionFAB      RegionKey = "fab"
)

// Region is one detected pane: its display title and the structurally
// unique selectors of its on-screen roots. Regions with no selectors are
// never emitted.
type Region struct {
	Key       RegionKey
	Title     string
	Selectors []string
}

// Candidate is one element reported by the in-page cursor-interactive
// query. Path is a dotted child-index path from the document root, used
// for containment checks. Consumed entirely within one detector call.
type Candidate struct {
	Selector               string `json:"selector"`
	Label                  string `json:"label"`
	Tag                    string `json:"tag"`
	Path                   string `json:"path"`
	HasOnClick             bool   `json:"hasOnClick"`
	HasCursorPointer       bool   `json:"hasCursorPointer"`
	HasDirectCursorPointer bool   `json:"hasDirectCursorPointer"`
	HasTabIndex            bool   `json:"hasTabIndex"`
	HasTitle               bool   `json:"hasTitle"`
	HasAriaLabel           bool   `json:"hasAriaLabel"`
	Depth                  int    `json:"depth"`
	Order                  int    `json:"order"`
}
