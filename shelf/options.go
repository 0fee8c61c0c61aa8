package shelf

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/interfect/sqliteshelf/internal/platform/sqlite"
)

// InMemory is the reserved path meaning "private, ephemeral, in-memory
// store". Shelves opened with it never share a connection: every open
// yields an independent empty database.
const InMemory = sqlite.InMemory

// DefaultTable is the table name used when Options.Table is empty.
const DefaultTable = "shelf"

// Durability selects when mutations become durable on disk. It is fixed
// at open; there are no transitions.
type Durability int

const (
	// Eager commits after every mutation, including schema creation at
	// open. Work survives a crash immediately after each call.
	Eager Durability = iota
	// Lazy leaves mutations in the pending transaction until an explicit
	// Sync or Close. Uncommitted work is lost on crash.
	Lazy
)

// String returns the textual form used in configuration.
func (d Durability) String() string {
	switch d {
	case Eager:
		return "eager"
	case Lazy:
		return "lazy"
	default:
		return fmt.Sprintf("Durability(%d)", int(d))
	}
}

// ParseDurability converts a configuration string into a Durability.
func ParseDurability(s string) (Durability, error) {
	switch strings.ToLower(s) {
	case "eager", "":
		return Eager, nil
	case "lazy":
		return Lazy, nil
	default:
		return Eager, fmt.Errorf("unknown durability mode %q", s)
	}
}

// Options configures a shelf at open time.
type Options struct {
	// Path is the backing database file, or InMemory for a private
	// ephemeral store. Shelves opened with the same non-InMemory path
	// share one physical connection. Default: InMemory.
	Path string
	// Table is the table holding this shelf's rows. Independent shelves
	// may coexist in one file under different table names.
	// Default: DefaultTable.
	Table string
	// Durability selects the commit policy. Default: Eager.
	Durability Durability
}

// withDefaults fills zero values with the documented defaults.
func (o Options) withDefaults() Options {
	if o.Path == "" {
		o.Path = InMemory
	}
	if o.Table == "" {
		o.Table = DefaultTable
	}
	return o
}

// Table names are interpolated into SQL, so they are restricted to plain
// identifiers rather than quoted and escaped.
var tablePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
