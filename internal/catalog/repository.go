package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/makeaweli/satchecker/internal/tle"
)

// IdentifierKind selects how an identifier string is matched against the
// catalog.
type IdentifierKind string

const (
	// KindCatalogNumber matches the numeric catalog (NORAD) identifier.
	KindCatalogNumber IdentifierKind = "catalog"
	// KindName matches the object name, case-insensitively. Names are not
	// unique, so a name may resolve to several distinct objects.
	KindName IdentifierKind = "name"
)

// Candidate pairs an element set with the cataloged object it belongs to.
type Candidate struct {
	Set    tle.ElementSet
	Object tle.TrackedObject
}

// NameRecord links an object name to its catalog number, for the identifier
// cross-reference endpoints.
type NameRecord struct {
	Name          string
	CatalogNumber int
	DateAdded     time.Time
}

// Repository is the read side of the element-set catalog.
type Repository interface {
	// FindElementSets returns all element sets whose object matches the
	// identifier, newest data first. An empty source means any source.
	FindElementSets(ctx context.Context, identifier string, kind IdentifierKind, source string) ([]Candidate, error)

	// FindElementSetsInRange returns every element set for the identifier
	// whose epoch falls inside [start, end]. Nil bounds are open.
	FindElementSetsInRange(ctx context.Context, identifier string, kind IdentifierKind, start, end *time.Time) ([]Candidate, error)

	// FindNamesByCatalog returns every name an object has been cataloged
	// under, most recent first.
	FindNamesByCatalog(ctx context.Context, catalogNumber int) ([]NameRecord, error)

	// FindCatalogsByName returns the catalog numbers of every object that
	// has carried the given name.
	FindCatalogsByName(ctx context.Context, name string) ([]NameRecord, error)
}

// NoElementSetFoundError means the catalog holds no element set matching the
// identifier (and source filter, if any).
type NoElementSetFoundError struct {
	Identifier string
	Kind       IdentifierKind
}

func (e NoElementSetFoundError) Error() string {
	return fmt.Sprintf("no element set found for %s %q", e.Kind, e.Identifier)
}

// InvalidIdentifierError means the identifier string cannot be interpreted
// under the requested kind.
type InvalidIdentifierError struct {
	Identifier string
	Reason     string
}

func (e InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid identifier %q: %s", e.Identifier, e.Reason)
}
