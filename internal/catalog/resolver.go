package catalog

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/makeaweli/satchecker/internal/tle"
	"github.com/makeaweli/satchecker/internal/transform"
)

// Valid element-set sources. An empty source on a query means "any".
const (
	SourceCelestrak  = "celestrak"
	SourceSpacetrack = "spacetrack"
)

// ValidSource reports whether s names a known element-set source.
func ValidSource(s string) bool {
	return s == SourceCelestrak || s == SourceSpacetrack
}

// Resolver picks the best element set for an identifier and a target time.
type Resolver struct {
	repo   Repository
	logger *slog.Logger
}

func NewResolver(repo Repository, logger *slog.Logger) *Resolver {
	return &Resolver{repo: repo, logger: logger}
}

// Resolve returns the single element set closest in epoch to targetJD among
// all candidates matching the identifier. A targetJD of zero asks for the
// most recently collected data instead of epoch proximity.
//
// Catalog-number identifiers match at most one object; names may match
// several (names get reused across launches), in which case candidates from
// every matching object are pooled before the winner is picked.
func (r *Resolver) Resolve(ctx context.Context, identifier string, kind IdentifierKind, source string, targetJD float64) (Candidate, error) {
	identifier = strings.TrimSpace(identifier)

	switch kind {
	case KindCatalogNumber:
		n, err := strconv.Atoi(identifier)
		if err != nil || n <= 0 {
			return Candidate{}, InvalidIdentifierError{Identifier: identifier, Reason: "catalog number must be a positive integer"}
		}
		identifier = strconv.Itoa(n)
	case KindName:
		if identifier == "" {
			return Candidate{}, InvalidIdentifierError{Identifier: identifier, Reason: "name must not be empty"}
		}
		identifier = tle.NormalizeName(identifier)
	default:
		return Candidate{}, InvalidIdentifierError{Identifier: identifier, Reason: "unknown identifier kind " + string(kind)}
	}

	if source != "" && !ValidSource(source) {
		return Candidate{}, InvalidIdentifierError{Identifier: source, Reason: "unknown data source"}
	}

	candidates, err := r.repo.FindElementSets(ctx, identifier, kind, source)
	if err != nil {
		return Candidate{}, err
	}
	if len(candidates) == 0 {
		return Candidate{}, NoElementSetFoundError{Identifier: identifier, Kind: kind}
	}

	best := pick(candidates, targetJD)
	r.logger.Debug("resolved element set",
		"identifier", identifier,
		"catalog", best.Set.CatalogNumber,
		"epoch", best.Set.Epoch,
		"source", best.Set.DataSource,
		"supplemental", best.Set.IsSupplemental)
	return best, nil
}

// pick chooses the winning element set across the pooled candidates.
// Nearest epoch to targetJD wins. Exact distance ties go to non-supplemental
// data, then to the later-collected set. targetJD zero means latest collected.
func pick(cands []Candidate, targetJD float64) Candidate {
	best := cands[0]
	for _, c := range cands[1:] {
		if better(c, best, targetJD) {
			best = c
		}
	}
	return best
}

func better(a, b Candidate, targetJD float64) bool {
	if targetJD == 0 {
		return a.Set.DateCollected.After(b.Set.DateCollected)
	}

	da := math.Abs(transform.JulianDate(a.Set.Epoch) - targetJD)
	db := math.Abs(transform.JulianDate(b.Set.Epoch) - targetJD)
	if da != db {
		return da < db
	}
	if a.Set.IsSupplemental != b.Set.IsSupplemental {
		return !a.Set.IsSupplemental
	}
	return a.Set.DateCollected.After(b.Set.DateCollected)
}
