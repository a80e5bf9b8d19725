package catalog

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/makeaweli/satchecker/internal/db"
	"github.com/makeaweli/satchecker/internal/tle"
)

// PostgresRepository reads element sets from the ingestion database. The
// schema has a satellites table (one row per cataloged object, sat_number
// stored as text) and a tle table (one row per collected element set,
// keyed to its satellite).
type PostgresRepository struct {
	q db.Querier
}

func NewPostgresRepository(q db.Querier) *PostgresRepository {
	return &PostgresRepository{q: q}
}

const candidateColumns = `
	s.sat_number, s.sat_name, s.constellation, s.rcs_size, s.object_type,
	s.launch_date, s.decay_date, s.date_added,
	t.tle_line1, t.tle_line2, t.epoch, t.date_collected, t.data_source, t.is_supplemental`

func (r *PostgresRepository) FindElementSets(ctx context.Context, identifier string, kind IdentifierKind, source string) ([]Candidate, error) {
	var where string
	switch kind {
	case KindCatalogNumber:
		where = "s.sat_number = $1"
	case KindName:
		where = "s.sat_name = $1"
	default:
		return nil, InvalidIdentifierError{Identifier: identifier, Reason: "unknown identifier kind " + string(kind)}
	}

	query := `SELECT` + candidateColumns + `
	FROM tle t JOIN satellites s ON s.id = t.sat_id
	WHERE ` + where
	args := []any{identifier}
	if source != "" {
		query += " AND t.data_source = $2"
		args = append(args, source)
	}
	query += " ORDER BY t.epoch DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query element sets: %w", err)
	}
	defer rows.Close()
	return r.scanCandidates(rows)
}

func (r *PostgresRepository) scanCandidates(rows pgx.Rows) ([]Candidate, error) {
	var out []Candidate
	for rows.Next() {
		var (
			c         Candidate
			satNumber string
			constell  *string
			rcs       *string
			objType   *string
			launch    *time.Time
			decay     *time.Time
		)
		if err := rows.Scan(
			&satNumber, &c.Object.Name, &constell, &rcs, &objType,
			&launch, &decay, &c.Object.DateAdded,
			&c.Set.Line1, &c.Set.Line2, &c.Set.Epoch, &c.Set.DateCollected,
			&c.Set.DataSource, &c.Set.IsSupplemental,
		); err != nil {
			return nil, fmt.Errorf("scan element set: %w", err)
		}

		n, err := strconv.Atoi(satNumber)
		if err != nil {
			return nil, fmt.Errorf("catalog number %q is not numeric: %w", satNumber, err)
		}
		c.Object.CatalogNumber = n
		c.Set.CatalogNumber = n
		c.Set.Name = c.Object.Name
		if constell != nil {
			c.Object.Constellation = *constell
		}
		if rcs != nil {
			c.Object.RCSSize = *rcs
		}
		if objType != nil {
			c.Object.ObjectType = *objType
		}
		c.Object.LaunchDate = launch
		c.Object.DecayDate = decay

		// Orbital summary fields needed by the model come from the lines.
		parsed, err := tle.ParseSet(c.Set.Line1 + "\n" + c.Set.Line2)
		if err != nil {
			return nil, fmt.Errorf("stored element set for %s: %w", satNumber, err)
		}
		c.Set.Eccentricity = parsed.Eccentricity
		c.Set.MeanMotion = parsed.MeanMotion

		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) FindElementSetsInRange(ctx context.Context, identifier string, kind IdentifierKind, start, end *time.Time) ([]Candidate, error) {
	var where string
	switch kind {
	case KindCatalogNumber:
		where = "s.sat_number = $1"
	case KindName:
		where = "s.sat_name = $1"
	default:
		return nil, InvalidIdentifierError{Identifier: identifier, Reason: "unknown identifier kind " + string(kind)}
	}

	query := `SELECT` + candidateColumns + `
	FROM tle t JOIN satellites s ON s.id = t.sat_id
	WHERE ` + where
	args := []any{identifier}
	if start != nil {
		args = append(args, *start)
		query += fmt.Sprintf(" AND t.epoch >= $%d", len(args))
	}
	if end != nil {
		args = append(args, *end)
		query += fmt.Sprintf(" AND t.epoch <= $%d", len(args))
	}
	query += " ORDER BY t.epoch DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query element sets in range: %w", err)
	}
	defer rows.Close()
	return r.scanCandidates(rows)
}

func (r *PostgresRepository) FindNamesByCatalog(ctx context.Context, catalogNumber int) ([]NameRecord, error) {
	rows, err := r.q.Query(ctx,
		`SELECT sat_name, sat_number, date_added FROM satellites
		 WHERE sat_number = $1 ORDER BY date_added DESC`,
		strconv.Itoa(catalogNumber))
	if err != nil {
		return nil, fmt.Errorf("query names: %w", err)
	}
	defer rows.Close()
	return scanNameRecords(rows)
}

func (r *PostgresRepository) FindCatalogsByName(ctx context.Context, name string) ([]NameRecord, error) {
	rows, err := r.q.Query(ctx,
		`SELECT sat_name, sat_number, date_added FROM satellites
		 WHERE sat_name = $1 ORDER BY date_added DESC`,
		name)
	if err != nil {
		return nil, fmt.Errorf("query catalog numbers: %w", err)
	}
	defer rows.Close()
	return scanNameRecords(rows)
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanNameRecords(rows rowScanner) ([]NameRecord, error) {
	var out []NameRecord
	for rows.Next() {
		var rec NameRecord
		var satNumber string
		if err := rows.Scan(&rec.Name, &satNumber, &rec.DateAdded); err != nil {
			return nil, fmt.Errorf("scan name record: %w", err)
		}
		n, err := strconv.Atoi(satNumber)
		if err != nil {
			return nil, fmt.Errorf("catalog number %q is not numeric: %w", satNumber, err)
		}
		rec.CatalogNumber = n
		out = append(out, rec)
	}
	return out, rows.Err()
}
