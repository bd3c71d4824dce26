// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/icd-engine/internal/textnorm"
	"github.com/pdiddy/icd-engine/pkg/types"
)

// LookupOptions holds parameters for store queries.
type LookupOptions struct {
	// Code looks up records by exact code.
	Code string

	// Query is an FTS5 full-text search over descriptions, used when
	// Code is empty.
	Query string

	// Edition restricts results to one edition when set.
	Edition types.Edition

	// Variant restricts results to one table variant when set.
	Variant types.TableVariant

	// Limit caps the result count. Zero uses the store default.
	Limit int
}

// IsEmpty reports whether the options select nothing to look up.
func (o LookupOptions) IsEmpty() bool {
	return o.Code == "" && o.Query == ""
}

// LookupResult is one matched record together with the merged conversion
// row for its code, when one exists.
type LookupResult struct {
	Edition types.Edition
	Variant types.TableVariant
	Record  types.CodeRecord

	// Conversion is nil for ICD-10 records and for ICD-9 codes the
	// conversion table has not been ingested for.
	Conversion *types.Conversion

	// MatchedBy records which query path produced the result: "code" for
	// exact lookups, "description" for full-text hits.
	MatchedBy string
}

// Trace writes a short explanation of how the result was found and how
// its conversion, if any, was resolved.
func (r LookupResult) Trace(w io.Writer) {
	fmt.Fprintf(w, "%s/%s %s: matched by %s\n", r.Edition, r.Variant, r.Record.Code, r.MatchedBy)
	fmt.Fprintf(w, "  description: %s\n", r.Record.Description)
	if r.Record.Subcategory != "" {
		fmt.Fprintf(w, "  subcategory: %s\n", r.Record.Subcategory)
	}
	if r.Record.CommonCategory != "" {
		fmt.Fprintf(w, "  commoncat:   %s\n", r.Record.CommonCategory)
	}

	switch {
	case r.Conversion == nil:
		fmt.Fprintf(w, "  conversion:  none recorded\n")
	case r.Conversion.ICD10Subcategory == types.NoConversion:
		fmt.Fprintf(w, "  conversion:  %s\n", types.NoConversion)
	default:
		fmt.Fprintf(w, "  conversion:  %s (%s)\n", r.Conversion.ICD10Subcategory, r.Conversion.Provenance)
	}
}

// Lookup queries the store by exact code or by full-text search over
// descriptions. Code lookups are ordered by edition, variant, code;
// full-text hits by relevance.
func (s *Store) Lookup(ctx context.Context, opts LookupOptions) ([]LookupResult, error) {
	if opts.IsEmpty() {
		return nil, errors.New("lookup needs a code or a query")
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = s.maxResults
	}

	var (
		qb        strings.Builder
		args      []any
		matchedBy string
	)

	if opts.Code != "" {
		matchedBy = "code"
		qb.WriteString(
			`SELECT r.edition, r.variant, r.code, r.description, r.category,
				r.subcategory, r.commoncat,
				c.code, c.description, c.subcategory, c.commoncat,
				c.icd10subcategory, c.provenance
			FROM records r
			LEFT JOIN conversions c ON r.edition = 'icd9' AND c.code = r.code
			WHERE r.code = ?`)
		args = append(args, textnorm.Lower(opts.Code))
	} else {
		matchedBy = "description"
		qb.WriteString(
			`SELECT r.edition, r.variant, r.code, r.description, r.category,
				r.subcategory, r.commoncat,
				c.code, c.description, c.subcategory, c.commoncat,
				c.icd10subcategory, c.provenance
			FROM records_fts
			JOIN records r ON r.rowid = records_fts.rowid
			LEFT JOIN conversions c ON r.edition = 'icd9' AND c.code = r.code
			WHERE records_fts MATCH ?`)
		args = append(args, opts.Query)
	}

	if opts.Edition != "" {
		qb.WriteString(` AND r.edition = ?`)
		args = append(args, string(opts.Edition))
	}
	if opts.Variant != "" {
		qb.WriteString(` AND r.variant = ?`)
		args = append(args, string(opts.Variant))
	}

	if opts.Code != "" {
		qb.WriteString(` ORDER BY r.edition, r.variant, r.code`)
	} else {
		qb.WriteString(` ORDER BY records_fts.rank`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying store: %w", err)
	}
	defer rows.Close()

	var results []LookupResult
	for rows.Next() {
		var (
			res              LookupResult
			edition, variant string
			convCode         sql.NullString
			convDesc         sql.NullString
			convSubcat       sql.NullString
			convCommon       sql.NullString
			convICD10        sql.NullString
			convProv         sql.NullString
		)

		if err := rows.Scan(
			&edition, &variant, &res.Record.Code, &res.Record.Description,
			&res.Record.Category, &res.Record.Subcategory, &res.Record.CommonCategory,
			&convCode, &convDesc, &convSubcat, &convCommon, &convICD10, &convProv,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		res.Edition = types.Edition(edition)
		res.Variant = types.TableVariant(variant)
		res.MatchedBy = matchedBy

		if convCode.Valid {
			res.Conversion = &types.Conversion{
				Code:             convCode.String,
				Description:      convDesc.String,
				Subcategory:      convSubcat.String,
				CommonCategory:   convCommon.String,
				ICD10Subcategory: convICD10.String,
				Provenance:       convProv.String,
			}
		}

		results = append(results, res)
	}

	return results, rows.Err()
}
