package models

import (
	"context"
	"fmt"

	e "github.com/microcosm-cc/registry/errors"
	h "github.com/microcosm-cc/registry/helpers"
)

// BrowseEntryType is a lightweight reference to a package in a browse list
type BrowseEntryType struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version,omitempty"`
	Value       int64  `json:"value,omitempty"`
}

type browseQuery struct {
	// query has the selected columns as %s and takes $1 = offset,
	// $2 = limit and, when usesArg is set, $3 = arg
	query   string
	usesArg bool
}

const (
	browseColumns      = `p.name, COALESCE(p.description, ''), COALESCE(p.version, '')`
	browseNameColumns  = `p.name, '', ''`
	browseQueryOrderBy = `
OFFSET $1
 LIMIT $2`
)

var browseQueries = map[string]browseQuery{
	h.BrowseDepended: {
		query: `
SELECT %s, 0
  FROM package_dependencies d
  JOIN packages p ON p.name = d.name
 WHERE d.depends_on = $3
 ORDER BY p.name` + browseQueryOrderBy,
		usesArg: true,
	},
	h.BrowseKeyword: {
		query: `
SELECT %s, 0
  FROM package_keywords k
  JOIN packages p ON p.name = k.name
 WHERE k.keyword = $3
 ORDER BY p.name` + browseQueryOrderBy,
		usesArg: true,
	},
	h.BrowseAuthor: {
		query: `
SELECT %s, 0
  FROM package_maintainers m
  JOIN packages p ON p.name = m.name
 WHERE m.username = $3
 ORDER BY p.name` + browseQueryOrderBy,
		usesArg: true,
	},
	h.BrowseUserStar: {
		query: `
SELECT %s, 0
  FROM package_stars s
  JOIN packages p ON p.name = s.name
 WHERE s.username = $3
 ORDER BY p.name` + browseQueryOrderBy,
		usesArg: true,
	},
	h.BrowseStar: {
		query: `
SELECT %s, COUNT(*)
  FROM package_stars s
  JOIN packages p ON p.name = s.name
 GROUP BY p.name, p.description, p.version
 ORDER BY COUNT(*) DESC, p.name` + browseQueryOrderBy,
	},
	h.BrowseUpdated: {
		query: `
SELECT %s, 0
  FROM packages p
 ORDER BY p.modified DESC` + browseQueryOrderBy,
	},
}

// GetBrowseData lists packages for one of the browse kinds. Rows are returned
// in the order the query produces them.
func (s *PGPackageStore) GetBrowseData(
	ctx context.Context,
	kind string,
	arg string,
	skip int64,
	limit int64,
	noPackageData bool,
) (
	[]BrowseEntryType,
	error,
) {
	bq, ok := browseQueries[kind]
	if !ok {
		return nil, e.New(
			"models.GetBrowseData",
			e.UnknownBrowseKind,
			fmt.Sprintf("%s is not a browse kind", kind),
		)
	}

	columns := browseColumns
	if noPackageData {
		columns = browseNameColumns
	}

	args := []interface{}{skip, limit}
	if bq.usesArg {
		args = append(args, arg)
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(bq.query, columns), args...)
	if err != nil {
		return nil, fmt.Errorf("Database query failed: %v", err.Error())
	}
	defer rows.Close()

	ems := []BrowseEntryType{}
	for rows.Next() {
		var m BrowseEntryType
		err = rows.Scan(
			&m.Name,
			&m.Description,
			&m.Version,
			&m.Value,
		)
		if err != nil {
			return nil, fmt.Errorf("Row parsing error: %v", err.Error())
		}
		ems = append(ems, m)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("Error fetching rows: %v", err.Error())
	}

	return ems, nil
}
