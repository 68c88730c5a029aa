package models

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	h "github.com/microcosm-cc/registry/helpers"
)

// DownloadRecordType is the download count of a package over one period
type DownloadRecordType struct {
	Downloads int64  `json:"downloads"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Package   string `json:"package"`
}

// DownloadsType is what a DownloadStore returns: either a single record or a
// sequence of records, one per period, most recent first. Exactly one of
// Record and Records is meaningful.
type DownloadsType struct {
	Record  *DownloadRecordType
	Records []DownloadRecordType
}

// Current is the record shown on the package page. For a sequence that is the
// first element.
func (m DownloadsType) Current() *DownloadRecordType {
	if m.Records != nil {
		if len(m.Records) == 0 {
			return nil
		}
		r := m.Records[0]
		return &r
	}
	return m.Record
}

// DownloadStore provides download statistics
type DownloadStore interface {
	GetAllDownloads(ctx context.Context, name string) (DownloadsType, error)
}

// PGDownloadStore is a DownloadStore over the downloads table
type PGDownloadStore struct {
	db *sql.DB
}

// NewPGDownloadStore uses the connection already established by
// helpers.InitDBConnection
func NewPGDownloadStore() (*PGDownloadStore, error) {
	db, err := h.GetConnection()
	if err != nil {
		return nil, err
	}
	return &PGDownloadStore{db: db}, nil
}

const downloadDateFormat = "2006-01-02"

// GetAllDownloads returns every period recorded for the package as a
// sequence, newest period first
func (s *PGDownloadStore) GetAllDownloads(
	ctx context.Context,
	name string,
) (
	DownloadsType,
	error,
) {
	rows, err := s.db.QueryContext(ctx, `
SELECT package
      ,period_start
      ,period_end
      ,downloads
  FROM downloads
 WHERE package = $1
 ORDER BY period_end DESC`,
		name,
	)
	if err != nil {
		return DownloadsType{}, fmt.Errorf("Database query failed: %v", err.Error())
	}
	defer rows.Close()

	ems := []DownloadRecordType{}
	for rows.Next() {
		var (
			m     DownloadRecordType
			start time.Time
			end   time.Time
		)
		err = rows.Scan(
			&m.Package,
			&start,
			&end,
			&m.Downloads,
		)
		if err != nil {
			return DownloadsType{}, fmt.Errorf("Row parsing error: %v", err.Error())
		}
		m.Start = start.Format(downloadDateFormat)
		m.End = end.Format(downloadDateFormat)
		ems = append(ems, m)
	}
	err = rows.Err()
	if err != nil {
		return DownloadsType{}, fmt.Errorf("Error fetching rows: %v", err.Error())
	}

	return DownloadsType{Records: ems}, nil
}
