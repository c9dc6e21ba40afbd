package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/rewindlabs/rewindq/pkg/common"
	"github.com/rewindlabs/rewindq/pkg/utility/fixed"
)

// Reader streams samples of one symbol out of a duckdb database. Each symbol
// lives in its own <symbol>_samples table with ts, value and volume columns.
type Reader struct {
	dataSourceName string
	db             *sql.DB
}

func NewReader(dataSourceName string) *Reader {
	return &Reader{
		dataSourceName: dataSourceName,
	}
}

func (r *Reader) Connect() error {
	db, err := sql.Open("duckdb", r.dataSourceName)
	if err != nil {
		return fmt.Errorf("unable to open database %q: %w", r.dataSourceName, err)
	}
	r.db = db
	return nil
}

func (r *Reader) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

func (r *Reader) LoadSamples(ctx context.Context, symbol string, from, to time.Time, handler func(sample common.Sample) error) error {

	query := fmt.Sprintf(`SELECT ts, value, volume FROM %s_samples WHERE ts BETWEEN ? AND ? ORDER BY ts`, symbol)

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var timeStamp time.Time
		var value, volume float64
		if err := rows.Scan(&timeStamp, &value, &volume); err != nil {
			return fmt.Errorf("error scanning row: %w", err)
		}

		sample := common.Sample{
			Value:     fixed.FromFloat64(value),
			Volume:    fixed.FromFloat64(volume),
			Symbol:    symbol,
			TimeStamp: timeStamp,
		}
		if err := handler(sample); err != nil {
			return fmt.Errorf("error processing sample: %w", err)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error scanning rows: %w", err)
	}

	return nil
}
