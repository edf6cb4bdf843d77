package source

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteSampler samples rows from a sqlite file through database/sql.
type SQLiteSampler struct {
	driverName string
}

func NewSQLiteSampler() Sampler {
	return &SQLiteSampler{driverName: "sqlite"}
}

func (s *SQLiteSampler) Sample(ctx context.Context, cfg Config) ([]map[string]interface{}, error) {
	db, err := sql.Open(s.driverName, cfg.DSN)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	if err = db.PingContext(ctx); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT * FROM %q LIMIT %d`, cfg.Collection, cfg.limit())
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var docs []map[string]interface{}
	for rows.Next() {
		values := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err = rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		docs = append(docs, rowDoc(cols, values))
	}
	return docs, rows.Err()
}
