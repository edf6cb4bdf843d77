package source

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// PostgresSampler samples rows from a postgres table through pgx.
type PostgresSampler struct {
}

func NewPostgresSampler() Sampler {
	return &PostgresSampler{}
}

func (s *PostgresSampler) Sample(ctx context.Context, cfg Config) ([]map[string]interface{}, error) {
	conn, err := pgx.Connect(ctx, cfg.DSN)
	if err != nil {
		return nil, err
	}
	defer conn.Close(ctx)

	ident := pgx.Identifier{cfg.Collection}.Sanitize()
	query := fmt.Sprintf(`SELECT * FROM %s LIMIT %d`, ident, cfg.limit())
	rows, err := conn.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	cols := make([]string, len(fields))
	for i, fd := range fields {
		cols[i] = fd.Name
	}

	var docs []map[string]interface{}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		docs = append(docs, rowDoc(cols, values))
	}
	return docs, rows.Err()
}
