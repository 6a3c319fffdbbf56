package internal

import (
	"context"
	"database/sql"

	"github.com/lychee-technology/xrosedb"
)

// Columns describes the columns of a table in declaration order.
func (s *SQLiteInterface) Columns(ctx context.Context, db *sql.DB, table string) ([]xrosedb.ColumnInformation, error) {
	rows, err := s.ExecuteQuery(ctx, db, xrosedb.NewQuery("PRAGMA table_info("+quoteIdent(table)+");"))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, xrosedb.NewDataNotFoundError(table)
	}

	columns := make([]xrosedb.ColumnInformation, 0, len(rows))
	for _, row := range rows {
		cid, _ := row.Get("cid")
		name, _ := row.Get("name")
		declType, _ := row.Get("type")
		notNull, _ := row.Get("notnull")
		pk, _ := row.Get("pk")
		columns = append(columns, xrosedb.ColumnInformation{
			Index:        int(cid.Int64()),
			Name:         name.Text(),
			DeclaredType: declType.Text(),
			Affinity:     AffinityOf(declType.Text()),
			Boolean:      IsBooleanDeclType(declType.Text()),
			NotNull:      notNull.Int64() != 0,
			PrimaryKey:   pk.Int64() != 0,
		})
	}
	return columns, nil
}
