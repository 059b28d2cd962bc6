package sqlstore

import (
	"io/fs"
	"time"

	"github.com/jmoiron/sqlx"
)

// Dialect captures what differs between the supported SQL engines.
type Dialect struct {
	// DriverName is the database/sql driver name.
	DriverName string
	// Goose is the goose dialect used for migrations.
	Goose string
	// Bind is the sqlx bindvar style.
	Bind int
	// Migrations holds the goose SQL files at its root.
	Migrations fs.FS
	// TimeArg converts a timestamp into a query argument that compares
	// correctly against stored values.
	TimeArg func(time.Time) any
	// MapError translates driver errors into store errors. Nil leaves
	// errors unchanged.
	MapError func(error) error
	// LowerFunc is the SQL function that folds a column to lower case the
	// same way strings.ToLower folds the bound filter. Empty means LOWER.
	LowerFunc string
}

func (d Dialect) rebind(query string) string {
	return sqlx.Rebind(d.Bind, query)
}

func (d Dialect) timeArg(t time.Time) any {
	if d.TimeArg == nil {
		return t.UTC()
	}
	return d.TimeArg(t)
}

func (d Dialect) mapError(err error) error {
	if err == nil || d.MapError == nil {
		return err
	}
	return d.MapError(err)
}

func (d Dialect) lower(column string) string {
	fn := d.LowerFunc
	if fn == "" {
		fn = "LOWER"
	}
	return fn + "(" + column + ")"
}
