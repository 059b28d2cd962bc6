package postgres

import (
	"io/fs"

	"github.com/withoutfanfare/developer-test/internal/platform/sqlstore"
)

func fsReadDir(d sqlstore.Dialect) ([]fs.DirEntry, error) {
	return fs.ReadDir(d.Migrations, ".")
}
