package migrations

import (
	"context"
	_ "embed"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

//go:embed 0001_create_users.sql
var createUsersSQL string

//go:embed 0002_create_modules.sql
var createModulesSQL string

//go:embed 0003_create_progress.sql
var createProgressSQL string

var Migrations = migrate.NewMigrations()

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			for _, stmt := range []string{createUsersSQL, createModulesSQL, createProgressSQL} {
				if _, err := db.Exec(stmt); err != nil {
					return err
				}
			}
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.Exec(`DROP TABLE IF EXISTS progress; DROP TABLE IF EXISTS modules; DROP TABLE IF EXISTS users`)
			return err
		},
	)
}
