package main

import (
	"fmt"

	"github.com/smartbit/smartbit/storage/database"
)

func (cli *commandLine) migrate(direction string) error {
	switch direction {
	case "up":
		return database.Migrate(cli.db.DB)
	case "down":
		return database.MigrateDown(cli.db.DB)
	default:
		return fmt.Errorf("unknown migrate direction %q", direction)
	}
}
