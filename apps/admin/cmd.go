package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/smartbit/smartbit/core"
	"github.com/smartbit/smartbit/core/content"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	conf       *core.Config
	db         *sqlx.DB
	contentSvc *content.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate up|down - apply or roll back database migrations")
	fmt.Println("  seed - load a sample course with units, lessons and challenges")
	fmt.Println("  devtoken -user USER_ID [-name NAME] [-admin] - print a dev JWT for USER_ID")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	devTokenCmd := flag.NewFlagSet("devtoken", flag.ExitOnError)
	devTokenUser := devTokenCmd.String("user", "", "The user ID to mint a token for.")
	devTokenName := devTokenCmd.String("name", "", "The user's display name.")
	devTokenAdmin := devTokenCmd.Bool("admin", false, "Grant the admin claim.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2])
	case "seed":
		return cli.seed()
	case "devtoken":
		if err := devTokenCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *devTokenUser == "" {
			devTokenCmd.Usage()
			return errHelp
		}
		return cli.devToken(*devTokenUser, *devTokenName, *devTokenAdmin)
	default:
		cli.printUsage()
		return errHelp
	}
}
