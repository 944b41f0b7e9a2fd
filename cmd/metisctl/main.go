package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"git.sr.ht/~mariusor/metis/internal/cmd"
)

func main() {
	var err error

	ctl := cli.App{
		Name:    fmt.Sprintf("%sctl", cmd.AppName),
		Version: cmd.AppVersion,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "path",
				Usage: "The path for seed data and credentials",
				Value: cmd.DataPath(),
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Output debug messages",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Don't post or save credentials",
			},
		},
		Commands: []cli.Command{
			cmd.CatalogCmd,
			cmd.ListCmd,
			cmd.AddCmd,
			cmd.DeleteCmd,
			cmd.AuthorizeCmd,
			cmd.PostCmd,
			cmd.Server,
		},
	}

	err = ctl.Run(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
