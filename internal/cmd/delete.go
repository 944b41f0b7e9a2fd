package cmd

import (
	"fmt"

	"github.com/urfave/cli"
)

var DeleteCmd = cli.Command{
	Name:  "delete",
	Usage: "Deletes publication events by id",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "series",
			Usage: "Remove the whole repeat series the event belongs to",
		},
	},
	Action: deleteEvents,
}

func deleteEvents(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one event id needs to be passed")
	}
	s, err := LoadSession(c)
	if err != nil {
		return err
	}

	cascade := c.Bool("series")
	for _, id := range c.Args() {
		if _, ok := s.Events.EventByID(id); !ok {
			info("no event with id %s", id)
			continue
		}
		s.Events.DeleteEvent(id, cascade)
		info("deleted %s", id)
	}

	if c.GlobalBool("dry-run") {
		return nil
	}
	return saveSession(s, c)
}
