package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli"

	"git.sr.ht/~mariusor/metis"
	"git.sr.ht/~mariusor/metis/calendar"
)

var CatalogCmd = cli.Command{
	Name:               "catalog",
	Usage:              "Lists the platform, client and label catalogs, use --help to see the supported platform icons",
	Action:             showCatalog,
	CustomHelpTemplate: catalogHelp(),
	Subcommands: []cli.Command{
		{
			Name:      "add",
			Usage:     "Adds a platform, client or label to the catalog",
			ArgsUsage: "{platform|client|label} <name>",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "icon",
					Usage: "Platform icon",
					Value: string(calendar.IconVideo),
				},
				&cli.StringFlag{
					Name:  "color",
					Usage: "Client or label display color, #rrggbb",
				},
			},
			Action: catalogAdd,
		},
		{
			Name:      "delete",
			Usage:     "Removes a catalog entry, cascading into the events it owns",
			ArgsUsage: "{platform|client|label} <name-or-id>",
			Action:    catalogDelete,
		},
	},
}

func catalogAdd(c *cli.Context) error {
	if c.NArg() < 2 {
		return fmt.Errorf("a catalog kind and a name need to be passed")
	}
	kind, name := c.Args().Get(0), c.Args().Get(1)

	s, err := LoadSession(c)
	if err != nil {
		return err
	}
	switch kind {
	case "platform":
		if _, err := s.Catalog.AddPlatform(name, calendar.Icon(c.String("icon"))); err != nil {
			return err
		}
	case "client":
		cl := s.Catalog.AddClient(name, c.String("color"))
		info("added client %s with color %s", cl.Name, cl.Color)
	case "label":
		s.Catalog.AddLabel(name, c.String("color"))
	default:
		return fmt.Errorf("unknown catalog kind %q", kind)
	}

	if c.GlobalBool("dry-run") {
		return nil
	}
	return saveSession(s, c)
}

func catalogDelete(c *cli.Context) error {
	if c.NArg() < 2 {
		return fmt.Errorf("a catalog kind and a name or id need to be passed")
	}
	kind, ref := c.Args().Get(0), c.Args().Get(1)

	s, err := LoadSession(c)
	if err != nil {
		return err
	}
	switch kind {
	case "platform":
		p, ok := s.Catalog.PlatformByID(ref)
		if !ok {
			if p, ok = s.Catalog.PlatformByName(ref); !ok {
				return fmt.Errorf("unknown platform %q", ref)
			}
		}
		s.Catalog.DeletePlatform(p.ID)
	case "client":
		cl, ok := s.Catalog.ClientByID(ref)
		if !ok {
			if cl, ok = s.Catalog.ClientByName(ref); !ok {
				return fmt.Errorf("unknown client %q", ref)
			}
		}
		s.Catalog.DeleteClient(cl.ID)
	case "label":
		l, ok := s.Catalog.LabelByID(ref)
		if !ok {
			if l, ok = s.Catalog.LabelByName(ref); !ok {
				return fmt.Errorf("unknown label %q", ref)
			}
		}
		s.Catalog.DeleteLabel(l.ID)
	default:
		return fmt.Errorf("unknown catalog kind %q", kind)
	}

	if c.GlobalBool("dry-run") {
		return nil
	}
	return saveSession(s, c)
}

func writeHelpLabels(w io.StringWriter, labels ...string) error {
	for _, lbl := range labels {
		w.WriteString("\t\t")
		w.WriteString(lbl)
		w.WriteString("\n")
	}
	return nil
}

func catalogHelp() string {
	h := strings.Builder{}
	h.WriteString("Valid platform icons:\n")
	icons := make([]string, 0, len(calendar.ValidIcons))
	for _, i := range calendar.ValidIcons {
		icons = append(icons, string(i))
	}
	writeHelpLabels(&h, icons...)
	h.WriteString("\n")
	h.WriteString("Valid repeat intervals:\n")
	intervals := make([]string, 0, len(calendar.ValidIntervals))
	for _, i := range calendar.ValidIntervals {
		intervals = append(intervals, string(i))
	}
	writeHelpLabels(&h, intervals...)
	return h.String()
}

func showCatalog(c *cli.Context) error {
	s, err := LoadSession(c)
	if err != nil {
		return err
	}
	return printCatalog(s)
}

func printCatalog(s *metis.Session) error {
	platforms := make([]string, 0)
	for _, p := range s.Catalog.Platforms() {
		platforms = append(platforms, fmt.Sprintf("%s(%s)", p.Name, p.Icon))
	}
	fmt.Printf("platforms: %s\n", strings.Join(platforms, ", "))

	clients := make([]string, 0)
	for _, cl := range s.Catalog.Clients() {
		clients = append(clients, fmt.Sprintf("%s(%s)", cl.Name, cl.Color))
	}
	fmt.Printf("clients: %s\n", strings.Join(clients, ", "))

	labels := make([]string, 0)
	for _, l := range s.Catalog.Labels() {
		labels = append(labels, fmt.Sprintf("%s(%s)", l.Name, l.Color))
	}
	fmt.Printf("labels: %s\n", strings.Join(labels, ", "))
	return nil
}
