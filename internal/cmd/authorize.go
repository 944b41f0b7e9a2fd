package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli"
)

var AuthorizeCmd = cli.Command{
	Name:    "auth",
	Aliases: []string{"authorize"},
	Usage:   "Authorizes the application against a Mastodon instance",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "key",
			Usage: "Client application key",
		},
		&cli.StringFlag{
			Name:  "secret",
			Usage: "Client application secret",
		},
		&cli.StringFlag{
			Name:  "token",
			Usage: "Personal access token",
		},
		&cli.StringFlag{
			Name:  "instance",
			Usage: "The instance to authenticate against",
			Value: "",
		},
	},
	Action: Authorize,
}

func Authorize(c *cli.Context) error {
	key := c.String("key")
	secret := c.String("secret")
	accessToken := c.String("token")
	instance := c.String("instance")
	if instance == "" {
		return fmt.Errorf("an instance needs to be passed")
	}
	dryRun := c.GlobalBool("dry-run")

	app, err := CheckMastodonCredentialsFile(DataPath(), key, secret, accessToken, instance, dryRun, readAccessToken)
	if err != nil {
		return err
	}
	info("Authorized %s against %s", app.Name, app.InstanceURL)
	return nil
}

func readAccessToken() (string, error) {
	fmt.Printf("Paste the authorization code: ")
	tok, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(tok), nil
}
