package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCode(err))
	}
}

func newApp() *cli.App {
	rt := &runtime{}

	return &cli.App{
		Name:  "lms",
		Usage: "campus learning management: enrollment, submissions, grading and announcements",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to config file (default ./config/config.yaml)",
				EnvVars: []string{"LMS_CONFIG"},
			},
		},
		Before: func(c *cli.Context) error {
			return rt.init(c.Context, c.String("config"))
		},
		After: func(c *cli.Context) error {
			rt.close()
			return nil
		},
		Commands: append(append(accountCommands(rt), studentCommands(rt)...), lecturerCommands(rt)...),
	}
}
