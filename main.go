package main

import (
	"emojicounter/internal/di"
	"emojicounter/internal/structures"
	"github.com/urfave/cli/v2"
	"log"
	"os"
)

func flagsFrom(c *cli.Context) *structures.CliFlags {
	return &structures.CliFlags{
		ConfigPath: c.String("config"),
		DebugMode:  c.Bool("debug"),
	}
}

func run(c *cli.Context) error {
	app, err := di.InitApp(flagsFrom(c))
	if err != nil {
		return err
	}
	return app.Run()
}

func register(c *cli.Context) error {
	registrar, err := di.InitRegistrar(flagsFrom(c))
	if err != nil {
		return err
	}
	if c.Bool("cleanup") {
		if err := registrar.Cleanup(); err != nil {
			return err
		}
	}
	return registrar.Register()
}

func main() {
	app := cli.NewApp()
	app.Name = "emojicounter"
	app.Usage = "Count custom emoji usage per Discord guild"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Value:   "config.yaml",
			Usage:   "path to the yaml config file",
			EnvVars: []string{"EMOJI_CONFIG"},
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "also log to stderr",
		},
	}
	app.Action = run
	app.Commands = []*cli.Command{
		{
			Action:      run,
			Name:        "run",
			Usage:       "Start the bot",
			Description: `Connects to Discord, counts emoji and serves the ranking API.`,
		},
		{
			Action: register,
			Name:   "register",
			Usage:  "Register slash commands with Discord",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "cleanup",
					Usage: "first remove any previously registered commands",
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
