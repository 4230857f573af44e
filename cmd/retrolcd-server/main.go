package main

import (
	"log"
	"os"

	"github.com/tmpim/retrolcd/server"
	"github.com/urfave/cli/v2"
)

func main() {
	log.SetFlags(0)

	app := cli.NewApp()
	app.Name = "retrolcd-server"
	app.Usage = "serve retrolcd conversions over HTTP and websockets"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "listen",
			Aliases: []string{"l"},
			EnvVars: []string{"RETROLCD_LISTEN"},
			Value:   ":9999",
			Usage:   "address to listen on",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			EnvVars: []string{"RETROLCD_VERBOSE"},
			Usage:   "log pipeline stages of every conversion",
		},
	}

	app.Action = func(c *cli.Context) error {
		logger := log.New(os.Stderr, "", log.LstdFlags)

		var convLog *log.Logger
		if c.Bool("verbose") {
			convLog = logger
		}

		s := server.New(convLog, os.Stdout)
		logger.Println("retrolcd server: listening on", c.String("listen"))
		return s.Start(c.String("listen"))
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
