package main

import (
	"os"
	"path"

	"github.com/basalt-io/basalt-cms/pkg/commands"
	"github.com/basalt-io/basalt-cms/pkg/version"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			// log panics forces exit
			if _, ok := r.(*logrus.Entry); ok {
				os.Exit(1)
			}
			panic(r)
		}
	}()

	// Optional .env for local development; loaded before flag parsing
	// so env-backed flags pick it up. Absence is fine.
	_ = godotenv.Load()

	app := cli.NewApp()
	app.Name = path.Base(os.Args[0])
	app.Usage = "Content management and inquiry intake backend"
	app.Version = version.Get().String()

	app.Commands = commands.GetCommands()
	app.CommandNotFound = func(context *cli.Context, command string) {
		logrus.Fatalf("Command %s not found.", command)
	}

	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}
