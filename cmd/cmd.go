package cmd

import (
	"fmt"
	"runtime"

	"github.com/urfave/cli"

	"github.com/timerq/timerq/cmd/common"
)

// BuildArgs carries build-time metadata injected through -ldflags.
type BuildArgs struct {
	Version   string
	BuildType string
	Date      string
	Commit    string
}

// Execute runs the timerq CLI with the given arguments.
func Execute(args []string, bArgs BuildArgs) error {
	app := cli.App{
		Name:                  "timerq",
		HelpName:              "timerq",
		Usage:                 "An in-process deadline timer service.",
		Version:               fmt.Sprintf("%s-%s", bArgs.Version, bArgs.BuildType),
		UsageText:             "timerq <command> [arguments...]",
		Description:           DESCRIPTION,
		CustomAppHelpTemplate: HELP_TEMPL,
		OnUsageError:          common.UsageErrorCallback,
		Commands: []cli.Command{
			{
				Name:                   "demo",
				Aliases:                []string{"d"},
				Usage:                  "run a live timer countdown demo",
				Description:            DemoDescription,
				OnUsageError:           common.UsageErrorCallback,
				CustomHelpTemplate:     CMD_HELP_TEMPL,
				Action:                 demo,
				UseShortOptionHandling: true,
				Flags:                  demoFlags,
			},
			{
				Name:    "help",
				Aliases: []string{"h"},
				Usage:   "prints the help message",
				Action:  common.Help,
			},
			{
				Name:               "version",
				Aliases:            []string{"v"},
				Usage:              "prints installed version of timerq",
				UsageText:          " ",
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Action:             common.GetVersion,
			},
		},
		Action:                 demo,
		Flags:                  demoFlags,
		UseShortOptionHandling: true,
		HideHelp:               true,
		HideVersion:            true,
	}
	common.VersionCmdStr = fmt.Sprintf("%s %s (%s_%s)\nBuild: %s=%s\n",
		app.Name,
		app.Version,
		runtime.GOOS,
		runtime.GOARCH,
		bArgs.Date, bArgs.Commit,
	)
	return app.Run(args)
}
