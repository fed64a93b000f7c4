package main

import (
	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	Config  string `short:"c" help:"HCL configuration file" default:"lrc.hcl" type:"path"`
	Debug   bool   `help:"Enable debug logging"`
	NoColor bool   `name:"no-color" help:"Disable colour output"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Play an interactive game in the terminal"`
	Simulate SimulateCmd      `cmd:"" help:"Simulate many games and report statistics"`
	Rules    RulesCmd         `cmd:"" help:"Print the rules"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("lrc"),
		kong.Description("Left Right Center, the dice game"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	if cli.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
