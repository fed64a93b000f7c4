package main

import (
	"fmt"

	"github.com/lox/leftrightcenter/internal/tui"
)

type RulesCmd struct{}

func (c *RulesCmd) Run(g *Globals) error {
	fmt.Println(tui.HeaderStyle.Render(" ● L R C ● "))
	fmt.Println()
	fmt.Print(tui.Rules)
	return nil
}
