package tui

import _ "embed"

// Rules is the rules text shown by the Rules screen and `lrc rules`.
//
//go:embed rules.txt
var Rules string
