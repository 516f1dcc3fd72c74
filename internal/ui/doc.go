// Package ui formats what vellum prints to the terminal.
//
// Each exported Formatter names a role rather than a color. Callers pick the
// role that fits and the package decides how it looks:
//
//	fmt.Println(ui.Done("Sealed " + ui.Path.Sprint("notes.txt.vlm")))
//	fmt.Println(ui.Hint("Run " + ui.Code.Sprint("vellum doc unseal") + " to restore it"))
//	fmt.Println(ui.Highlight.Sprint(title), ui.Badge.Sprint("v2"))
//
// Output is plain when NO_COLOR is set or fatih/color finds no color
// support. Roles that would be ambiguous without color then get markers:
// Code uses backticks, Highlight single quotes, Muted parentheses and
// Badge brackets.
package ui
