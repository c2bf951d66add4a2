package cli

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
)

var (
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true).
			MarginBottom(1)

	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(accentColor).
				MarginTop(1)

	helpFlagStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	helpCmdStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)
)

// StyledHelpPrinter creates a custom help printer with Lipgloss styling
func StyledHelpPrinter(options kong.HelpOptions) kong.HelpPrinter {
	return kong.HelpPrinter(func(options kong.HelpOptions, ctx *kong.Context) error {
		var sb strings.Builder

		sb.WriteString(helpTitleStyle.Render("tunesnip ✂"))
		sb.WriteString("\n")
		sb.WriteString(helpDescStyle.Render("Snip a range out of an audio file and send it off for matching."))
		sb.WriteString("\n")

		sb.WriteString(helpSectionStyle.Render("Usage:"))
		sb.WriteString("\n  ")
		sb.WriteString(fmt.Sprintf("%s [<command>] [flags]", ctx.Model.Name))
		sb.WriteString("\n")

		if cmds := ctx.Model.Node.Children; len(cmds) > 0 {
			sb.WriteString("\n")
			sb.WriteString(helpSectionStyle.Render("Commands:"))
			sb.WriteString("\n")
			for _, cmd := range cmds {
				if cmd.Hidden {
					continue
				}
				sb.WriteString("  ")
				sb.WriteString(helpCmdStyle.Render(cmd.Name))
				if cmd.Help != "" {
					sb.WriteString("  ")
					sb.WriteString(cmd.Help)
				}
				sb.WriteString("\n")
			}
		}

		sb.WriteString("\n")
		sb.WriteString(helpSectionStyle.Render("Flags:"))
		sb.WriteString("\n")
		for _, f := range ctx.Model.Node.Flags {
			flagStr := fmt.Sprintf("--%s", f.Name)
			if f.Short != 0 {
				flagStr = fmt.Sprintf("-%c, --%s", f.Short, f.Name)
			}
			sb.WriteString("  ")
			sb.WriteString(helpFlagStyle.Render(flagStr))
			if f.Help != "" {
				sb.WriteString("  ")
				sb.WriteString(f.Help)
			}
			sb.WriteString("\n")
		}

		sb.WriteString("\n")
		fmt.Fprint(ctx.Stdout, sb.String())
		return nil
	})
}
