package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/phanxgames/sprout/internal/content"
)

const defaultShowWidth = 80

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a project or lab entry in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		md, err := recordMarkdown(e.store, args[0])
		if err != nil {
			return err
		}

		style, width := terminalStyle(os.Stdout)
		if s, _ := cmd.Flags().GetString("style"); s != "" {
			style = s
		}
		r, err := content.NewRenderer(style, width)
		if err != nil {
			return err
		}
		out, err := r.Render(md)
		if err != nil {
			return err
		}
		_, err = io.WriteString(cmd.OutOrStdout(), out)
		return err
	},
}

// recordMarkdown looks id up among projects first, then labs.
func recordMarkdown(store *content.Store, id string) (string, error) {
	if p, err := store.Project(id); err == nil {
		return content.ProjectMarkdown(p), nil
	} else if !errors.Is(err, content.ErrNotFound) {
		return "", err
	}
	l, err := store.Lab(id)
	if err != nil {
		return "", fmt.Errorf("show %q: %w", id, err)
	}
	return content.LabMarkdown(l), nil
}

// terminalStyle picks a glamour style and wrap width for f.
func terminalStyle(f *os.File) (string, int) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return "notty", defaultShowWidth
	}
	width := defaultShowWidth
	if w, _, err := term.GetSize(fd); err == nil && w > 0 {
		width = min(w, 120)
	}
	out := termenv.NewOutput(f)
	if out.Profile == termenv.Ascii {
		return "notty", width
	}
	if out.HasDarkBackground() {
		return "dark", width
	}
	return "light", width
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().String("style", "", "Glamour style (dark, light, notty); detected from the terminal by default")
}
