package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/var1d/folio/internal/presentation/tui"
	"github.com/var1d/folio/pkg/domain"
	"github.com/var1d/folio/pkg/theme"
)

var themeCmd = &cobra.Command{
	Use:       "theme [dark|neon]",
	Short:     "Print the presentation variables of a display mode",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"dark", "neon"},
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := domain.ThemeDark
		if len(args) == 1 {
			parsed, err := domain.ParseThemeMode(args[0])
			if err != nil {
				return err
			}
			mode = parsed
		}

		palette := theme.DefaultPalettes()[mode]
		out := cmd.OutOrStdout()

		if css, _ := cmd.Flags().GetBool("css"); css {
			fmt.Fprint(out, palette.CSS())
			return nil
		}

		if out == os.Stdout {
			tui.PrintBanner(out, palette)
		}
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, v := range palette.Vars {
			fmt.Fprintf(w, "%s\t%s\n", v.Name, v.Value)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
	themeCmd.Flags().Bool("css", false, "Print a CSS :root rule instead of a table")
}
