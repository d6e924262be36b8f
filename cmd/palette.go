package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitlab.com/tinyland/lab/lc-wrapped/pkg/theme"
)

var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "Print the active palettes as TOML",
	Long: `Print the dark and light palettes, with any --theme-file overrides
applied, in the format accepted by --theme-file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		palettes := theme.DefaultPalettes()
		file := themeFile
		if file == "" {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			file = cfg.Theme.PaletteFile
		}
		if file != "" {
			p, err := theme.LoadPalettesFile(file)
			if err != nil {
				return err
			}
			palettes = p
		}
		out, err := theme.SavePalettesTOML(palettes)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), string(out))
		return err
	},
}

func init() {
	rootCmd.AddCommand(paletteCmd)
}
