package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/spincat/pixelpet/internal/audio"
)

var soundsCmd = &cobra.Command{
	Use:   "sounds",
	Short: "List configured sounds and action bindings",
	Long:  `Display all sound definitions and the abstract actions bound to them, including built-ins and any overrides from sounds.json and mappings.json.`,
	RunE:  runSounds,
}

func init() {
	rootCmd.AddCommand(soundsCmd)
}

func runSounds(cmd *cobra.Command, args []string) error {
	library := audio.NewLibrary(cfg.Dir())
	out := cmd.OutOrStdout()

	sounds := library.Sounds()
	names := make([]string, 0, len(sounds))
	maxLen := 0
	for name := range sounds {
		names = append(names, name)
		if len(name) > maxLen {
			maxLen = len(name)
		}
	}
	sort.Strings(names)

	fmt.Fprintln(out, "Sounds:")
	for _, name := range names {
		def := sounds[name]
		fmt.Fprintf(out, "  %-*s  [%s]  %s\n", maxLen, name, def.Category, def.Description)
	}

	mappings := library.Mappings()
	actions := make([]string, 0, len(mappings))
	maxLen = 0
	for action := range mappings {
		actions = append(actions, action)
		if len(action) > maxLen {
			maxLen = len(action)
		}
	}
	sort.Strings(actions)

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Action bindings:")
	for _, action := range actions {
		name := mappings[action]
		if _, ok := sounds[name]; !ok {
			fmt.Fprintf(out, "  %-*s  -> %s (missing!)\n", maxLen, action, name)
			continue
		}
		fmt.Fprintf(out, "  %-*s  -> %s\n", maxLen, action, name)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Override with sounds.json and mappings.json in %s\n", cfg.Dir())
	return nil
}
