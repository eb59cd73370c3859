package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spincat/pixelpet/internal/audio"
)

var renderOut string

var renderCmd = &cobra.Command{
	Use:   "render <sound>",
	Short: "Render a sound to a WAV file",
	Long:  `Synthesize a named sound from its sfxr settings string and write it as a 44.1kHz mono 16-bit WAV file.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "output file (default <sound>.wav)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) (retErr error) {
	name := args[0]

	library := audio.NewLibrary(cfg.Dir())
	def, ok := library.Sound(name)
	if !ok {
		return fmt.Errorf("unknown sound %q, try the sounds command", name)
	}

	params := audio.ParseSettings(def.Settings)
	if !params.WaveType.Valid() {
		return fmt.Errorf("sound %q has unsupported wave type %d", name, int(params.WaveType))
	}
	samples := audio.Render(params)

	out := renderOut
	if out == "" {
		out = name + ".wav"
	}

	f, err := os.Create(out) //nolint:gosec // G304: user-chosen output path
	if err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && retErr == nil {
			retErr = fmt.Errorf("closing %s: %w", out, closeErr)
		}
	}()

	if err := audio.WriteWAV(f, samples); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d samples, %.2fs)\n",
		out, len(samples), float64(len(samples))/audio.SampleRate)
	return nil
}
