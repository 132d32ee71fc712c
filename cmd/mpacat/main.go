// Command mpacat decodes MPEG audio (MP1/MP2/MP3) to WAV or raw PCM.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mpacat <input> [output.wav]",
	Short: "Decode MPEG audio to WAV",
	Long:  "Decode an MPEG-1/2/2.5 audio file (Layer I, II or III) to a WAV file, or to raw PCM on stdout.",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		output := ""
		if len(args) == 2 {
			output = args[1]
		}

		return decodeFile(args[0], output)
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger()
	},
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

var (
	quiet   bool
	verbose bool
	raw     bool
	gains   []float32
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress command output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Increase command output")
	rootCmd.Flags().BoolVar(&raw, "raw", false, "Write interleaved 16-bit PCM to stdout")
	rootCmd.Flags().Float32SliceVar(&gains, "eq", nil, "32 linear subband gains")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
