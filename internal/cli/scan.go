package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go.pagelog/internal/storage"
)

var scanStrict bool

var scanCmd = &cobra.Command{
	Use:   "scan <file>",
	Short: "Print every record in a log, oldest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if _, err := os.Stat(path); err != nil {
			return err
		}

		opts := &storage.Options{Preserve: true, Strict: scanStrict || cfg.Strict, Logger: log}
		lg, err := storage.Open(path, 0, storage.RawCodec{}, opts)
		if err != nil {
			return err
		}
		defer lg.Close()

		count := 0
		for rec, err := range lg.Scan() {
			if err != nil {
				return err
			}
			fmt.Printf("%d: %s\n", count, rec)
			count++
		}

		fmt.Printf("%d records", count)
		if skipped := lg.Skipped(); skipped > 0 {
			fmt.Printf(", %d skipped", skipped)
		}
		fmt.Println()
		return nil
	},
}

func init() {
	scanCmd.Flags().BoolVar(&scanStrict, "strict", false, "fail on truncated or undecodable data")
	rootCmd.AddCommand(scanCmd)
}
