package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go.pagelog/internal/storage"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <file>",
	Short: "Check that every page and record reads back cleanly",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if _, err := os.Stat(path); err != nil {
			return err
		}

		lg, err := storage.Open(path, 0, storage.RawCodec{}, &storage.Options{Preserve: true, Strict: true, Logger: log})
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		defer lg.Close()

		records, digest, err := summarize(lg)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		fmt.Printf("%s: OK (%d records, sha256 %s)\n", path, records, digest)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
