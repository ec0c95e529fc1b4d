package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go.pagelog/internal/storage"
)

var appendCmd = &cobra.Command{
	Use:   "append <file> <payload>...",
	Short: "Append records to a log",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		// A missing file is created with the configured slot size; an
		// existing one keeps the size recorded in its header.
		slotSize := 0
		if _, err := os.Stat(path); os.IsNotExist(err) {
			slotSize = cfg.SlotSize
		}

		lg, err := storage.Open(path, slotSize, storage.RawCodec{}, &storage.Options{Preserve: true, Logger: log})
		if err != nil {
			return err
		}
		defer lg.Close()

		for _, payload := range args[1:] {
			if err := lg.Append([]byte(payload)); err != nil {
				return fmt.Errorf("append %q: %w", payload, err)
			}
		}
		if err := lg.Sync(); err != nil {
			return err
		}

		fmt.Printf("Appended %d records to %s\n", len(args)-1, path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(appendCmd)
}
