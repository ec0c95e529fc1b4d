package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go.pagelog/internal/storage"
)

var createSlotSize int

var createCmd = &cobra.Command{
	Use:   "create <file>",
	Short: "Create a new record log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}

		slotSize := createSlotSize
		if slotSize == 0 {
			slotSize = cfg.SlotSize
		}

		lg, err := storage.Open(path, slotSize, storage.RawCodec{}, &storage.Options{Logger: log})
		if err != nil {
			return err
		}
		if err := lg.Close(); err != nil {
			return err
		}

		fmt.Printf("Created %s with %d byte slots\n", path, slotSize)
		return nil
	},
}

func init() {
	createCmd.Flags().IntVar(&createSlotSize, "slot-size", 0, "slot size in bytes (default from config)")
	rootCmd.AddCommand(createCmd)
}
