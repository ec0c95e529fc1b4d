package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// The session reads one line at a time and hands it back to the
// regular commands, so everything available on the command line is
// available at the prompt.
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		reader := bufio.NewScanner(os.Stdin)

		for {
			fmt.Print("pagelog> ")

			if !reader.Scan() {
				return
			}

			input := strings.TrimSpace(reader.Text())
			if input == "" {
				continue
			}

			fields := strings.Fields(input)
			if fields[0] == "repl" {
				fmt.Println("already in a session")
				continue
			}

			rootCmd.SetArgs(fields)

			// Errors are printed by cobra; the session continues.
			_ = rootCmd.ExecuteContext(context.Background())
		}
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
