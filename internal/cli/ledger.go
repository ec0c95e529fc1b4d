package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"go.pagelog/internal/engine"
	"go.pagelog/internal/ledger"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Work with the configured ledger accounts",
}

var ledgerPostCmd = &cobra.Command{
	Use:   "post <account-id> <value> <c|d> [description]",
	Short: "Post a credit or debit to an account",
	Args:  cobra.RangeArgs(3, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid account id %q", args[0])
		}
		value, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil || value < 0 {
			return fmt.Errorf("invalid value %q", args[1])
		}
		kind := ledger.Kind(args[2])
		if kind != ledger.Credit && kind != ledger.Debit {
			return fmt.Errorf("kind must be %q or %q", ledger.Credit, ledger.Debit)
		}
		desc := ""
		if len(args) == 4 {
			desc = args[3]
		}

		def, ok := cfg.FindAccount(id)
		if !ok {
			return fmt.Errorf("no account %d in config", id)
		}
		acct, err := engine.OpenAccount(def, cfg)
		if err != nil {
			return err
		}
		defer acct.Close()

		balance, err := acct.Post(ledger.Transaction{Value: value, Kind: kind, Description: desc})
		if err != nil {
			return err
		}
		if err := acct.Sync(); err != nil {
			return err
		}

		fmt.Printf("account %d: balance %d (limit %d)\n", id, balance, acct.Limit())
		return nil
	},
}

var ledgerShowCmd = &cobra.Command{
	Use:   "show <account-id>",
	Short: "Show an account statement",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid account id %q", args[0])
		}

		def, ok := cfg.FindAccount(id)
		if !ok {
			return fmt.Errorf("no account %d in config", id)
		}
		acct, err := engine.OpenAccount(def, cfg)
		if err != nil {
			return err
		}
		defer acct.Close()

		out, err := json.MarshalIndent(acct.Statement(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

var ledgerAccountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List the configured accounts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, a := range cfg.Accounts {
			fmt.Printf("%d\tlimit %d\t%s\n", a.ID, a.Limit, filepath.Join(cfg.DataDir, a.LogFile()))
		}
		return nil
	},
}

func init() {
	ledgerCmd.AddCommand(ledgerPostCmd)
	ledgerCmd.AddCommand(ledgerShowCmd)
	ledgerCmd.AddCommand(ledgerAccountsCmd)
	rootCmd.AddCommand(ledgerCmd)
}
