package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/goran-ethernal/ChainScanner/internal/abi"
	"github.com/goran-ethernal/ChainScanner/internal/config"
	_ "github.com/goran-ethernal/ChainScanner/internal/kinds" // registers every record kind
	"github.com/goran-ethernal/ChainScanner/internal/registry"
	"github.com/goran-ethernal/ChainScanner/pkg/scanner"
	"github.com/spf13/cobra"
)

const (
	version = "1.0.0"
	banner  = `
╔═══════════════════════════════════════════╗
║          ChainScanner v%s              ║
║    Resumable Ronin Chain Record Scanner   ║
╚═══════════════════════════════════════════╝
`
)

// Process exit codes.
const (
	exitOK       = 0
	exitFailure  = 1
	exitDegraded = 2
)

var (
	configPath string
	startBlock string
	endBlock   string
	only       string
)

func main() {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errDegraded) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}

	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errDegraded):
		return exitDegraded
	default:
		return exitFailure
	}
}

var rootCmd = &cobra.Command{
	Use:   "scanner",
	Short: "ChainScanner - resumable block range scanner",
	Long: `ChainScanner walks a block range of a Ronin node, decodes token transfers, marketplace
sales, transactions and block statistics, and stores them idempotently. Every run resumes
after the last block it persisted.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runScan,
}

var runCmd = &cobra.Command{
	Use:           "run",
	Short:         "Scan the configured block ranges (default command)",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runScan,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List record kinds and known contracts",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, "Available record kinds:")
		for _, k := range scanner.ListRegistered() {
			fmt.Fprintf(out, "  - %s\n", k)
		}

		fmt.Fprintln(out, "\nContract registry:")
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  NAME\tADDRESS\tERC\tDECIMALS")
		for _, c := range registry.Ronin().All() {
			erc := string(c.ERC)
			if erc == "" {
				erc = "-"
			}
			fmt.Fprintf(w, "  %s\t%s\t%s\t%d\n", c.Name, c.Address.Hex(), erc, c.Decimals)
		}
		_ = w.Flush()
	},
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the configuration JSON schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := config.Schema()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(schema))
		return err
	},
}

var topicCmd = &cobra.Command{
	Use:     "topic <event signature>",
	Short:   "Print the canonical form and topic hash of an event signature",
	Example: `  scanner topic "Transfer(address indexed from, address indexed to, uint256 value)"`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sig, err := abi.ParseEventSignature(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Event:     %s\n", sig.String())
		fmt.Fprintf(out, "Canonical: %s\n", sig.Canonical())
		fmt.Fprintf(out, "Topic:     %s\n", sig.Topic.Hex())
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, runCmd} {
		c.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "path to configuration file")
		c.Flags().StringVar(&startBlock, "start-block", "", "first block for every scanner, decimal or 0x hex (0 = resume)")
		c.Flags().StringVar(&endBlock, "end-block", "", "last block for every scanner, decimal or 0x hex (0 = chain head)")
		c.Flags().StringVar(&only, "only", "", "comma separated scanner names to run")
	}

	rootCmd.AddCommand(runCmd, listCmd, schemaCmd, topicCmd)
}
