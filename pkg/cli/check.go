package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/getcalcd/calcd/pkg/check"
	"github.com/getcalcd/calcd/pkg/client"
)

// checkFlagVals is the package-level instance bound to cobra flags.
var checkFlagVals checkFlags

// checkFlags holds all parsed command-line flags for the check command.
type checkFlags struct {
	baseURL  string
	timeout  time.Duration
	wait     time.Duration
	failFast bool
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify a running calcd server against its HTTP contract",
	Long: `Run the fixed table of contract cases against a running server and
report pass/fail per case. By default every case is evaluated independently,
so one failure never hides the rest; --fail-fast halts at the first failure.

With --wait, the command polls the server until it answers before running
the checks — use this instead of sleeping after starting the server.`,
	Example: `  # Check a local server
  calcd check

  # Start a server in the background, then check it without a fixed sleep
  calcd serve &
  calcd check --wait 10s

  # Check a remote server, stopping at the first failure
  calcd check --base-url http://staging:8000 --fail-fast`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(&checkFlagVals)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	f := &checkFlagVals
	checkCmd.Flags().StringVar(&f.baseURL, "base-url", "http://localhost:8000", "Base URL of the server to check")
	checkCmd.Flags().DurationVar(&f.timeout, "timeout", 10*time.Second, "Per-request HTTP timeout")
	checkCmd.Flags().DurationVar(&f.wait, "wait", 0, "Readiness budget: poll the server this long before checking (0 = no wait)")
	checkCmd.Flags().BoolVar(&f.failFast, "fail-fast", false, "Halt at the first failing case")
}

// runCheck is the core check logic called by the cobra command.
func runCheck(f *checkFlags) error {
	ctx := context.Background()
	c := client.New(f.baseURL, client.WithTimeout(f.timeout))

	if f.wait > 0 {
		if err := c.WaitForReady(ctx, f.wait); err != nil {
			return err
		}
	}

	var opts []check.RunnerOption
	if f.failFast {
		opts = append(opts, check.WithFailFast())
	}

	cases := check.DefaultCases()
	results, err := check.NewRunner(c, opts...).Run(ctx, cases)

	failed := 0
	for _, res := range results {
		if res.Passed() {
			fmt.Printf("ok    %s\n", res.Case.Description)
		} else {
			failed++
			fmt.Printf("FAIL  %s: %s\n", res.Case.Description, res.Failure)
		}
	}
	if err != nil {
		return err
	}

	fmt.Printf("\n%d passed, %d failed\n", len(results)-failed, failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d checks failed", failed, len(results))
	}
	return nil
}
