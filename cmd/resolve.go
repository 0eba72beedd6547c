// File: cmd/resolve.go
package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/wallet-e2e/internal/observability"
	"github.com/xkilldash9x/wallet-e2e/pkg/browser/selector"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// resolution is one line of resolve output.
type resolution struct {
	Selector string `json:"selector"`
	selector.Query
	Locator string `json:"locator"`
}

func newResolveCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "resolve [selectors...]",
		Short: "Show how selector strings resolve to locators",
		Long: `Resolve prints the rule each selector string matches and the locator it builds,
without starting a browser. With no arguments, selectors are read from stdin, one per line.`,
		Example: `  wallet-e2e resolve "role:button, Connect Wallet" "button[data-testid='approve']"
  wallet-e2e resolve --format json < selectors.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "json" {
				return fmt.Errorf("unsupported format %q (use text or json)", format)
			}

			selectors := args
			if len(selectors) == 0 {
				var err error
				if selectors, err = readSelectors(cmd.InOrStdin()); err != nil {
					return err
				}
			}
			if len(selectors) == 0 {
				return fmt.Errorf("no selectors given")
			}

			logger := observability.GetLogger().Named("selector")
			results := make([]resolution, 0, len(selectors))
			for _, s := range selectors {
				q := selector.Parse(s)
				logger.Debug("Resolved selector.",
					zap.String("selector", s),
					zap.String("tier", string(q.Tier)),
					zap.String("strategy", string(q.Strategy)))
				results = append(results, resolution{Selector: s, Query: q, Locator: q.String()})
			}

			if format == "json" {
				return writeJSON(cmd.OutOrStdout(), results)
			}
			return writeText(cmd.OutOrStdout(), results)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text or json")
	return cmd
}

func readSelectors(r io.Reader) ([]string, error) {
	var selectors []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			selectors = append(selectors, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading selectors: %w", err)
	}
	return selectors, nil
}

func writeJSON(w io.Writer, results []resolution) error {
	out, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding resolutions: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func writeText(w io.Writer, results []resolution) error {
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if _, err := fmt.Fprintf(w, "%q\n  tier:     %s\n  strategy: %s\n  locator:  %s\n",
			r.Selector, r.Tier, r.Strategy, r.Locator); err != nil {
			return err
		}
	}
	return nil
}
