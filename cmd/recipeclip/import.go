package main

import (
	"context"
	"encoding/json"
	"fmt"
)

// Run executes the import command: each URL goes through the full adaptive
// extraction pipeline and the result is printed as JSON.
func (c *ImportCmd) Run(deps *Dependencies) error {
	var failures int
	for _, pageURL := range c.URLs {
		ctx, cancel := context.WithTimeout(deps.Ctx, c.Timeout)
		result, err := deps.Selector.Execute(ctx, pageURL)
		cancel()
		if err != nil {
			failures++
			fmt.Fprintf(deps.Stderr, "%s: %v\n", pageURL, err)
			continue
		}

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		fmt.Fprintln(deps.Stdout, string(out))

		if !result.Success {
			failures++
		}
	}

	deps.Selector.Flush()

	if failures > 0 {
		return fmt.Errorf("%d of %d URLs failed", failures, len(c.URLs))
	}
	return nil
}
