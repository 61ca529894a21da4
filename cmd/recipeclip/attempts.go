package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/recipeclip/recipeclip"
)

// Run executes the attempts command, listing logged extraction attempts
// newest first.
func (c *AttemptsCmd) Run(deps *Dependencies) error {
	filter := recipeclip.AttemptFilter{
		Limit: c.Limit,
	}
	if c.Site != "" {
		site := recipeclip.SiteType(c.Site)
		filter.SiteType = &site
	}
	if c.Failed {
		success := false
		filter.Success = &success
	}

	attempts, err := deps.Patterns.FindAttempts(deps.Ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to list attempts: %w", err)
	}

	if len(attempts) == 0 {
		fmt.Fprintln(deps.Stdout, "No attempts logged yet.")
		return nil
	}

	w := tabwriter.NewWriter(deps.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tSITE\tSTRATEGY\tOK\tCONF\tURL")
	for _, a := range attempts {
		ok := "yes"
		if !a.Success {
			ok = "no"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\t%s\n",
			a.CreatedAt.Format("2006-01-02 15:04:05"), a.SiteType,
			a.Strategy, ok, a.ConfidenceScore, a.URL)
	}
	return w.Flush()
}
