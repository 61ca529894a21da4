package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/recipeclip/recipeclip"
)

// Run executes the patterns command, listing learned extraction patterns
// ordered by success rate.
func (c *PatternsCmd) Run(deps *Dependencies) error {
	filter := recipeclip.PatternFilter{
		MinAttempts: c.MinAttempts,
		Limit:       c.Limit,
	}
	if c.Site != "" {
		site := recipeclip.SiteType(c.Site)
		filter.SiteType = &site
	}

	patterns, err := deps.Patterns.FindPatterns(deps.Ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to list patterns: %w", err)
	}

	if len(patterns) == 0 {
		fmt.Fprintln(deps.Stdout, "No patterns recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(deps.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SITE\tPATTERN\tSTRATEGY\tVERSION\tSUCCESS\tATTEMPTS\tRATE")
	for _, p := range patterns {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%.2f\n",
			p.SiteType, p.HTMLPattern, p.Strategy, p.ParserVersion,
			p.SuccessCount, p.AttemptCount, p.SuccessRate)
	}
	return w.Flush()
}
