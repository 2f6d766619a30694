package cli

import (
	"fmt"
	"strings"

	"github.com/tallyhq/tally/internal/utils"
)

// ListCmd prints the active projects with their cumulative totals and the
// completed archive.
type ListCmd struct{}

func (c *ListCmd) Run(ctx *Context) error {
	summary, err := ctx.Tracker.Summary()
	if err != nil {
		return err
	}

	fmt.Println("Active projects")
	fmt.Println(strings.Repeat("-", 50))
	if len(summary.Names) == 0 {
		fmt.Println("(none)")
	}
	for i, name := range summary.Names {
		fmt.Printf("%3d. %-30s %s\n", i+1, name, utils.FormatHMS(summary.Totals[name]))
	}

	completed, err := ctx.Tracker.Completed()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Completed")
	fmt.Println(strings.Repeat("-", 50))
	if len(completed) == 0 {
		fmt.Println("(none)")
	}
	for _, rec := range completed {
		fmt.Printf("     %-30s %s  %s\n", rec.ProjectName, rec.TotalTime, rec.CompletedDate)
	}

	return nil
}
