package cli

import (
	"bufio"
	"fmt"
	"os"
)

// StartCmd times a single session against a project without entering the
// TUI: backup, stamp start, block on one line of input, stamp stop, append.
type StartCmd struct {
	Name string `arg:"" help:"Project to time."`
}

func (c *StartCmd) Run(ctx *Context) error {
	session, err := ctx.Tracker.StartSession(c.Name)
	if err != nil {
		return err
	}

	fmt.Printf("Timing %s — press Enter to stop.\n", session.Project)

	// The open session suspends everything until stop. No timeout.
	reader := bufio.NewReader(os.Stdin)
	if _, err := reader.ReadString('\n'); err != nil {
		return fmt.Errorf("failed to read stop signal: %w", err)
	}

	rec, err := session.Stop()
	if err != nil {
		return err
	}

	fmt.Printf("✓ Logged %s for %s.\n", rec.OverallTime, rec.ProjectName)
	return nil
}
