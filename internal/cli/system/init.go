package system

import (
	"fmt"

	"github.com/tallyhq/tally/internal/cli"
)

// InitCmd creates the store file and its directory. Running any command
// against a missing store also works (it reads as empty), so init is a
// convenience for making the location explicit up front.
type InitCmd struct{}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}

	fmt.Printf("✓ Store initialized at %s\n", ctx.Store.GetStorePath())
	return nil
}
