package ui

import (
	"context"
	"fmt"
	"io"
)

// ForcedApprover approves every overwrite without asking. Used when the
// --force flag is provided.
type ForcedApprover struct {
	output io.Writer
}

// NewForcedApprover creates a ForcedApprover that notes each overwrite on output.
func NewForcedApprover(output io.Writer) *ForcedApprover {
	return &ForcedApprover{output: output}
}

// RequestApproval always approves unless ctx is already done.
func (a *ForcedApprover) RequestApproval(ctx context.Context, target string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	fmt.Fprintf(a.output, "Overwriting %s (--force)\n", target)
	return true, nil
}

// Verify ForcedApprover implements the Approver interface at compile time
var _ Approver = (*ForcedApprover)(nil)
