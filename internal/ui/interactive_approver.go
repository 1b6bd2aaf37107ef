package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// InteractiveApprover asks on the console before an existing file is replaced.
type InteractiveApprover struct {
	input  io.Reader
	output io.Writer
}

// NewInteractiveApprover creates an InteractiveApprover reading answers from
// input and writing prompts to output.
func NewInteractiveApprover(input io.Reader, output io.Writer) *InteractiveApprover {
	return &InteractiveApprover{input: input, output: output}
}

// RequestApproval prompts "Overwrite? [y/N]". Only y or yes approves.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, target string) (bool, error) {
	fmt.Fprintf(a.output, "%s already exists. Overwrite? [y/N]: ", target)

	// Read user input with context cancellation support
	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		reader := bufio.NewReader(a.input)
		input, err := reader.ReadString('\n')
		if err != nil && (err != io.EOF || input == "") {
			errChan <- err
			return
		}
		inputChan <- strings.TrimSpace(input)
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errChan:
		if err == io.EOF {
			return false, nil
		}
		return false, fmt.Errorf("failed to read input: %w", err)
	case input := <-inputChan:
		switch strings.ToLower(input) {
		case "y", "yes":
			return true, nil
		}
		fmt.Fprintln(a.output, "Cancelled.")
		return false, nil
	}
}

// Verify InteractiveApprover implements the Approver interface at compile time
var _ Approver = (*InteractiveApprover)(nil)
