package ui

import "context"

// Approver confirms replacing an existing file.
type Approver interface {
	// RequestApproval returns true if target may be overwritten.
	RequestApproval(ctx context.Context, target string) (bool, error)
}
