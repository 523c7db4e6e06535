// Package service defines contracts for external capabilities the
// domain relies on but does not implement.
package service

import "context"

// TriggerInvoker fires a zone-transition webhook. The contract is at
// most one attempt per transition: implementations must never block the
// caller, never retry, and swallow all failures.
type TriggerInvoker interface {
	Invoke(ctx context.Context, uri string)
}
