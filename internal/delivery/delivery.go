// Package delivery defines the contract every server-ish component of
// the daemon implements, so main can start them uniformly.
package delivery

import "context"

// Delivery is a long-running component started by main. Serve blocks
// until the component stops; shutdown happens through fx lifecycle
// hooks.
type Delivery interface {
	Serve(ctx context.Context) error
}
