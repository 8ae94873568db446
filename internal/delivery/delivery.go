// Package delivery defines the contract every transport server implements.
package delivery

import "context"

// Delivery is a serving surface (HTTP today). Servers block in Serve until
// shutdown and release resources through fx lifecycle hooks.
type Delivery interface {
	Serve(ctx context.Context) error
}
