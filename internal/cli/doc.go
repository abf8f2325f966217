// Package cli defines the Cobra command tree for allocctl. Commands talk to
// the allocation API through internal/client and only handle flag parsing,
// file I/O and output formatting.
package cli
