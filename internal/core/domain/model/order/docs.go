// Package order contains the order aggregate of the staffing domain together
// with its status model and the two sub-entities joined onto it: applications
// (a worker asking to be considered) and assignments (confirmed work, created
// only when the order starts).
//
// The aggregate owns every mutation of its own rows. Status edges are enforced
// by the Status value object, and each transition method re-validates its own
// local preconditions, so an order can never be driven into a state the model
// does not define, regardless of what the calling layer got wrong. Guards
// that need facts outside a single order (the global exclusivity invariant,
// the per-worker application limit, roles) live in the services package; this
// package stays self-contained.
package order
