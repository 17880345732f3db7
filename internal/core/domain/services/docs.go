// Package services provides the staffing policy: the pure decision layer that
// sits between use cases and the order aggregate.
//
// The policy answers two questions without ever touching storage:
//
//   - ActionsFor: which of the staffing actions is this actor currently
//     allowed to take on this order, and why not for the rest: the per-order
//     capability matrix the UI renders.
//   - Transition: may this event happen now, and if so, apply it to the
//     aggregate.
//
// Facts the policy cannot derive from a single order (whether a worker holds
// an active assignment somewhere else, how many applications they have in
// flight) are handed in through GuardContext by the caller. That keeps every
// function here synchronous, deterministic, and trivially testable, while the
// use case layer stays responsible for fetching the context and persisting
// the outcome.
//
// Expected business failures are expressed as BlockReason values, not errors
// wrapped in strings: each reason is a typed value carrying the data the
// caller needs (the conflicting order for a busy worker, the selected-versus-
// required counts for an unmet quorum) plus a short displayable message.
package services
