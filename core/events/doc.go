// Package events defines the scheduling related events emitted on the event bus.
//
// Available event types:
//   - RequestEvent: new mission request entering the engine
//   - DecisionEvent: accept/reject outcome of one scheduling attempt
//   - ResetEvent: operator-triggered schedule wipe
package events
