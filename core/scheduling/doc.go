// Package scheduling implements the docking scheduler core: request
// validation, interval conflict detection, the deterministic port
// assignment policy, the in-memory schedule store and the engine that
// composes them. All schedule mutations are serialized by the engine so the
// no-overlap invariant holds under concurrent submissions.
package scheduling
