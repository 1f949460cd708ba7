package base

// EvictionCallback is called when a real eviction removes an identifier
// from a policy's resident set (reason EvictionReasonCapacity), and by the
// GDSF-family policies when their admission gate rejects a newcomer (reason
// EvictionReasonRejected). It is never called for promotions or rotations
// within a policy's internal queues.
type EvictionCallback func(reason EvictionReason, key uint64)
