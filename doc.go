// Package promise implements the deferred-value model standardized by the
// Promises/A+ protocol: a Promise starts pending and settles exactly once,
// fulfilled with a value or rejected with a reason, and hands its outcome to
// any number of derived promises created by chaining.
//
// Reactions attached through Then, Catch and Finally never run on the stack
// of the call that settled the promise; they are deferred onto the promise's
// Scheduler and run in FIFO order relative to each other. A handler's error
// return or panic rejects only its own derived promise, it can never reach
// the producer that settled the parent.
//
// Resolving a promise with any value implementing the Thenable interface
// adopts that value's eventual outcome instead of fulfilling with the value
// itself, however deeply such thenables nest. This is the interoperability
// surface with foreign deferred-value implementations: the adopting promise
// does not care about the thenable's concrete type, and a misbehaving
// thenable (calling both callbacks, calling twice, panicking after having
// called back) cannot settle the adopting promise more than once. A promise
// resolved with itself rejects with ErrChainingCycle rather than deadlock.
//
// Combinators (joining, racing), cancellation and timeouts are out of scope;
// they can be built on top of the public surface.
package promise
