package promise

type State string

const (
	StatePending   = State("pending")
	StateFulfilled = State("fulfilled")
	StateRejected  = State("rejected")
)

// Resolver fulfills a promise with a value. If the value is a Thenable, the
// promise adopts its eventual outcome instead of fulfilling with it directly.
type Resolver func(value interface{})

// Rejector rejects a promise with a reason.
type Rejector func(reason error)

// FulfillHandler transforms the fulfillment value of a promise. Returning a
// non-nil error rejects the derived promise; returning normally fulfills it
// with result, even when result is nil.
type FulfillHandler func(value interface{}) (result interface{}, err error)

// RejectHandler transforms the rejection reason of a promise. Returning a
// non-nil error rejects the derived promise; returning normally recovers the
// rejection and fulfills the derived promise with result.
type RejectHandler func(reason error) (result interface{}, err error)

// FinallyHandler runs once the promise settles, regardless of its outcome.
type FinallyHandler func()

// Thenable is the interoperability surface with foreign deferred-value
// implementations: any value exposing a Then method with this signature is
// adopted by the resolution procedure, regardless of its concrete origin.
//
// An implementation must call at most one of the two handlers, at most once;
// later calls are ignored. The returned *Promise is not used during
// adoption, so foreign implementations may return nil.
type Thenable interface {
	Then(onFulfilled FulfillHandler, onRejected RejectHandler) *Promise
}

type Promiser interface {
	Thenable
	Catch(handler RejectHandler) *Promise
	Finally(handler FinallyHandler) *Promise
	State() State
}
