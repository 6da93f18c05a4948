package promise

import "sync/atomic"

// resolve is the single gateway through which a fulfillment candidate
// reaches the state machine. It settles directly for plain values, rejects
// on self-resolution, and adopts the eventual outcome of a Thenable,
// recursing for thenables that resolve to other thenables. Rejection
// reasons are typed error and are never adopted; they reach settle
// directly.
func (p *Promise) resolve(value interface{}) {
	if self, ok := value.(*Promise); ok && self == p {
		p.settle(StateRejected, nil, ErrChainingCycle)

		return
	}

	if thenable, ok := value.(Thenable); ok {
		p.adopt(thenable)

		return
	}

	p.settle(StateFulfilled, value, nil)
}

// adopt hands the promise's settlement to a thenable by invoking its Then
// with two one-shot callbacks. The first callback invoked wins the latch;
// a thenable that calls both callbacks, calls one twice, or calls back
// again after having been satisfied is silently ignored from the second
// call on. A panic raised by Then rejects the promise, unless the latch
// has already fired, in which case the thenable has committed to an
// outcome and the panic is discarded.
func (p *Promise) adopt(thenable Thenable) {
	var latch atomic.Bool

	onFulfilled := func(value interface{}) (interface{}, error) {
		if latch.CompareAndSwap(false, true) {
			p.resolve(value)
		}

		return nil, nil
	}

	onRejected := func(reason error) (interface{}, error) {
		if latch.CompareAndSwap(false, true) {
			p.settle(StateRejected, nil, reason)
		}

		return nil, nil
	}

	defer func() {
		if v := recover(); nil != v && latch.CompareAndSwap(false, true) {
			p.settle(StateRejected, nil, newPanicError(v))
		}
	}()

	thenable.Then(onFulfilled, onRejected)
}
