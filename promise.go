package promise

import "sync"

// Promise is a deferred value: it starts pending and settles exactly once,
// either fulfilled with a value or rejected with a reason. Derived promises
// created by Then, Catch and Finally receive the outcome through reactions
// that run on the promise's Scheduler, never on the stack of the call that
// settled it.
//
// The zero value is not usable; promises are created by NewPromise, Resolve,
// Reject, NewDeferred, or by chaining.
type Promise struct {
	mutex     sync.Mutex
	state     State
	value     interface{}
	err       error
	children  []*Promise
	scheduler Scheduler

	// handlers attached by the parent's Then/Catch/Finally call that created
	// this promise; each runs at most once, against the matching settlement.
	onFulfilled FulfillHandler
	onRejected  RejectHandler
	onFinalized FinallyHandler
}

// NewPromise runs executor synchronously with the two settlement
// capabilities of a fresh pending promise. The first capability invoked
// wins; later invocations are no-ops. A panicking executor rejects the
// promise with a *PanicError.
//
// NewPromise panics if executor is nil.
func NewPromise(executor func(resolve Resolver, reject Rejector)) *Promise {
	return NewPromiseOn(defaultScheduler, executor)
}

// NewPromiseOn is NewPromise with an explicit Scheduler for the promise and
// every promise derived from it.
func NewPromiseOn(scheduler Scheduler, executor func(resolve Resolver, reject Rejector)) *Promise {
	if nil == executor {
		panic(nilExecutorPanicMsg)
	}

	p := newPromise(scheduler)
	p.runExecutor(executor)

	return p
}

// Resolve returns a promise resolved with value. For a plain value the
// promise is already fulfilled when Resolve returns; a Thenable value is
// adopted, so the promise settles with the thenable's eventual outcome.
func Resolve(value interface{}) *Promise {
	p := newPromise(nil)
	p.resolve(value)

	return p
}

// Reject returns a promise already rejected with reason.
func Reject(reason error) *Promise {
	p := newPromise(nil)
	p.settle(StateRejected, nil, reason)

	return p
}

// Deferred pairs a promise with externally held settlement capabilities,
// for producers that settle a promise outside of an executor closure.
type Deferred struct {
	Promise *Promise
	Resolve Resolver
	Reject  Rejector
}

func NewDeferred() Deferred {
	return NewDeferredOn(defaultScheduler)
}

func NewDeferredOn(scheduler Scheduler) Deferred {
	p := newPromise(scheduler)

	return Deferred{
		Promise: p,
		Resolve: p.fulfillCapability,
		Reject:  p.rejectCapability,
	}
}

func newPromise(scheduler Scheduler) *Promise {
	if nil == scheduler {
		scheduler = defaultScheduler
	}

	return &Promise{
		state:     StatePending,
		scheduler: scheduler,
	}
}

func (p *Promise) runExecutor(executor func(resolve Resolver, reject Rejector)) {
	defer func() {
		if v := recover(); nil != v {
			p.settle(StateRejected, nil, newPanicError(v))
		}
	}()

	executor(p.fulfillCapability, p.rejectCapability)
}

func (p *Promise) fulfillCapability(value interface{}) {
	p.process(StateFulfilled, value, nil)
}

func (p *Promise) rejectCapability(reason error) {
	p.process(StateRejected, nil, reason)
}

// Then returns a new promise that settles from this promise's outcome,
// transformed by whichever handler matches it. Both handlers are optional:
// a missing handler propagates the outcome to the new promise unchanged. A
// handler that returns a nil error fulfills the new promise with its result,
// even when the handler ran because this promise rejected.
//
// Then may be called any number of times, on a promise in any state; each
// call produces an independent promise that receives this promise's outcome
// exactly once.
func (p *Promise) Then(onFulfilled FulfillHandler, onRejected RejectHandler) *Promise {
	return p.registerHandlers(onFulfilled, onRejected, nil)
}

// Catch is Then(nil, handler).
func (p *Promise) Catch(handler RejectHandler) *Promise {
	return p.registerHandlers(nil, handler, nil)
}

// Finally returns a new promise that receives this promise's outcome
// unchanged, after handler has run. A panicking handler rejects the new
// promise with a *PanicError instead.
func (p *Promise) Finally(handler FinallyHandler) *Promise {
	return p.registerHandlers(nil, nil, handler)
}

// State returns the promise's current state. A non-pending state is final.
func (p *Promise) State() State {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return p.state
}

func (p *Promise) registerHandlers(fulfillHandler FulfillHandler, rejectHandler RejectHandler, finallyHandler FinallyHandler) *Promise {
	child := &Promise{
		state:       StatePending,
		scheduler:   p.scheduler,
		onFulfilled: fulfillHandler,
		onRejected:  rejectHandler,
		onFinalized: finallyHandler,
	}

	p.mutex.Lock()
	if StatePending == p.state {
		p.children = append(p.children, child)
		p.mutex.Unlock()

		return child
	}

	state, value, err := p.state, p.value, p.err
	p.mutex.Unlock()

	child.process(state, value, err)

	return child
}

// settle performs the one-time transition out of StatePending. Every later
// call, whatever its arguments, is a no-op. On a real transition the
// registered children are notified in registration order, after the mutex
// has been released, so a child reaction can safely call back into p.
func (p *Promise) settle(state State, value interface{}, err error) {
	p.mutex.Lock()
	if StatePending != p.state {
		p.mutex.Unlock()

		return
	}

	p.state = state
	p.value = value
	p.err = err

	children := p.children
	p.children = nil
	p.mutex.Unlock()

	for _, child := range children {
		child.process(state, value, err)
	}
}

// process receives a settlement outcome, either from this promise's own
// settlement capabilities or from the parent's broadcast. When a handler
// matching the outcome is attached, it is scheduled as a reaction;
// otherwise the outcome flows through unchanged.
func (p *Promise) process(state State, value interface{}, err error) {
	switch state {
	case StateFulfilled:
		if nil == p.onFulfilled && nil == p.onFinalized {
			p.resolve(value)

			return
		}

	case StateRejected:
		if nil == p.onRejected && nil == p.onFinalized {
			p.settle(StateRejected, nil, err)

			return
		}
	}

	p.scheduler.Schedule(func() {
		p.react(state, value, err)
	})
}

// react runs on the scheduler queue, after the call that settled the parent
// has unwound. process guarantees a handler matching state is attached.
func (p *Promise) react(state State, value interface{}, err error) {
	if nil != p.onFinalized {
		if v, panicked := runFinally(p.onFinalized); panicked {
			p.settle(StateRejected, nil, newPanicError(v))

			return
		}

		// a finally handler cannot change the outcome
		if StateFulfilled == state {
			p.resolve(value)
		} else {
			p.settle(StateRejected, nil, err)
		}

		return
	}

	switch state {
	case StateFulfilled:
		result, handlerErr := runHandler(func() (interface{}, error) {
			return p.onFulfilled(value)
		})
		if nil != handlerErr {
			p.settle(StateRejected, nil, handlerErr)

			return
		}

		p.resolve(result)

	case StateRejected:
		result, handlerErr := runHandler(func() (interface{}, error) {
			return p.onRejected(err)
		})
		if nil != handlerErr {
			p.settle(StateRejected, nil, handlerErr)

			return
		}

		// handler success recovers the rejection into a fulfillment
		p.resolve(result)
	}
}
