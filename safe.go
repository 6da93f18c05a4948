package promise

// runHandler invokes a reaction handler and converts a panic into the error
// return, so a panicking handler rejects its promise the same way a handler
// returning an error does.
func runHandler(handler func() (interface{}, error)) (result interface{}, err error) {
	defer func() {
		if v := recover(); nil != v {
			result, err = nil, newPanicError(v)
		}
	}()

	return handler()
}

// runFinally invokes a finally handler and reports a recovered panic value,
// if any.
func runFinally(handler FinallyHandler) (v interface{}, panicked bool) {
	defer func() {
		if r := recover(); nil != r {
			v, panicked = r, true
		}
	}()

	handler()

	return nil, false
}
