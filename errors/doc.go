/*
Package errors implements custom error interfaces for rentbook.

Reuse as many errors from this package as possible and define custom
package errors only when an extension needs a category of its own. Use
Register(code, description) to declare it, which panics if the code is
already taken.

Create errors with ErrXyz.New("...") or errors.Wrap(err, "...") at the
point of creation so that a stack trace is attached. Only the innermost
wrap records the stack.

	%s is just the error message
	%+v is the message with the stack trace of the creation point

ABCIInfo translates any error into the code and log returned to the ABCI
client, redacting errors that do not carry a code.
*/
package errors
