/*
Package errors implements custom error interfaces for weave-treasury.

Reuse the root errors declared in this package whenever possible. An extension
that needs a category of its own (like x/treasury does for invariant
violations) must declare it using Register(code, description) during the
program startup.

For creating a new error instance use Errxxx.New/Errxxx.Newf or wrap an
existing error with Wrap/Wrapf. Code stands for the ABCI error code, which
allows to distinguish types of errors on the client side and act accordingly.

Stack traces are attached at the point of the first wrap. Once you have an
error, use fmt to get more context
	%s is just the error message
	%+v is the full stack trace
	%v appends a compressed [filename:line] where the error was created
*/
package errors
