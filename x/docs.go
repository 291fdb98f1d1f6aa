/*
Package x contains the extensions of the treasury application.

Extensions implement common functionality (Handler, Decorator,
Ticker etc.) and are combined together to construct an application.

This package itself holds the authentication contract shared by all
extensions. Handlers receive an Authenticator in their constructor and
never depend on a particular signature scheme.
*/
package x
