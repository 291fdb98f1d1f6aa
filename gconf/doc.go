/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension owns a single configuration object, stored under the "_c:"
prefix followed by the extension name. The object is loaded from the "conf"
section of the genesis file and can later be changed only by a patch message
signed by the configuration admin.

Every configuration is validated before it is written, so a successful Load
always returns a usable value.
*/
package gconf
