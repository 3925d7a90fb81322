// Package pkgconfig provides a small abstraction for reading configuration values.
//
// The application expects config values to come from a concrete implementation
// (for example Viper). Business code should depend on the Config interface so it
// stays easy to test and does not care where values come from.
//
// Compiled-in defaults are registered up front, so a missing config file is not
// an error; a present but unreadable one is.
package pkgconfig
