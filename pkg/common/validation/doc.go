// Package validation provides common validation utilities for configuration
// parameters across the boundpool packages.
//
// Every function returns a *errors.ValidationError naming the module and
// field, so constructors and config loaders report problems uniformly.
package validation
