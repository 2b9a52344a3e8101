// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package automatically loads a .env file on first use and uses the
// caarlos0/env library for parsing environment variables into struct fields.
//
// Basic usage:
//
//	import "github.com/openjwt/jwtvalidator/core/config"
//
//	opts, err := config.Load[config.RetryOptions]()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	limits := config.MustLoad[config.ParserLimits]()
//
// # Caching Behavior
//
// Each configuration type is loaded only once per application lifetime:
//
//	a, _ := config.Load[config.RetryOptions]()
//	b, _ := config.Load[config.RetryOptions]() // returns the cached value, a == b
//
// Different types are cached independently, keyed by reflect.Type.
//
// This package is entirely optional: core/retry, core/parser, and
// core/jwks all take their configuration as plain Go structs built
// however the caller likes. RetryOptions and ParserLimits are the
// env-tag-annotated shapes an external collaborator can use to source
// that configuration from the process environment instead, per spec.md
// §6's "Configuration surface consumed from external collaborators".
package config
