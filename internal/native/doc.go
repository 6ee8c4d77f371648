// Package native builds the native TypeScript binding pair as syntax
// trees: an interface file describing the service with idiomatic types
// (T | null instead of [] | [T], enums for tag-only variants) and a
// wrapper that implements it over the generated runtime description,
// converting values at the boundary.
package native
