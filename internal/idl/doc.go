// Package idl provides the type model consumed by the binding generator.
//
// A Program is a resolved type environment (name -> Type), an optional
// actor type and an optional syntax view carrying documentation. The
// package holds type definitions and structural predicates only; all
// other internal packages import idl, idl imports nothing internal.
//
// Key design constraints:
//   - Type is a closed sum type; every backend switches over its arms
//   - Env is immutable after construction and iterates in sorted order
//   - Recursion is expressed by Var references, never by pointers
package idl
