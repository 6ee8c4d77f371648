// Package analysis computes emission plans over an IDL type environment.
//
// A plan is built in three passes, each a pure function of its inputs:
//
//  1. Chase: walk a root (actor, argument list or every declaration) and
//     produce the Definition List, dependencies first
//  2. InferRec: mark every name referenced before its own definition;
//     on a chased list these are exactly the cycle members that need a
//     forward declaration
//  3. OptimizeRecs: move the marker from a Func to the Service that
//     exposes it, so the service's method table stays concrete
//
// Groups reports the full strongly connected components for diagnostics.
package analysis
