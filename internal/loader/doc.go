// Package loader reads type environment documents into idl.Program
// values.
//
// Documents are YAML (.yaml, .yml) or CUE (.cue, and .json, which CUE
// accepts as a subset). Both decode through the same node walk, so
// the document shape is identical across formats:
//
//	types:
//	  List: {opt: Node}
//	  Node:
//	    record:
//	      - {name: head, type: nat}
//	      - {name: tail, type: List}
//	actor:
//	  service:
//	    - name: greet
//	      type: {func: {args: [text], rets: [text], modes: [query]}}
//	docs:
//	  Node: {lines: ["A list cell."], members: {head: ["The value."]}}
//	actor_docs:
//	  lines: ["The greeter."]
//
// A scalar type is a primitive keyword or a reference by name; use
// {ref: name} to refer to a declaration that shadows a keyword.
package loader
