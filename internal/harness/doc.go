// Package harness runs binding generation scenarios.
//
// A scenario names a program document, generation options and a list
// of assertions over the analysis plan and the generated artifacts.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: recursive_list
//	description: "A self-referential option is forward declared"
//	program: ../programs/list.yaml
//	service: list
//	options:
//	  root_exports: true
//	assertions:
//	  - type: artifact_contains
//	    artifact: declarations_js
//	    text: "const List = IDL.Rec();"
//	  - type: artifact_order
//	    artifact: declarations_js
//	    texts: ["const Node", "List.fill("]
//	  - type: plan
//	    defs: [Node, List]
//	    recs: [List]
//
// A scenario may instead expect generation to fail:
//
//	expect_error: unresolved_reference
//
// # Assertion Types
//
//   - artifact_contains: The artifact includes the text
//   - artifact_absent: The artifact does not include the text
//   - artifact_order: The texts occur in the artifact in the given order
//   - artifact_count: The text occurs exactly count times
//   - plan: The Definition List and recursion markers equal the given ones
//
// Artifacts are named by their cache kind (declarations_js,
// declarations_typescript, declarations_ts, interface_ts, service_ts).
//
// # Isolation
//
// Each run stores its artifacts in a fresh in-memory cache and asserts
// against what the cache returns, so a scenario also checks that the
// cache round-trips every artifact unchanged.
package harness
