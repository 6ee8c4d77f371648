package javascript

import (
	"github.com/roach88/bindgen/internal/idl"
	"github.com/roach88/bindgen/internal/pretty"
	"github.com/roach88/bindgen/internal/typescript"
)

var annotated = signatures{
	idlService:  "export const idlService: IDL.ServiceClass = ",
	idlInitArgs: "export const idlInitArgs: IDL.Type[] = ",
	idlFactory:  "export const idlFactory: IDL.InterfaceFactory = ({ IDL }) => ",
	init:        "export const init: (args: { IDL: typeof IDL }) => IDL.Type[] = ({ IDL }) => ",
}

// CompileTypeScript renders the merged `.did.ts` artifact: the wire
// types of the declaration file followed by the runtime description with
// annotated factory and init signatures.
func CompileTypeScript(prog *idl.Program, opts Options) (string, error) {
	decls, err := typescript.Declarations(prog)
	if err != nil {
		return "", err
	}
	body, err := module(prog, opts, annotated)
	if err != nil {
		return "", err
	}
	return pretty.Concat(
		pretty.Text(importIDL), pretty.HardLine(),
		typescript.Imports(false),
		pretty.HardLine(),
		decls,
		pretty.HardLine(),
		body,
	).String(), nil
}
