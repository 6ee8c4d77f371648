// Package bindgen turns a resolved IDL program into its binding
// artifacts and lays them out on disk.
//
// Generate is pure: it runs every backend over the same program and
// returns either all artifacts or an error. Prepare, Layout and Write
// are the host side that decorates and persists them.
package bindgen
