package store

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/roach88/bindgen/internal/bindgen"
	"github.com/roach88/bindgen/internal/idl"
)

// Artifact kinds, one per bindgen.Result field.
const (
	KindDeclarationsJS         = "declarations_js"
	KindDeclarationsTypeScript = "declarations_typescript"
	KindDeclarationsTS         = "declarations_ts"
	KindInterfaceTS            = "interface_ts"
	KindServiceTS              = "service_ts"
)

// Key identifies a cached generation.
type Key struct {
	ProgramHash string
	OptionsHash string
}

// Run is one recorded generation.
type Run struct {
	ID               string `json:"id"`
	Seq              int64  `json:"seq"`
	Service          string `json:"service"`
	ProgramHash      string `json:"program_hash"`
	OptionsHash      string `json:"options_hash"`
	GeneratorVersion string `json:"generator_version"`
	SchemaVersion    string `json:"schema_version"`
}

// Key returns the cache key of the run.
func (r Run) Key() Key {
	return Key{ProgramHash: r.ProgramHash, OptionsHash: r.OptionsHash}
}

func artifacts(res *bindgen.Result) map[string]string {
	return map[string]string{
		KindDeclarationsJS:         res.DeclarationsJS,
		KindDeclarationsTypeScript: res.DeclarationsTypeScript,
		KindDeclarationsTS:         res.DeclarationsTS,
		KindInterfaceTS:            res.InterfaceTS,
		KindServiceTS:              res.ServiceTS,
	}
}

// Save records res under key and returns the new run. A run already
// stored for the same key and generator version is replaced.
func (s *Store) Save(ctx context.Context, service string, key Key, res *bindgen.Result) (Run, error) {
	run := Run{
		ID:               uuid.NewString(),
		Service:          service,
		ProgramHash:      key.ProgramHash,
		OptionsHash:      key.OptionsHash,
		GeneratorVersion: idl.GeneratorVersion,
		SchemaVersion:    idl.SchemaVersion,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, errors.Wrap(err, "save run: begin")
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		DELETE FROM runs
		WHERE program_hash = ? AND options_hash = ? AND generator_version = ?
	`, run.ProgramHash, run.OptionsHash, run.GeneratorVersion)
	if err != nil {
		return Run{}, errors.Wrap(err, "save run: replace")
	}

	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&run.Seq); err != nil {
		return Run{}, errors.Wrap(err, "save run: next seq")
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, seq, service, program_hash, options_hash, generator_version, schema_version)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.Seq,
		run.Service,
		run.ProgramHash,
		run.OptionsHash,
		run.GeneratorVersion,
		run.SchemaVersion,
	)
	if err != nil {
		return Run{}, errors.Wrap(err, "save run: insert")
	}

	for kind, content := range artifacts(res) {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO artifacts (run_id, kind, content) VALUES (?, ?, ?)
		`, run.ID, kind, content)
		if err != nil {
			return Run{}, errors.Wrapf(err, "save run: artifact %s", kind)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, errors.Wrap(err, "save run: commit")
	}
	return run, nil
}

// KeyFor computes the cache key of a program generated with options.
func KeyFor(prog *idl.Program, options map[string]any) (Key, error) {
	ph, err := idl.ProgramHash(prog)
	if err != nil {
		return Key{}, err
	}
	oh, err := idl.OptionsHash(options)
	if err != nil {
		return Key{}, err
	}
	return Key{ProgramHash: ph, OptionsHash: oh}, nil
}
