package store

import (
	"context"
	"database/sql"

	"github.com/cockroachdb/errors"

	"github.com/roach88/bindgen/internal/bindgen"
	"github.com/roach88/bindgen/internal/idl"
)

// ErrIncompleteRun reports a stored run missing one of its artifacts.
var ErrIncompleteRun = errors.New("cached run is incomplete")

// Lookup returns the cached result for key produced by this generator
// version. The boolean is false on a cache miss.
func (s *Store) Lookup(ctx context.Context, key Key) (*bindgen.Result, Run, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seq, service, program_hash, options_hash, generator_version, schema_version
		FROM runs
		WHERE program_hash = ? AND options_hash = ? AND generator_version = ?
		ORDER BY seq DESC
		LIMIT 1
	`, key.ProgramHash, key.OptionsHash, idl.GeneratorVersion)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, Run{}, false, nil
	}
	if err != nil {
		return nil, Run{}, false, err
	}

	res, err := s.readArtifacts(ctx, run.ID)
	if err != nil {
		return nil, Run{}, false, err
	}
	return res, run, true, nil
}

func (s *Store) readArtifacts(ctx context.Context, runID string) (*bindgen.Result, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, content FROM artifacts
		WHERE run_id = ?
		ORDER BY kind COLLATE BINARY ASC
	`, runID)
	if err != nil {
		return nil, errors.Wrap(err, "query artifacts")
	}
	defer rows.Close()

	var res bindgen.Result
	fields := map[string]*string{
		KindDeclarationsJS:         &res.DeclarationsJS,
		KindDeclarationsTypeScript: &res.DeclarationsTypeScript,
		KindDeclarationsTS:         &res.DeclarationsTS,
		KindInterfaceTS:            &res.InterfaceTS,
		KindServiceTS:              &res.ServiceTS,
	}
	found := 0
	for rows.Next() {
		var kind, content string
		if err := rows.Scan(&kind, &content); err != nil {
			return nil, errors.Wrap(err, "scan artifact")
		}
		if dst, ok := fields[kind]; ok {
			*dst = content
			found++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate artifacts")
	}
	if found != len(fields) {
		return nil, errors.Wrapf(ErrIncompleteRun, "run %s has %d of %d artifacts", runID, found, len(fields))
	}
	return &res, nil
}

// Runs lists every recorded run in seq order.
//
// Returns an empty slice (not nil) when nothing is cached.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, service, program_hash, options_hash, generator_version, schema_version
		FROM runs
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, errors.Wrap(err, "query runs")
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate runs")
	}
	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var r Run
	err := row.Scan(&r.ID, &r.Seq, &r.Service, &r.ProgramHash, &r.OptionsHash, &r.GeneratorVersion, &r.SchemaVersion)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, err
	}
	if err != nil {
		return Run{}, errors.Wrap(err, "scan run")
	}
	return r, nil
}
