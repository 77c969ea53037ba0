// Package datasource assembles the session's city directory from its two
// inputs: the reference dataset and the user-contributed store.
package datasource

import (
	"context"

	"golang.org/x/sync/errgroup"

	"bigskydata/mtcounties/internal/directory"
	"bigskydata/mtcounties/internal/refdata"
	"bigskydata/mtcounties/internal/userstore"
)

// Load reads both sources concurrently and merges them with reference data
// first, user entries second, so a user entry wins any key collision. A
// reference format problem is fatal; the user store only contributes
// warnings.
func Load(ctx context.Context, refPath, userPath string) (directory.Directory, []userstore.Warning, error) {
	var (
		ref      directory.Directory
		user     directory.Directory
		warnings []userstore.Warning
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ref, err = refdata.LoadFile(refPath)
		return err
	})
	g.Go(func() error {
		var err error
		user, warnings, err = userstore.Load(userPath)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	for key, rec := range user {
		ref[key] = rec
	}
	return ref, warnings, nil
}
