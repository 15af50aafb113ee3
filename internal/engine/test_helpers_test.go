package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/dataprep/internal/dataset"
	"github.com/alexisbeaulieu97/dataprep/internal/metadata"
	"github.com/alexisbeaulieu97/dataprep/internal/preparator"
	"github.com/alexisbeaulieu97/dataprep/internal/provenance"
)

func loadPokemon(t *testing.T, partitions int) *dataset.Dataset {
	t.Helper()
	f, err := os.Open(filepath.Join("..", "dataset", "testdata", "pokemon.csv"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	ds, err := dataset.ReadCSV(f, dataset.CSVOptions{Header: true, InferSchema: true, Partitions: partitions})
	require.NoError(t, err)
	return ds
}

// contractStub declares a fixed contract and passes the data through.
type contractStub struct {
	name  string
	setup preparator.MetadataSetup
	runs  *int
}

func (s *contractStub) Name() string                                { return s.name }
func (s *contractStub) BuildMetadataSetup() preparator.MetadataSetup { return s.setup }
func (s *contractStub) Parameters() map[string]string               { return nil }

func (s *contractStub) ExecuteLogic(_ context.Context, in preparator.Input) (preparator.ExecutionContext, error) {
	if s.runs != nil {
		*s.runs++
	}
	return in.Result(in.Dataset), nil
}

func requires(m ...metadata.Metadata) preparator.MetadataSetup {
	return preparator.MetadataSetup{Prerequisites: m}
}

func asserts(m ...metadata.Metadata) preparator.MetadataSetup {
	return preparator.MetadataSetup{Postconditions: m}
}

// failingStub returns a Go error from ExecuteLogic.
type failingStub struct{}

func (failingStub) Name() string                                { return "failing" }
func (failingStub) BuildMetadataSetup() preparator.MetadataSetup { return preparator.MetadataSetup{} }
func (failingStub) Parameters() map[string]string               { return map[string]string{} }

func (failingStub) ExecuteLogic(context.Context, preparator.Input) (preparator.ExecutionContext, error) {
	return preparator.ExecutionContext{}, errors.New("backend unavailable")
}

// noisyStub reports one error per row from concurrent workers.
type noisyStub struct{}

func (noisyStub) Name() string                                { return "noisy" }
func (noisyStub) BuildMetadataSetup() preparator.MetadataSetup { return preparator.MetadataSetup{} }
func (noisyStub) Parameters() map[string]string               { return map[string]string{} }

func (noisyStub) ExecuteLogic(ctx context.Context, in preparator.Input) (preparator.ExecutionContext, error) {
	out, err := in.Dataset.MapColumn(ctx, in.Parallelism, "identifier", func(v any) (any, error) {
		return v, fmt.Errorf("suspicious value %v", v)
	}, in.Reporter())
	if err != nil {
		return preparator.ExecutionContext{}, err
	}
	return in.Result(out), nil
}

type failingSink struct {
	mu    sync.Mutex
	calls int
}

func (s *failingSink) Append(context.Context, provenance.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return errors.New("database is locked")
}

func mustAdd(t *testing.T, p *Pipeline, id string, prep preparator.Preparator) *Preparation {
	t.Helper()
	preparation := NewPreparation(id, prep)
	require.NoError(t, p.AddPreparation(preparation))
	return preparation
}
