package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault_PassesValidation(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoad_OverridesDefaultsFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
num_numa_nodes: 4
num_partitions: 96
partition_strategy: source
edge_sort: hilbert
vebo: true
sparse_threshold: 50
part96: true
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 4, cfg.NumNUMANodes)
	require.Equal(t, 96, cfg.NumPartitions)
	require.Equal(t, "source", cfg.PartitionStrategy)
	require.Equal(t, "hilbert", cfg.EdgeSort)
	require.True(t, cfg.VEBO)
	require.Equal(t, 50, cfg.SparseThreshold)
	require.True(t, cfg.PART96)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("num_partitions: 8\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 8, cfg.NumPartitions)
	require.Equal(t, "dest", cfg.PartitionStrategy)
	require.Equal(t, "csr", cfg.EdgeSort)
}

func TestLoad_RejectsUnknownStrategy(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("partition_strategy: bogus\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	require.Error(t, err)
}
