package iobronze_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inslake/inslake/internal/iobronze"
	"github.com/inslake/inslake/internal/iostorage"
	"github.com/inslake/inslake/pkg/config"
	"github.com/inslake/inslake/pkg/storage"
)

var manifest = `
data_sources:
  - entity: clients
    source_system: erp
    file: clients.csv
  - entity: vehicles
    source_system: erp
    file: vehicles.csv
`

func setup(t *testing.T, files map[string]string) *config.Config {
	t.Helper()
	homeDir := t.TempDir()
	dataDir := t.TempDir()

	cfgDir := config.ConfigDir(homeDir)
	require.NoError(t, os.MkdirAll(cfgDir, 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(cfgDir, "sources.yaml"), []byte(manifest), 0644,
	))

	for name, content := range files {
		require.NoError(t, os.WriteFile(
			filepath.Join(dataDir, name), []byte(content), 0644,
		))
	}

	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptHomeDir(homeDir),
		config.OptDataDir(dataDir),
	})
	return cfg
}

func TestIngest(t *testing.T) {
	cfg := setup(t, map[string]string{
		"clients.csv": "client_id,name,email,phone,address\n" +
			"c1,john smith,john@example.com,555-1234,12 main st\n" +
			"c2,maria lopez,,,\n",
		"vehicles.csv": "vehicle_id,client_id,brand,model,year,plate\n" +
			"v1,c1,toyota,corolla,2015,abc 123\n" +
			"v2,c2,ford,f-150,old,xyz 789\n",
	})

	mem := iostorage.NewMem()
	require.NoError(t, iobronze.New(cfg, mem).Ingest(context.Background()))

	clients, err := mem.Load(context.Background(), "bronze/erp_clients")
	require.NoError(t, err)
	require.Equal(t, 2, clients.Len())
	assert.Equal(t, "john smith", clients.Value(0, "name"),
		"bronze keeps raw text untouched")
	assert.Nil(t, clients.Value(1, "email"), "empty cell becomes null")

	vehicles, err := mem.Load(context.Background(), "bronze/erp_vehicles")
	require.NoError(t, err)
	assert.Equal(t, int64(2015), vehicles.Value(0, "year"),
		"numeric cells are coerced")
	assert.Equal(t, "old", vehicles.Value(1, "year"),
		"unparsable cells keep their raw text")
}

func TestIngestSkipsBadFile(t *testing.T) {
	// vehicles.csv is missing; ingestion continues with what it has.
	cfg := setup(t, map[string]string{
		"clients.csv": "client_id,name,email,phone,address\n" +
			"c1,john smith,,,\n",
	})

	mem := iostorage.NewMem()
	require.NoError(t, iobronze.New(cfg, mem).Ingest(context.Background()))

	_, err := mem.Load(context.Background(), "bronze/erp_clients")
	assert.NoError(t, err)

	_, err = mem.Load(context.Background(), "bronze/erp_vehicles")
	assert.True(t, storage.IsNotFound(err))
}

func TestIngestAllSourcesFailed(t *testing.T) {
	cfg := setup(t, nil)

	mem := iostorage.NewMem()
	err := iobronze.New(cfg, mem).Ingest(context.Background())
	require.Error(t, err)
	assert.Empty(t, mem.Names())
}

func TestIngestEmptyFileFails(t *testing.T) {
	cfg := setup(t, map[string]string{
		"clients.csv": "",
		"vehicles.csv": "vehicle_id,client_id,brand,model,year,plate\n" +
			"v1,c1,toyota,corolla,2015,abc 123\n",
	})

	mem := iostorage.NewMem()
	require.NoError(t, iobronze.New(cfg, mem).Ingest(context.Background()),
		"one empty file does not sink the run")

	_, err := mem.Load(context.Background(), "bronze/erp_clients")
	assert.True(t, storage.IsNotFound(err))
}

func TestIngestHeaderOnlyFile(t *testing.T) {
	cfg := setup(t, map[string]string{
		"clients.csv": "client_id,name,email,phone,address\n",
		"vehicles.csv": "vehicle_id,client_id,brand,model,year,plate\n" +
			"v1,c1,toyota,corolla,2015,abc 123\n",
	})

	mem := iostorage.NewMem()
	require.NoError(t, iobronze.New(cfg, mem).Ingest(context.Background()))

	clients, err := mem.Load(context.Background(), "bronze/erp_clients")
	require.NoError(t, err)
	assert.Equal(t, 0, clients.Len(),
		"a header-only file ingests as an empty table")
}
