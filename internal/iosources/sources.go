// Package iosources loads and validates the sources.yaml ingestion
// manifest: the list of raw CSV files and the bronze tables they feed.
package iosources

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/inslake/inslake/pkg/config"
	"github.com/inslake/inslake/pkg/schema"
)

// Manifest represents the complete sources.yaml configuration file.
type Manifest struct {
	// DataSources is the list of raw files to ingest.
	DataSources []DataSource `yaml:"data_sources"`
}

// DataSource maps one raw CSV file to a known entity.
type DataSource struct {
	// Entity is the entity name, e.g. "policies". It must be known to
	// the schema registry.
	Entity string `yaml:"entity"`

	// SourceSystem is "erp" or "crm".
	SourceSystem string `yaml:"source_system"`

	// File is the CSV file; relative paths resolve against the data
	// directory.
	File string `yaml:"file"`
}

// Table returns the unprefixed table name, e.g. "erp_policies".
func (d DataSource) Table() string {
	return d.SourceSystem + "_" + d.Entity
}

// Schema resolves the entity definition for this source.
func (d DataSource) Schema() (schema.Entity, bool) {
	return schema.ByTable(d.Table())
}

// Path resolves the CSV file path against the data directory.
func (d DataSource) Path(dataDir string) string {
	if filepath.IsAbs(d.File) {
		return d.File
	}
	return filepath.Join(dataDir, d.File)
}

// Load reads and validates the sources.yaml manifest from the config
// directory.
func Load(cfg *config.Config) (*Manifest, error) {
	path := config.SourcesFilePath(cfg.HomeDir)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, SourcesConfigError(path, err)
	}

	var m Manifest
	if err = yaml.Unmarshal(data, &m); err != nil {
		return nil, SourcesConfigError(path, err)
	}

	if err = m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks that the manifest is non-empty and that every entry
// resolves to a registered entity.
func (m *Manifest) Validate() error {
	if len(m.DataSources) == 0 {
		return SourcesEmptyError()
	}
	for _, d := range m.DataSources {
		if strings.TrimSpace(d.File) == "" {
			return SourcesInvalidError(d.Table(), "file is empty")
		}
		if _, ok := d.Schema(); !ok {
			return SourcesInvalidError(d.Table(), "unknown entity")
		}
	}
	return nil
}
