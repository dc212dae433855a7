// Package testutil provides shared testing utilities and helpers.
package testutil

import (
	"io"
	"log/slog"

	"github.com/controleopcoes/controleopcoes/internal/infra"
)

// TableSpecBuilder provides a fluent interface for building test table specs.
type TableSpecBuilder struct {
	spec *infra.TableSpec
}

// NewTableSpecBuilder creates a new TableSpecBuilder starting from the default spec.
func NewTableSpecBuilder() *TableSpecBuilder {
	return &TableSpecBuilder{spec: infra.DefaultTableSpec()}
}

// WithTableName sets the table name.
func (b *TableSpecBuilder) WithTableName(name string) *TableSpecBuilder {
	b.spec.TableName = name
	return b
}

// WithRegion sets the region.
func (b *TableSpecBuilder) WithRegion(region string) *TableSpecBuilder {
	b.spec.Region = region
	return b
}

// WithTag adds a tag.
func (b *TableSpecBuilder) WithTag(key, value string) *TableSpecBuilder {
	if b.spec.Tags == nil {
		b.spec.Tags = make(map[string]string)
	}
	b.spec.Tags[key] = value
	return b
}

// Build returns the constructed TableSpec.
func (b *TableSpecBuilder) Build() *infra.TableSpec {
	return b.spec
}

// SilentLogger returns a logger that discards all output.
func SilentLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
