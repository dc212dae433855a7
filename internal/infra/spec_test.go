package infra

import (
	"strings"
	"testing"

	apperrors "github.com/controleopcoes/controleopcoes/internal/errors"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTableSpec(t *testing.T) {
	spec := DefaultTableSpec()

	require.NoError(t, spec.Validate())
	assert.Equal(t, "sa-east-1", spec.Region)
	assert.Equal(t, "AppControleOpcoes", spec.TableName)
	assert.Equal(t, KeyAttribute{Name: "PK", Type: types.ScalarAttributeTypeS}, spec.PartitionKey)
	assert.Equal(t, KeyAttribute{Name: "SK", Type: types.ScalarAttributeTypeS}, spec.SortKey)
	assert.Equal(t, types.BillingModePayPerRequest, spec.BillingMode)
}

func TestTableSpec_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *TableSpec)
		wantErr bool
		errMsg  string
	}{
		{
			name:   "valid default spec",
			mutate: func(_ *TableSpec) {},
		},
		{
			name:    "empty region",
			mutate:  func(s *TableSpec) { s.Region = "" },
			wantErr: true,
			errMsg:  "Region",
		},
		{
			name:    "empty table name",
			mutate:  func(s *TableSpec) { s.TableName = "" },
			wantErr: true,
			errMsg:  "TableName",
		},
		{
			name:    "table name too short",
			mutate:  func(s *TableSpec) { s.TableName = "ab" },
			wantErr: true,
			errMsg:  "TableName",
		},
		{
			name:    "table name too long",
			mutate:  func(s *TableSpec) { s.TableName = strings.Repeat("a", 256) },
			wantErr: true,
			errMsg:  "TableName",
		},
		{
			name:   "table name at maximum length",
			mutate: func(s *TableSpec) { s.TableName = strings.Repeat("a", 255) },
		},
		{
			name:    "table name with invalid characters",
			mutate:  func(s *TableSpec) { s.TableName = "my table" },
			wantErr: true,
			errMsg:  "dynamodb_table_name",
		},
		{
			name:   "table name with dots dashes and underscores",
			mutate: func(s *TableSpec) { s.TableName = "app.controle-opcoes_dev" },
		},
		{
			name:    "empty partition key name",
			mutate:  func(s *TableSpec) { s.PartitionKey.Name = "" },
			wantErr: true,
			errMsg:  "PartitionKey.Name",
		},
		{
			name:    "unsupported key type",
			mutate:  func(s *TableSpec) { s.SortKey.Type = "BOOL" },
			wantErr: true,
			errMsg:  "SortKey.Type",
		},
		{
			name:    "numeric sort key",
			mutate:  func(s *TableSpec) { s.SortKey.Type = types.ScalarAttributeTypeN },
			wantErr: true,
			errMsg:  "SortKey.Type",
		},
		{
			name:    "renamed partition key",
			mutate:  func(s *TableSpec) { s.PartitionKey.Name = "id" },
			wantErr: true,
			errMsg:  "key schema must be PK (HASH) and SK (RANGE)",
		},
		{
			name:    "identical key names",
			mutate:  func(s *TableSpec) { s.SortKey.Name = s.PartitionKey.Name },
			wantErr: true,
			errMsg:  "key schema must be PK (HASH) and SK (RANGE)",
		},
		{
			name:    "unknown billing mode",
			mutate:  func(s *TableSpec) { s.BillingMode = "FREE" },
			wantErr: true,
			errMsg:  "BillingMode",
		},
		{
			name:    "provisioned billing",
			mutate:  func(s *TableSpec) { s.BillingMode = types.BillingModeProvisioned },
			wantErr: true,
			errMsg:  "BillingMode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := DefaultTableSpec()
			tt.mutate(spec)

			err := spec.Validate()
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Equal(t, apperrors.ErrCodeInvalidTableSpec, apperrors.GetErrorCode(err))
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestTableSpec_ValidateNil(t *testing.T) {
	var spec *TableSpec

	err := spec.Validate()

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidTableSpec, apperrors.GetErrorCode(err))
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected map[string]string
		wantErr  bool
	}{
		{
			name:     "no tags",
			input:    nil,
			expected: map[string]string{},
		},
		{
			name:     "single tag",
			input:    []string{"ManagedBy=controleopcoes"},
			expected: map[string]string{"ManagedBy": "controleopcoes"},
		},
		{
			name:     "value containing equals sign",
			input:    []string{"Expr=a=b"},
			expected: map[string]string{"Expr": "a=b"},
		},
		{
			name:     "empty value",
			input:    []string{"Env="},
			expected: map[string]string{"Env": ""},
		},
		{
			name:    "missing separator",
			input:   []string{"invalid"},
			wantErr: true,
		},
		{
			name:    "empty key",
			input:   []string{"=value"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseTags(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "expected KEY=VALUE")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestTableSpec_SortedTags(t *testing.T) {
	spec := DefaultTableSpec()
	assert.Nil(t, spec.sortedTags())

	spec.Tags = map[string]string{"b": "2", "a": "1"}
	tags := spec.sortedTags()

	require.Len(t, tags, 2)
	assert.Equal(t, "a", *tags[0].Key)
	assert.Equal(t, "1", *tags[0].Value)
	assert.Equal(t, "b", *tags[1].Key)
}
