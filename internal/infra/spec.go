package infra

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/controleopcoes/controleopcoes/internal/constants"
	apperrors "github.com/controleopcoes/controleopcoes/internal/errors"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-playground/validator/v10"
)

const tagSplitParts = 2

// KeyAttribute names one component of the table's primary key.
type KeyAttribute struct {
	Name string                     `yaml:"name" validate:"required"`
	Type types.ScalarAttributeType `yaml:"type" validate:"eq=S"`
}

// TableSpec is the immutable description of the table to provision.
// Only the region, name and tags vary; the key schema and billing mode are fixed.
type TableSpec struct {
	Region       string            `yaml:"region" validate:"required"`
	TableName    string            `yaml:"table_name" validate:"required,min=3,max=255,dynamodb_table_name"`
	PartitionKey KeyAttribute      `yaml:"partition_key"`
	SortKey      KeyAttribute      `yaml:"sort_key"`
	BillingMode  types.BillingMode `yaml:"billing_mode" validate:"eq=PAY_PER_REQUEST"`
	Tags         map[string]string `yaml:"tags,omitempty"`
}

var (
	validate        = newValidator()
	tableNameRegexp = regexp.MustCompile(constants.TableNamePattern)
)

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("dynamodb_table_name", func(fl validator.FieldLevel) bool {
		return tableNameRegexp.MatchString(fl.Field().String())
	})
	return v
}

// DefaultTableSpec returns the spec of the application's table: PK/SK string
// keys with on-demand billing in the default region.
func DefaultTableSpec() *TableSpec {
	return &TableSpec{
		Region:    constants.DefaultRegion,
		TableName: constants.DefaultTableName,
		PartitionKey: KeyAttribute{
			Name: constants.DefaultPartitionKeyName,
			Type: types.ScalarAttributeTypeS,
		},
		SortKey: KeyAttribute{
			Name: constants.DefaultSortKeyName,
			Type: types.ScalarAttributeTypeS,
		},
		BillingMode: types.BillingModePayPerRequest,
	}
}

// Validate checks that the spec is fully populated and keeps the fixed
// PK/SK string schema with on-demand billing.
func (s *TableSpec) Validate() error {
	if s == nil {
		return apperrors.ErrInvalidTableSpec("table spec is required", nil)
	}

	if err := validate.Struct(s); err != nil {
		return apperrors.ErrInvalidTableSpec("table spec is invalid", err)
	}

	if s.PartitionKey.Name != constants.DefaultPartitionKeyName || s.SortKey.Name != constants.DefaultSortKeyName {
		return apperrors.ErrInvalidTableSpec("table spec is invalid",
			fmt.Errorf("key schema must be %s (HASH) and %s (RANGE), got %q and %q",
				constants.DefaultPartitionKeyName, constants.DefaultSortKeyName,
				s.PartitionKey.Name, s.SortKey.Name))
	}

	return nil
}

// ParseTags parses KEY=VALUE tag strings.
func ParseTags(tags []string) (map[string]string, error) {
	result := make(map[string]string)

	for _, tag := range tags {
		parts := strings.SplitN(tag, "=", tagSplitParts)
		if len(parts) != tagSplitParts || parts[0] == "" {
			return nil, fmt.Errorf("invalid tag format: %s (expected KEY=VALUE)", tag)
		}
		result[parts[0]] = parts[1]
	}

	return result, nil
}

// sortedTags returns the spec's tags ordered by key so requests are deterministic.
func (s *TableSpec) sortedTags() []types.Tag {
	if len(s.Tags) == 0 {
		return nil
	}

	keys := make([]string, 0, len(s.Tags))
	for k := range s.Tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tags := make([]types.Tag, 0, len(keys))
	for _, k := range keys {
		key, value := k, s.Tags[k]
		tags = append(tags, types.Tag{Key: &key, Value: &value})
	}
	return tags
}
