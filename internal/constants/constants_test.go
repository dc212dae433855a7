package constants

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersion(t *testing.T) {
	v := GetVersion()
	assert.NotNil(t, v, "Version should not be nil")
	assert.NotEmpty(t, *v, "Version should not be empty")

	v2 := GetVersion()
	assert.Equal(t, v, v2, "GetVersion should return the same pointer")
}

func TestConfigDirPath(t *testing.T) {
	tests := []struct {
		name     string
		homeDir  string
		expected string
	}{
		{
			name:     "standard home directory",
			homeDir:  "/home/user",
			expected: "/home/user/.controleopcoes",
		},
		{
			name:     "root home directory",
			homeDir:  "/root",
			expected: "/root/.controleopcoes",
		},
		{
			name:     "empty home directory",
			homeDir:  "",
			expected: "/.controleopcoes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ConfigDirPath(tt.homeDir))
		})
	}
}

func TestConfigFilePath(t *testing.T) {
	assert.Equal(t, "/home/user/.controleopcoes/config.yaml", ConfigFilePath("/home/user"))
}

func TestDefaultTableNameMatchesPattern(t *testing.T) {
	re := regexp.MustCompile(TableNamePattern)
	assert.True(t, re.MatchString(DefaultTableName))
	assert.False(t, re.MatchString("bad name"))
}

func TestNextSteps(t *testing.T) {
	assert.Len(t, NextSteps, 4)
	assert.Contains(t, NextSteps[2], "OPLAB_API_KEY")
}
