package schemas

import (
	"encoding/json"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	schemaFiles, err := fs.Glob(FS, "*.schema.json")
	require.NoError(t, err)
	require.NotEmpty(t, schemaFiles)

	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := FS.ReadFile(schemaFile)
			require.NoError(t, err, "should be able to read schema file")

			var v map[string]interface{}
			err = json.Unmarshal(data, &v)
			require.NoError(t, err, "schema file should be valid JSON: %s", schemaFile)
			assert.Equal(t, "http://json-schema.org/draft-07/schema#", v["$schema"])
		})
	}
}

func TestConfigSchema_Embedded(t *testing.T) {
	data, err := FS.ReadFile(ConfigSchema)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"additionalProperties": false`)
}
