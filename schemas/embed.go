// Package schemas embeds the JSON Schema files shipped with cvgen.
package schemas

import "embed"

// ConfigSchema is the file name of the configuration schema.
const ConfigSchema = "config.schema.json"

// FS holds every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS
