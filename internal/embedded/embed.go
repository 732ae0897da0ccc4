package embedded

import (
	"embed"
)

// Content holds the default run configuration, used when no config file is
// found on disk.
//
//go:embed config/*.yaml
var Content embed.FS
