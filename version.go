package tinkit

import _ "embed"

// Version is the release of the toolkit, read from the VERSION file.
//
//go:embed VERSION
var Version string
