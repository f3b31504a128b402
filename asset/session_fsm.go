// Package asset holds embedded default data files.
package asset

import _ "embed"

// SessionFSM is the default session graph loaded into the engine state machine
//
//go:embed session.toml
var SessionFSM []byte
