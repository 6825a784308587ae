package config

import _ "embed"

// profileSchema is the structural contract for portal profile files,
// checked before struct binding.
//
//go:embed profile.schema.json
var profileSchema []byte
