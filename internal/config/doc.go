// Package config resolves newex settings: where exercises live, how their
// files are named, which build file to patch, and the marker to look for.
// Values are layered with viper from defaults, the user file at
// ~/.newex/config.yaml, the project file .newex.yaml, and NEWEX_* environment
// variables. Files are checked against an embedded JSON Schema.
package config
