// Package cli defines the Cobra command tree for the newex CLI. Each file
// registers one command with the root. Commands delegate to the scaffold,
// patch, config, prompt and vcs packages and only handle flags, prompting,
// and output.
package cli
