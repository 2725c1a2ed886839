// Package config loads and merges docpilot configuration from multiple
// sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (MINIMAX_API_KEY, MINIMAX_GROUP_ID, GITHUB_TOKEN, etc.)
//  3. Config file ($XDG_CONFIG_HOME/docpilot/config.json)
//  4. Built-in defaults
//
// Credentials only ever come from the environment; [Save] never writes them.
package config
