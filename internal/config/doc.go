// Package config loads and validates spell-check engine configuration.
//
// Configuration layers, lowest to highest precedence:
//
//  1. Built-in defaults (Default)
//  2. A TOML file, when one is given and exists
//  3. SPELLSTORM_* environment variables
//
// Load applies all three and validates the merged result.
package config
