// Package config loads toolcatalog settings with viper.
//
// Values come from a YAML file, TOOLCATALOG_* environment variables (nested
// keys use underscores, e.g. TOOLCATALOG_STATS_TTL) and command-line flags,
// over built-in defaults. String values that carry credentials may use
// ${VAR} expansion or secretref:<provider>:<ref> references; call
// ResolveSecrets after Load.
package config
