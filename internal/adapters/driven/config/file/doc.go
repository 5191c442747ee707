// Package file provides the TOML-backed driven.ConfigStore used for the
// optional entigraph configuration file.
package file
