// Package config discovers and decodes blackdocs configuration files.
package config

// Config holds the settings read from a configuration file. A nil field was
// not set by the file.
type Config struct {
	LineLength              *int
	TargetVersions          *[]string
	SkipStringNormalization *bool
	Preview                 *bool
	Pyi                     *bool
	RSTLiteralBlocks        *bool
	SkipErrors              *bool
	Formatter               *string
	Exclude                 *[]string
}
