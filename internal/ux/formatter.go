// Package ux renders command output in the formats the CLI supports.
package ux

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Formatter writes one value to the configured output
type Formatter interface {
	Format(data any) error
}

// Options configures a formatter
type Options struct {
	// Writer is where output goes (defaults to os.Stdout)
	Writer io.Writer
}

// NewFormatter creates a formatter for the given format string
func NewFormatter(format string, opts *Options) (Formatter, error) {
	if opts == nil {
		opts = &Options{}
	}
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	switch format {
	case "json":
		return &JSONFormatter{writer: opts.Writer}, nil
	case "yaml":
		return &YAMLFormatter{writer: opts.Writer}, nil
	case "text", "":
		return &TextFormatter{writer: opts.Writer}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s (supported: text, json, yaml)", format)
	}
}

// JSONFormatter renders indented JSON
type JSONFormatter struct {
	writer io.Writer
}

// Format writes data as JSON
func (f *JSONFormatter) Format(data any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// YAMLFormatter renders YAML
type YAMLFormatter struct {
	writer io.Writer
}

// Format writes data as YAML
func (f *YAMLFormatter) Format(data any) error {
	encoder := yaml.NewEncoder(f.writer)
	encoder.SetIndent(2)
	defer encoder.Close()
	return encoder.Encode(data)
}

// TextFormatter renders human-readable text. Data must be a string or
// implement fmt.Stringer; structured types pick json or yaml instead.
type TextFormatter struct {
	writer io.Writer
}

// Format writes data as text
func (f *TextFormatter) Format(data any) error {
	switch v := data.(type) {
	case string:
		_, err := fmt.Fprintln(f.writer, v)
		return err
	case fmt.Stringer:
		_, err := fmt.Fprintln(f.writer, v.String())
		return err
	default:
		return fmt.Errorf("text formatter requires a string or fmt.Stringer value")
	}
}

var _ Formatter = (*JSONFormatter)(nil)
var _ Formatter = (*YAMLFormatter)(nil)
var _ Formatter = (*TextFormatter)(nil)
