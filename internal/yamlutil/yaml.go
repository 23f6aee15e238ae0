// Package yamlutil reads and writes nb2docx config documents.
package yamlutil

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize caps a config document at 1MB.
var MaxInputSize = 1 << 20

var (
	ErrEmpty          = errors.New("yamlutil: empty config document")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
	ErrSyntax         = errors.New("yamlutil: invalid config document")
)

// Decode reads a config document into v. Unknown and duplicate keys are
// errors, and the error text quotes the offending source lines.
func Decode(data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmpty
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("%w:\n%s", ErrSyntax, yaml.FormatError(err, false, true))
	}
	return nil
}

// Encode writes v as a config document with two-space indentation.
// Each header line becomes a leading "# " comment.
func Encode(v any, header ...string) ([]byte, error) {
	body, err := yaml.MarshalWithOptions(v, yaml.Indent(2), yaml.IndentSequence(true))
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	if len(header) == 0 {
		return body, nil
	}

	var buf bytes.Buffer
	for _, line := range header {
		buf.WriteString("# " + line + "\n")
	}
	buf.WriteByte('\n')
	buf.Write(body)
	return buf.Bytes(), nil
}
