package manifest

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"
)

// EnvPrepend is a search-path environment variable directive
type EnvPrepend struct {
	Var  string `json:"var"`
	Path string `json:"path"`
}

// Manifest is the parsed package-dependency manifest of the pipeline product.
// It declares the upstream packages the product is built against and the
// environment variables prepended when the product is set up.
type Manifest struct {
	Required    []string     `json:"required"`
	Optional    []string     `json:"optional"`
	EnvPrepends []EnvPrepend `json:"envPrepends"`
}

// Load reads and parses a manifest file
func Load(filepath string) (*Manifest, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file '%s': %w", filepath, err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest file '%s': %w", filepath, err)
	}

	return m, nil
}

// Parse decodes a manifest from its line-based directive format. Supported
// directives are setupRequired(<product>), setupOptional(<product>) and
// envPrepend(<VAR>, <path>). Blank lines and '#' comments are ignored.
func Parse(data []byte) (*Manifest, error) {
	m := &Manifest{}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || strings.HasPrefix(line, "#") {
			continue
		}

		directive, args, err := splitDirective(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		switch directive {
		case "setupRequired":
			if len(args) != 1 || len(args[0]) == 0 {
				return nil, fmt.Errorf("line %d: setupRequired expects exactly one product", lineNo)
			}
			m.Required = append(m.Required, args[0])
		case "setupOptional":
			if len(args) != 1 || len(args[0]) == 0 {
				return nil, fmt.Errorf("line %d: setupOptional expects exactly one product", lineNo)
			}
			m.Optional = append(m.Optional, args[0])
		case "envPrepend":
			if len(args) != 2 || len(args[0]) == 0 {
				return nil, fmt.Errorf("line %d: envPrepend expects a variable and a path", lineNo)
			}
			m.EnvPrepends = append(m.EnvPrepends, EnvPrepend{Var: args[0], Path: args[1]})
		default:
			return nil, fmt.Errorf("line %d: unknown directive '%s'", lineNo, directive)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return m, nil
}

func splitDirective(line string) (string, []string, error) {
	open := strings.Index(line, "(")
	if open < 0 || !strings.HasSuffix(line, ")") {
		return "", nil, fmt.Errorf("malformed directive '%s'", line)
	}

	name := strings.TrimSpace(line[:open])
	inner := line[open+1 : len(line)-1]

	var args []string
	for _, part := range strings.Split(inner, ",") {
		args = append(args, strings.TrimSpace(part))
	}

	return name, args, nil
}

// Validate checks the manifest for internal consistency: a product may be
// declared at most once across the required and optional sets
func (m *Manifest) Validate() error {
	seen := make(map[string]bool)
	for _, product := range append(append([]string{}, m.Required...), m.Optional...) {
		if seen[product] {
			return fmt.Errorf("product '%s' declared more than once", product)
		}
		seen[product] = true
	}

	for _, ep := range m.EnvPrepends {
		if len(ep.Var) == 0 {
			return fmt.Errorf("envPrepend with empty variable name")
		}
	}

	return nil
}
