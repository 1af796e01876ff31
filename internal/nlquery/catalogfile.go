package nlquery

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.schema.json
var catalogSchemaJSON string

var catalogSchema = gojsonschema.NewStringLoader(catalogSchemaJSON)

// catalogFile is the YAML layout of a catalog file.
type catalogFile struct {
	Rules []ruleEntry `yaml:"rules"`
}

type ruleEntry struct {
	Name     string `yaml:"name"`
	Trigger  string `yaml:"trigger"`
	SQL      string `yaml:"sql"`
	Template string `yaml:"template"`
}

// LoadCatalogFile reads a YAML catalog from disk.
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	c, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// ParseCatalog parses a YAML catalog.
//
// The document is first checked against the catalog JSON schema, then
// decoded strictly and compiled with NewCatalog. Rule order in the file is
// the precedence order.
func ParseCatalog(data []byte) (*Catalog, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	result, err := gojsonschema.Validate(catalogSchema, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("invalid catalog: %s", strings.Join(msgs, "; "))
	}

	var file catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	rules := make([]Rule, len(file.Rules))
	for i, e := range file.Rules {
		rules[i] = Rule{
			Name:     e.Name,
			Trigger:  e.Trigger,
			SQL:      e.SQL,
			Template: e.Template,
		}
	}
	return NewCatalog(rules)
}
