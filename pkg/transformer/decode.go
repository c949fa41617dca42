package transformer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// OperationSpec is the file form of an operation: a type tag plus the
// fields of every variant. YAML and JSON use the same field names.
type OperationSpec struct {
	Type string `json:"type" yaml:"type"`

	ModuleSpecifier string   `json:"moduleSpecifier,omitempty" yaml:"moduleSpecifier,omitempty"`
	NamedImports    []string `json:"namedImports,omitempty" yaml:"namedImports,omitempty"`
	DefaultImport   string   `json:"defaultImport,omitempty" yaml:"defaultImport,omitempty"`
	NamespaceImport string   `json:"namespaceImport,omitempty" yaml:"namespaceImport,omitempty"`
	IsTypeOnly      bool     `json:"isTypeOnly,omitempty" yaml:"isTypeOnly,omitempty"`

	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Declaration string `json:"declaration,omitempty" yaml:"declaration,omitempty"`
	IsDefault   bool   `json:"isDefault,omitempty" yaml:"isDefault,omitempty"`

	TargetClass  string `json:"targetClass,omitempty" yaml:"targetClass,omitempty"`
	PropertyType string `json:"propertyType,omitempty" yaml:"propertyType,omitempty"`
	Initializer  string `json:"initializer,omitempty" yaml:"initializer,omitempty"`
	Readonly     bool   `json:"readonly,omitempty" yaml:"readonly,omitempty"`
	Static       bool   `json:"static,omitempty" yaml:"static,omitempty"`
	Parameters   string `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	ReturnType   string `json:"returnType,omitempty" yaml:"returnType,omitempty"`
	Body         string `json:"body,omitempty" yaml:"body,omitempty"`
	Async        bool   `json:"async,omitempty" yaml:"async,omitempty"`

	OldName string `json:"oldName,omitempty" yaml:"oldName,omitempty"`
	NewName string `json:"newName,omitempty" yaml:"newName,omitempty"`

	Target  string `json:"target,omitempty" yaml:"target,omitempty"`
	Wrapper string `json:"wrapper,omitempty" yaml:"wrapper,omitempty"`
}

// Operation converts the spec into its typed variant. Unrecognised types
// become Unknown so they surface as a failure rather than an error.
func (s OperationSpec) Operation() Operation {
	switch s.Type {
	case KindAddImport:
		return AddImport{
			ModuleSpecifier: s.ModuleSpecifier,
			NamedImports:    s.NamedImports,
			DefaultImport:   s.DefaultImport,
			NamespaceImport: s.NamespaceImport,
			IsTypeOnly:      s.IsTypeOnly,
		}
	case KindRemoveImport:
		return RemoveImport{ModuleSpecifier: s.ModuleSpecifier, NamedImports: s.NamedImports}
	case KindAddExport:
		return AddExport{Name: s.Name, Declaration: s.Declaration, IsDefault: s.IsDefault}
	case KindAddProperty:
		return AddProperty{
			TargetClass: s.TargetClass,
			Name:        s.Name,
			Type:        s.PropertyType,
			Initializer: s.Initializer,
			Readonly:    s.Readonly,
			Static:      s.Static,
		}
	case KindAddMethod:
		return AddMethod{
			TargetClass: s.TargetClass,
			Name:        s.Name,
			Parameters:  s.Parameters,
			ReturnType:  s.ReturnType,
			Body:        s.Body,
			Async:       s.Async,
			Static:      s.Static,
		}
	case KindRename:
		return Rename{TargetClass: s.TargetClass, OldName: s.OldName, NewName: s.NewName}
	case KindWrap:
		return Wrap{Target: s.Target, Wrapper: s.Wrapper}
	default:
		return Unknown{Type: s.Type}
	}
}

// DecodeOperations converts specs in order.
func DecodeOperations(specs []OperationSpec) []Operation {
	ops := make([]Operation, 0, len(specs))
	for _, s := range specs {
		ops = append(ops, s.Operation())
	}
	return ops
}

// ParseOperations decodes an operation list from YAML or JSON. Both a bare
// list and a document with an "operations" key are accepted.
func ParseOperations(data []byte) ([]Operation, error) {
	var specs []OperationSpec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		var doc struct {
			Operations []OperationSpec `yaml:"operations"`
		}
		if err2 := yaml.Unmarshal(data, &doc); err2 != nil {
			return nil, fmt.Errorf("parsing operations: %w", err)
		}
		specs = doc.Operations
	}
	return DecodeOperations(specs), nil
}

// LoadOperations reads an operation file.
func LoadOperations(path string) ([]Operation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading operations file: %w", err)
	}
	return ParseOperations(data)
}
