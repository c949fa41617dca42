package transformer

import (
	"errors"
	"fmt"
)

// Operation kinds as they appear in operation files.
const (
	KindAddImport    = "add-import"
	KindRemoveImport = "remove-import"
	KindAddExport    = "add-export"
	KindAddProperty  = "add-property"
	KindAddMethod    = "add-method"
	KindRename       = "rename"
	KindWrap         = "wrap"
)

var (
	// ErrInvalidOperation is returned by Transform when an operation is
	// missing a required field. No edits are made in that case.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrNotFound marks failures caused by a missing class, member, or symbol.
	ErrNotFound = errors.New("not found")

	// ErrNotImplemented marks operations that are recognised but unsupported.
	ErrNotImplemented = errors.New("not yet implemented")

	// ErrUnknownOperation marks operations with an unrecognised kind.
	ErrUnknownOperation = errors.New("unknown operation type")
)

// Operation is one structural edit request. The set of implementations is
// closed: AddImport, RemoveImport, AddExport, AddProperty, AddMethod,
// Rename, Wrap, and Unknown.
type Operation interface {
	Kind() string
	validate() error
}

// AddImport adds an import, or merges named bindings into an existing import
// of the same module.
type AddImport struct {
	ModuleSpecifier string
	NamedImports    []string
	DefaultImport   string
	NamespaceImport string
	IsTypeOnly      bool
}

// RemoveImport strips named bindings from an import, or removes it outright
// when NamedImports is empty.
type RemoveImport struct {
	ModuleSpecifier string
	NamedImports    []string
}

// AddExport appends an export statement. With Declaration set the text is
// exported inline; otherwise Name must already be declared in the file.
type AddExport struct {
	Name        string
	Declaration string
	IsDefault   bool
}

// AddProperty appends a property to a class body.
type AddProperty struct {
	TargetClass string
	Name        string
	Type        string
	Initializer string
	Readonly    bool
	Static      bool
}

// AddMethod appends a method to a class body. Parameters is a
// "name: type, ..." list; Body is inserted as written.
type AddMethod struct {
	TargetClass string
	Name        string
	Parameters  string
	ReturnType  string
	Body        string
	Async       bool
	Static      bool
}

// Rename renames a top-level symbol, or a member of TargetClass when set,
// together with every reference to it.
type Rename struct {
	TargetClass string
	OldName     string
	NewName     string
}

// Wrap is accepted but always fails; wrapping code is not supported.
type Wrap struct {
	Target  string
	Wrapper string
}

// Unknown carries an operation kind that was not recognised when decoding.
type Unknown struct {
	Type string
}

func (AddImport) Kind() string    { return KindAddImport }
func (RemoveImport) Kind() string { return KindRemoveImport }
func (AddExport) Kind() string    { return KindAddExport }
func (AddProperty) Kind() string  { return KindAddProperty }
func (AddMethod) Kind() string    { return KindAddMethod }
func (Rename) Kind() string       { return KindRename }
func (Wrap) Kind() string         { return KindWrap }
func (u Unknown) Kind() string    { return u.Type }

func (op AddImport) validate() error {
	return requireField("moduleSpecifier", op.ModuleSpecifier)
}

func (op RemoveImport) validate() error {
	return requireField("moduleSpecifier", op.ModuleSpecifier)
}

func (op AddExport) validate() error {
	if op.Declaration == "" && op.Name == "" {
		return fmt.Errorf("missing required parameter: name or declaration")
	}
	return nil
}

func (op AddProperty) validate() error {
	if err := requireField("targetClass", op.TargetClass); err != nil {
		return err
	}
	return requireField("name", op.Name)
}

func (op AddMethod) validate() error {
	if err := requireField("targetClass", op.TargetClass); err != nil {
		return err
	}
	return requireField("name", op.Name)
}

func (op Rename) validate() error {
	if err := requireField("oldName", op.OldName); err != nil {
		return err
	}
	return requireField("newName", op.NewName)
}

func (Wrap) validate() error    { return nil }
func (Unknown) validate() error { return nil }

func requireField(field, value string) error {
	if value == "" {
		return fmt.Errorf("missing required parameter: %s", field)
	}
	return nil
}

// Validate checks every operation for required fields.
func Validate(ops []Operation) error {
	for i, op := range ops {
		if op == nil {
			return fmt.Errorf("%w: operation %d is nil", ErrInvalidOperation, i)
		}
		if err := op.validate(); err != nil {
			return fmt.Errorf("%w: operation %d (%s): %v", ErrInvalidOperation, i, op.Kind(), err)
		}
	}
	return nil
}
