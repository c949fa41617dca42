package transformer

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/logger"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/parser"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/source"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/syntax"
)

// Failure describes one operation that could not be applied.
type Failure struct {
	Index   int    `json:"index" yaml:"index"`
	Kind    string `json:"kind" yaml:"kind"`
	Message string `json:"message" yaml:"message"`
	Err     error  `json:"-" yaml:"-"`
}

// Result is the outcome of a batch. AppliedOperations plus the number of
// failures always equals the number of operations, and Success is true
// exactly when nothing failed.
type Result struct {
	Success           bool      `json:"success" yaml:"success"`
	Source            string    `json:"source" yaml:"source"`
	AppliedOperations int       `json:"appliedOperations" yaml:"appliedOperations"`
	FailedOperations  []Failure `json:"failedOperations" yaml:"failedOperations"`
}

// Transformer applies operation batches.
type Transformer struct {
	logger  logger.Logger
	dialect syntax.Dialect
}

// New creates a TypeScript Transformer with a silent logger.
func New() *Transformer {
	return &Transformer{logger: logger.NewSilentLogger(), dialect: syntax.TypeScript}
}

// WithLogger returns a copy that logs each operation outcome to l.
func (t *Transformer) WithLogger(l logger.Logger) *Transformer {
	c := *t
	c.logger = l
	return &c
}

// WithDialect returns a copy that parses with the given grammar. TSX
// sources must use syntax.TSX or JSX is misread as type assertions.
func (t *Transformer) WithDialect(d syntax.Dialect) *Transformer {
	c := *t
	c.dialect = d
	return &c
}

// Transform applies ops to text with a default Transformer.
func Transform(text string, ops []Operation) (*Result, error) {
	return New().Transform(text, ops)
}

// TransformFile reads path and transforms its contents with the grammar
// its extension selects. The file is not written.
func TransformFile(path string, ops []Operation) (*Result, error) {
	return New().TransformFile(path, ops)
}

// TransformFile is the package-level TransformFile with t's logger. The
// dialect comes from path, not from t.
func (t *Transformer) TransformFile(path string, ops []Operation) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return t.WithDialect(syntax.DialectFor(path)).Transform(string(data), ops)
}

// Transform applies ops in order. Every operation is checked for required
// fields first and an error wrapping ErrInvalidOperation is returned, with
// no edits, if any is malformed. After that, operations that cannot be
// applied are recorded in FailedOperations and the batch continues; the
// returned source reflects every operation that succeeded.
func (t *Transformer) Transform(text string, ops []Operation) (*Result, error) {
	if err := Validate(ops); err != nil {
		return nil, err
	}

	result := &Result{Source: text, FailedOperations: []Failure{}}
	for i, op := range ops {
		next, err := t.apply(result.Source, op)
		if err != nil {
			t.logger.Warn("operation failed", logger.F("index", i), logger.F("kind", op.Kind()), logger.F("error", err))
			result.FailedOperations = append(result.FailedOperations, Failure{
				Index:   i,
				Kind:    op.Kind(),
				Message: err.Error(),
				Err:     err,
			})
			continue
		}
		t.logger.Debug("operation applied", logger.F("index", i), logger.F("kind", op.Kind()))
		result.Source = next
		result.AppliedOperations++
	}
	result.Success = len(result.FailedOperations) == 0
	return result, nil
}

func (t *Transformer) apply(text string, op Operation) (string, error) {
	doc := syntax.ParseDialect(text, t.dialect)
	defer doc.Close()
	f := &file{doc: doc, text: text, model: parser.FromDocument(doc)}

	var err error
	switch op := op.(type) {
	case AddImport:
		err = f.addImport(op)
	case RemoveImport:
		err = f.removeImport(op)
	case AddExport:
		err = f.addExport(op)
	case AddProperty:
		err = f.addProperty(op)
	case AddMethod:
		err = f.addMethod(op)
	case Rename:
		err = f.rename(op)
	case Wrap:
		err = fmt.Errorf("wrap operation %w", ErrNotImplemented)
	case Unknown:
		err = fmt.Errorf("%w: %s", ErrUnknownOperation, op.Type)
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownOperation, op.Kind())
	}
	if err != nil {
		return text, err
	}
	return f.apply(), nil
}

// IsNotFound reports whether a failure was caused by a missing target.
func (f Failure) IsNotFound() bool {
	return errors.Is(f.Err, ErrNotFound)
}

// file is the working state of one operation: the parsed document, its
// declaration model, and the edits collected so far.
type file struct {
	doc   *syntax.Document
	text  string
	model *source.AnalysisResult
	edits []edit
}

// edit replaces text[start:end] with repl.
type edit struct {
	start, end int
	repl       string
}

func (f *file) replace(start, end int, repl string) {
	f.edits = append(f.edits, edit{start: start, end: end, repl: repl})
}

func (f *file) insert(at int, repl string) {
	f.replace(at, at, repl)
}

// apply splices the collected edits into the text, last first, so earlier
// offsets stay valid. Insertions at the same offset keep the order they
// were recorded in.
func (f *file) apply() string {
	order := make([]int, len(f.edits))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		ea, eb := f.edits[order[a]], f.edits[order[b]]
		if ea.start != eb.start {
			return ea.start > eb.start
		}
		return order[a] > order[b]
	})
	edits := make([]edit, len(order))
	for i, idx := range order {
		edits[i] = f.edits[idx]
	}

	out := f.text
	for _, e := range edits {
		out = out[:e.start] + e.repl + out[e.end:]
	}
	return out
}
