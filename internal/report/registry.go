package report

import (
	"fmt"

	"github.com/quckapp/audit/model"
)

// Registry maps report types to their generators. It is built once at
// startup and read-only afterwards, so concurrent report generation needs
// no locking around lookups.
type Registry struct {
	generators map[model.ReportType]Generator
}

// NewRegistry builds the lookup table. Registering two generators for the
// same report type is a configuration error.
func NewRegistry(generators ...Generator) (*Registry, error) {
	table := make(map[model.ReportType]Generator, len(generators))
	for _, gen := range generators {
		if _, dup := table[gen.Type()]; dup {
			return nil, fmt.Errorf("duplicate generator registered for report type %s", gen.Type())
		}
		table[gen.Type()] = gen
	}
	return &Registry{generators: table}, nil
}

// Lookup returns the generator serving the report type.
func (r *Registry) Lookup(t model.ReportType) (Generator, error) {
	gen, ok := r.generators[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidReportType, t)
	}
	return gen, nil
}
