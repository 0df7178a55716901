package storage

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDataUnavailable marks failures to reach or read the backing
	// database. Surfaced to the caller, never retried here.
	ErrDataUnavailable = errors.New("data unavailable")

	// ErrMalformedQuery marks a descriptor referencing columns or operations
	// outside the livros schema. Always a programming error.
	ErrMalformedQuery = errors.New("malformed query")
)

// livrosColumns is the schema the descriptor is validated against.
var livrosColumns = map[string]bool{
	"titulo":               true,
	"autor":                true,
	"tipo":                 true,
	"preco_pago_cents":     true,
	"ano_aquisicao":        true,
	"ano_primeira_leitura": true,
	"copia_no_acervo":      true,
}

// AggFunc is an aggregate applied to a selected column.
type AggFunc int

const (
	AggNone AggFunc = iota
	AggCount
	AggSum
	AggAvg
)

// Expr is one selected expression: a bare column or an aggregate over one.
// AggCount with an empty column compiles to count(*).
type Expr struct {
	Column string
	Agg    AggFunc
}

// PredicateOp is the comparison kind of a Predicate.
type PredicateOp int

const (
	OpNotNull PredicateOp = iota
	OpEq
	OpIsFalse
	OpGtZero
)

// Predicate is one condition on a column. OpEq binds Arg as a query
// parameter; values never end up interpolated into the statement text.
type Predicate struct {
	Column string
	Op     PredicateOp
	Arg    any
}

// Query is the declarative read descriptor the repository accepts. It is
// the only contract toward the storage boundary: named columns, optional
// grouping, predicates, and ordering, nothing free-form.
type Query struct {
	Select   []Expr
	Where    []Predicate
	GroupBy  string
	OrderBy  string
	Desc     bool
	Distinct bool
}

// Compile validates the descriptor against the livros schema and renders it
// to a parameterized SELECT with its bound arguments.
func (q Query) Compile() (string, []any, error) {
	if len(q.Select) == 0 {
		return "", nil, fmt.Errorf("%w: empty select list", ErrMalformedQuery)
	}
	sel := make([]string, len(q.Select))
	for i, e := range q.Select {
		s, err := e.render()
		if err != nil {
			return "", nil, err
		}
		sel[i] = s
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	if q.Distinct {
		sb.WriteString("DISTINCT ")
	}
	sb.WriteString(strings.Join(sel, ", "))
	sb.WriteString(" FROM livros")

	var args []any
	if len(q.Where) > 0 {
		conds := make([]string, len(q.Where))
		for i, p := range q.Where {
			if !livrosColumns[p.Column] {
				return "", nil, fmt.Errorf("%w: unknown column %q", ErrMalformedQuery, p.Column)
			}
			switch p.Op {
			case OpNotNull:
				conds[i] = p.Column + " IS NOT NULL"
			case OpEq:
				conds[i] = p.Column + " = ?"
				args = append(args, p.Arg)
			case OpIsFalse:
				conds[i] = p.Column + " = 0"
			case OpGtZero:
				conds[i] = p.Column + " > 0"
			default:
				return "", nil, fmt.Errorf("%w: unsupported predicate op %d", ErrMalformedQuery, p.Op)
			}
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conds, " AND "))
	}

	if q.GroupBy != "" {
		if !livrosColumns[q.GroupBy] {
			return "", nil, fmt.Errorf("%w: unknown group-by column %q", ErrMalformedQuery, q.GroupBy)
		}
		sb.WriteString(" GROUP BY ")
		sb.WriteString(q.GroupBy)
	}

	if q.OrderBy != "" {
		if !livrosColumns[q.OrderBy] {
			return "", nil, fmt.Errorf("%w: unknown order-by column %q", ErrMalformedQuery, q.OrderBy)
		}
		sb.WriteString(" ORDER BY ")
		sb.WriteString(q.OrderBy)
		if q.Desc {
			sb.WriteString(" DESC")
		} else {
			sb.WriteString(" ASC")
		}
	}

	return sb.String(), args, nil
}

func (e Expr) render() (string, error) {
	switch e.Agg {
	case AggNone:
		if !livrosColumns[e.Column] {
			return "", fmt.Errorf("%w: unknown column %q", ErrMalformedQuery, e.Column)
		}
		return e.Column, nil
	case AggCount:
		if e.Column == "" {
			return "count(*)", nil
		}
		if !livrosColumns[e.Column] {
			return "", fmt.Errorf("%w: unknown column %q", ErrMalformedQuery, e.Column)
		}
		return "count(" + e.Column + ")", nil
	case AggSum, AggAvg:
		if !livrosColumns[e.Column] {
			return "", fmt.Errorf("%w: unknown column %q", ErrMalformedQuery, e.Column)
		}
		fn := "sum"
		if e.Agg == AggAvg {
			fn = "avg"
		}
		return fn + "(" + e.Column + ")", nil
	default:
		return "", fmt.Errorf("%w: unsupported aggregate %d", ErrMalformedQuery, e.Agg)
	}
}
