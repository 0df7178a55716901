package storage

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestQueryCompile(t *testing.T) {
	cases := []struct {
		name     string
		query    Query
		wantSQL  string
		wantArgs []any
	}{
		{
			name: "plain select",
			query: Query{
				Select: []Expr{{Column: "titulo"}, {Column: "autor"}},
			},
			wantSQL: "SELECT titulo, autor FROM livros",
		},
		{
			name: "group by with count and order",
			query: Query{
				Select:  []Expr{{Column: "autor"}, {Agg: AggCount}},
				GroupBy: "autor",
				OrderBy: "autor",
			},
			wantSQL: "SELECT autor, count(*) FROM livros GROUP BY autor ORDER BY autor ASC",
		},
		{
			name: "not-null filter descending",
			query: Query{
				Select:  []Expr{{Column: "titulo"}, {Column: "ano_primeira_leitura"}},
				Where:   []Predicate{{Column: "ano_primeira_leitura", Op: OpNotNull}},
				OrderBy: "ano_primeira_leitura",
				Desc:    true,
			},
			wantSQL: "SELECT titulo, ano_primeira_leitura FROM livros" +
				" WHERE ano_primeira_leitura IS NOT NULL" +
				" ORDER BY ano_primeira_leitura DESC",
		},
		{
			name: "equality binds a parameter",
			query: Query{
				Select: []Expr{{Column: "preco_pago_cents", Agg: AggAvg}},
				Where: []Predicate{
					{Column: "tipo", Op: OpEq, Arg: "Digital"},
					{Column: "preco_pago_cents", Op: OpGtZero},
				},
			},
			wantSQL: "SELECT avg(preco_pago_cents) FROM livros" +
				" WHERE tipo = ? AND preco_pago_cents > 0",
			wantArgs: []any{"Digital"},
		},
		{
			name: "distinct select",
			query: Query{
				Select:   []Expr{{Column: "tipo"}},
				Distinct: true,
				OrderBy:  "tipo",
			},
			wantSQL: "SELECT DISTINCT tipo FROM livros ORDER BY tipo ASC",
		},
		{
			name: "boolean false filter",
			query: Query{
				Select: []Expr{{Column: "titulo"}, {Column: "autor"}},
				Where:  []Predicate{{Column: "copia_no_acervo", Op: OpIsFalse}},
			},
			wantSQL: "SELECT titulo, autor FROM livros WHERE copia_no_acervo = 0",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sql, args, err := tc.query.Compile()
			if err != nil {
				t.Fatalf("Compile() error: %v", err)
			}
			if sql != tc.wantSQL {
				t.Fatalf("sql = %q, want %q", sql, tc.wantSQL)
			}
			if !reflect.DeepEqual(args, tc.wantArgs) {
				t.Fatalf("args = %v, want %v", args, tc.wantArgs)
			}
		})
	}
}

func TestQueryCompileRejectsUnknownColumns(t *testing.T) {
	cases := []struct {
		name  string
		query Query
	}{
		{"empty select", Query{}},
		{"unknown select column", Query{Select: []Expr{{Column: "isbn"}}}},
		{"unknown aggregate column", Query{Select: []Expr{{Column: "isbn", Agg: AggSum}}}},
		{"unknown where column", Query{
			Select: []Expr{{Column: "titulo"}},
			Where:  []Predicate{{Column: "editora", Op: OpNotNull}},
		}},
		{"unknown group-by", Query{Select: []Expr{{Column: "titulo"}}, GroupBy: "editora"}},
		{"unknown order-by", Query{Select: []Expr{{Column: "titulo"}}, OrderBy: "editora"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := tc.query.Compile()
			if !errors.Is(err, ErrMalformedQuery) {
				t.Fatalf("expected ErrMalformedQuery, got %v", err)
			}
		})
	}
}

// Values must only ever travel as bound arguments; a malicious filter value
// must not reach the statement text.
func TestQueryCompileNeverInterpolatesValues(t *testing.T) {
	hostile := "Digital'; DROP TABLE livros; --"
	sql, args, err := Query{
		Select: []Expr{{Column: "titulo"}},
		Where:  []Predicate{{Column: "tipo", Op: OpEq, Arg: hostile}},
	}.Compile()
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	if strings.Contains(sql, hostile) {
		t.Fatalf("value interpolated into statement: %q", sql)
	}
	if len(args) != 1 || args[0] != hostile {
		t.Fatalf("args = %v, want the raw value bound once", args)
	}
}
