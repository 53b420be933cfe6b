package note

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

type Predicate func(Note) bool

func All(Note) bool { return true }

func ImportantOnly(n Note) bool { return n.Important }

// CompileQuery compiles a boolean expr-lang expression over a note. The
// expression sees the variables id, content and important, e.g.
//
//	important && content contains "milk"
func CompileQuery(src string) (Predicate, error) {
	if src == "" {
		return nil, fmt.Errorf("query must not be empty")
	}

	program, err := expr.Compile(src, expr.Env(queryEnv(Note{})), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("failed to compile query %q: %w", src, err)
	}

	return func(n Note) bool {
		return runQuery(program, n)
	}, nil
}

func runQuery(program *vm.Program, n Note) bool {
	out, err := expr.Run(program, queryEnv(n))
	if err != nil {
		return false
	}
	matched, ok := out.(bool)
	return ok && matched
}

func queryEnv(n Note) map[string]any {
	return map[string]any{
		"id":        string(n.ID),
		"content":   n.Content,
		"important": n.Important,
	}
}
