package filter

import (
	"maps"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// DefaultCacheSize is the number of compiled expressions kept by Compile
const DefaultCacheSize = 64

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
}

// matchAll is used for an empty expression
type matchAll struct{}

func (matchAll) Match(map[string]any) bool { return true }
func (matchAll) Expression() string        { return "" }

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache(size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.helpers, funcs)
	}
}

// exprCompiler implements CachingCompiler for expr-based filters
type exprCompiler struct {
	helpers map[string]any
	cache   *lruCache
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		helpers: helperFunctions(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

var defaultCompiler = NewExprCompiler(WithCache(DefaultCacheSize))

// Compile compiles expression with the shared cached compiler
func Compile(expression string) (CompiledFilter, error) {
	return defaultCompiler.Compile(expression)
}

// Compile compiles an expression into an executable filter.
// An empty expression matches every record.
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return matchAll{}, nil
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(c.helpers),
		expr.AllowUndefinedVariables(), // record fields are only known at run time
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
		helpers:    c.helpers,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Size()
	}
	return 0
}

// Match evaluates the filter. Evaluation errors count as no match.
func (f *exprFilter) Match(record map[string]any) bool {
	env := make(map[string]any, len(f.helpers)+len(record))
	maps.Copy(env, f.helpers)
	maps.Copy(env, record)

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false
	}

	matched, ok := result.(bool)
	return ok && matched
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

func helperFunctions() map[string]any {
	return map[string]any{
		"contains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"startsWith": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"endsWith": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
	}
}
