package compile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LordHavelockVetinari/recursive-calculator/compile"
	"github.com/LordHavelockVetinari/recursive-calculator/engine"
	"github.com/LordHavelockVetinari/recursive-calculator/parse"
)

// compileSource parses and compiles src against a fresh program,
// returning the compile error (if any). Parse errors are surfaced via
// require so a broken test fixture fails loudly rather than silently
// passing.
func compileSource(t *testing.T, src string) (*engine.Program, error) {
	t.Helper()
	prog, err := parse.Parse(src)
	require.NoError(t, err)
	ep := engine.NewProgram()
	return ep, compile.Compile(ep, prog)
}

func asCompileError(t *testing.T, err error) *compile.Error {
	t.Helper()
	require.Error(t, err)
	ce, ok := err.(*compile.Error)
	require.True(t, ok, "expected *compile.Error, got %T", err)
	return ce
}

func TestCompileSimpleConstantAndEvaluate(t *testing.T) {
	ep, err := compileSource(t, "x = 3\nx + 1")
	require.NoError(t, err)
	_, ok := ep.LookupConstant("x")
	assert.True(t, ok)
}

func TestCompileFunctionDefinitionAndCall(t *testing.T) {
	ep, err := compileSource(t, "double(n) = n * 2\ndouble(21)")
	require.NoError(t, err)
	ref, nParams, ok := ep.LookupFunction("double")
	require.True(t, ok)
	assert.Equal(t, 1, nParams)
	_, resolved := ref.Resolve()
	assert.True(t, resolved)
}

func TestCompileChainedAssignmentDeclaresBothTargets(t *testing.T) {
	ep, err := compileSource(t, "x = f(y) = 3")
	require.NoError(t, err)
	_, ok := ep.LookupConstant("x")
	assert.True(t, ok)
	_, nParams, ok := ep.LookupFunction("f")
	assert.True(t, ok)
	assert.Equal(t, 1, nParams)
}

func TestConstantNotFound(t *testing.T) {
	_, err := compileSource(t, "y")
	ce := asCompileError(t, err)
	assert.Equal(t, compile.ConstantNotFound, ce.Kind)
	assert.Equal(t, "y", ce.Name)
}

func TestFunctionNotFound(t *testing.T) {
	_, err := compileSource(t, "f(1)")
	ce := asCompileError(t, err)
	assert.Equal(t, compile.FunctionNotFound, ce.Kind)
	assert.Equal(t, "f", ce.Name)
}

func TestConstantNotFunction(t *testing.T) {
	_, err := compileSource(t, "x = 1\nx(2)")
	ce := asCompileError(t, err)
	assert.Equal(t, compile.ConstantNotFunction, ce.Kind)
	assert.Equal(t, "x", ce.Name)
}

func TestFunctionNotConstant(t *testing.T) {
	_, err := compileSource(t, "f(n) = n\nf")
	ce := asCompileError(t, err)
	assert.Equal(t, compile.FunctionNotConstant, ce.Kind)
	assert.Equal(t, "f", ce.Name)
}

func TestDuplicateDeclaration(t *testing.T) {
	_, err := compileSource(t, "a = a = 1")
	ce := asCompileError(t, err)
	assert.Equal(t, compile.DuplicateDeclaration, ce.Kind)
	assert.Equal(t, "a", ce.Name)
}

func TestDuplicateDeclarationAcrossFunctionAndConstantTarget(t *testing.T) {
	// f(x) declares function "f"; the chained "f" target then
	// declares a constant also named "f" in the same unit.
	_, err := compileSource(t, "f(x) = f = 1")
	ce := asCompileError(t, err)
	assert.Equal(t, compile.DuplicateDeclaration, ce.Kind)
	assert.Equal(t, "f", ce.Name)
}

func TestBadParameterRejectsNonIdentifierArgument(t *testing.T) {
	_, err := compileSource(t, "f(1) = 2")
	ce := asCompileError(t, err)
	assert.Equal(t, compile.BadParameter, ce.Kind)
	assert.Equal(t, "f", ce.Context)
}

func TestParamShadowsGlobal(t *testing.T) {
	_, err := compileSource(t, "x = 1\nf(x) = x + 1")
	ce := asCompileError(t, err)
	assert.Equal(t, compile.ParamShadowsGlobal, ce.Kind)
	assert.Equal(t, "x", ce.Name)
	assert.Equal(t, "f", ce.Context)
}

func TestParamMayShareNameWithItsOwnFunction(t *testing.T) {
	// f's own name is declared globally in pass 1, but a parameter
	// named f is not shadowing a *different* global: it is the
	// function binding itself, so this is allowed.
	_, err := compileSource(t, "f(f) = f + 1")
	require.NoError(t, err)
}

func TestDuplicateParameter(t *testing.T) {
	_, err := compileSource(t, "f(x, x) = x")
	ce := asCompileError(t, err)
	assert.Equal(t, compile.DuplicateParameter, ce.Kind)
	assert.Equal(t, "x", ce.Name)
	assert.Equal(t, "f", ce.Context)
}

func TestWrongNArgsTooFew(t *testing.T) {
	_, err := compileSource(t, "f(x, y) = x + y\nf(1)")
	ce := asCompileError(t, err)
	assert.Equal(t, compile.WrongNArgs, ce.Kind)
	assert.Equal(t, "f", ce.Name)
	assert.Equal(t, 2, ce.Want)
	assert.Equal(t, 1, ce.Got)
}

func TestWrongNArgsTooMany(t *testing.T) {
	_, err := compileSource(t, "f(x) = x\nf(1, 2)")
	ce := asCompileError(t, err)
	assert.Equal(t, compile.WrongNArgs, ce.Kind)
	assert.Equal(t, 1, ce.Want)
	assert.Equal(t, 2, ce.Got)
}

func TestCompileErrorMessagesAreHumanReadable(t *testing.T) {
	var err error = &compile.Error{Kind: compile.WrongNArgs, Name: "f", Want: 2, Got: 1}
	assert.Equal(t, "f takes 2 argument(s), got 1", err.Error())

	err = &compile.Error{Kind: compile.ParamShadowsGlobal, Name: "x", Context: "f"}
	assert.Equal(t, "parameter x of f shadows a global binding", err.Error())
}

func TestCompileErrorIsMatchesByKindOnly(t *testing.T) {
	a := &compile.Error{Kind: compile.ConstantNotFound, Name: "x"}
	b := &compile.Error{Kind: compile.ConstantNotFound, Name: "y"}
	assert.True(t, a.Is(b))

	c := &compile.Error{Kind: compile.FunctionNotFound, Name: "x"}
	assert.False(t, a.Is(c))
}

func TestForwardReferenceBetweenConstantsResolves(t *testing.T) {
	// Pass 1 declares both names before pass 2 lowers either body, so
	// a earlier in the unit may reference b defined later in the
	// same unit.
	_, err := compileSource(t, "a = b + 1\nb = 2")
	require.NoError(t, err)
}

func TestRecursiveFunctionReferencesItself(t *testing.T) {
	_, err := compileSource(t, "f(n) = f(n - 1)")
	require.NoError(t, err)
}
