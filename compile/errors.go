// Package compile lowers a parsed program into bindings and pending
// expressions registered on an engine.Program, in the two passes this
// language's design calls for: first declare every left-hand side,
// then lower every right-hand side now that every name it might
// reference already has a (possibly still-uninitialized) binding.
package compile

import "fmt"

// ErrorKind identifies which compile-time failure occurred. Each kind
// corresponds to one entry of this language's compile-error taxonomy.
type ErrorKind int

const (
	ConstantNotFound ErrorKind = iota
	FunctionNotFound
	ConstantNotFunction
	FunctionNotConstant
	DuplicateDeclaration
	BadEquation
	BadParameter
	ParamShadowsGlobal
	DuplicateParameter
	WrongNArgs
)

func (k ErrorKind) String() string {
	switch k {
	case ConstantNotFound:
		return "constant not found"
	case FunctionNotFound:
		return "function not found"
	case ConstantNotFunction:
		return "constant used as a function"
	case FunctionNotConstant:
		return "function used as a constant"
	case DuplicateDeclaration:
		return "duplicate declaration"
	case BadEquation:
		return "bad equation"
	case BadParameter:
		return "bad parameter"
	case ParamShadowsGlobal:
		return "parameter shadows a global"
	case DuplicateParameter:
		return "duplicate parameter"
	case WrongNArgs:
		return "wrong number of arguments"
	default:
		return "compile error"
	}
}

// Error is a single compile-time failure. Which of Name, Context, Got
// and Want are populated depends on Kind; the rest are left zero.
type Error struct {
	Kind    ErrorKind
	Name    string
	Context string // enclosing function name, for parameter errors
	Got     int
	Want    int
}

func (e *Error) Error() string {
	switch e.Kind {
	case ConstantNotFound:
		return fmt.Sprintf("constant not found: %s", e.Name)
	case FunctionNotFound:
		return fmt.Sprintf("function not found: %s", e.Name)
	case ConstantNotFunction:
		return fmt.Sprintf("%s is a constant, not a function", e.Name)
	case FunctionNotConstant:
		return fmt.Sprintf("%s is a function, not a constant", e.Name)
	case DuplicateDeclaration:
		return fmt.Sprintf("%s is declared more than once in this unit", e.Name)
	case BadEquation:
		return "left-hand side of '=' must be an identifier or a function call"
	case BadParameter:
		return fmt.Sprintf("parameter of %s must be a plain identifier", e.Context)
	case ParamShadowsGlobal:
		return fmt.Sprintf("parameter %s of %s shadows a global binding", e.Name, e.Context)
	case DuplicateParameter:
		return fmt.Sprintf("parameter %s repeated in %s's definition", e.Name, e.Context)
	case WrongNArgs:
		return fmt.Sprintf("%s takes %d argument(s), got %d", e.Name, e.Want, e.Got)
	default:
		return "compile error"
	}
}

// Is supports errors.Is(err, &compile.Error{Kind: ...}) comparisons by
// kind, ignoring the other fields.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}
