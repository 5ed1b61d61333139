// Package runner simulates executing a Python snippet.
//
// There is no interpreter here. The runner inspects the submitted text with a
// fixed, ordered set of pattern rules and returns one of a small set of
// canned outcomes. It never evaluates arithmetic, never tracks variable
// bindings, and cannot detect most real errors. The rest of the system leans
// on its contract anyway: a non-empty Outcome.Error is the signal that
// triggers the AI suggestion path, so the canned strings are load-bearing.
package runner

import (
	"regexp"
	"strings"
)

// Canned outputs returned by the rule table. The NameError string mirrors
// what CPython prints for an undefined name.
const (
	OutputFunctionDefined = "Function defined successfully"
	OutputLoopExecuted    = "Loop executed successfully"
	OutputGenericSuccess  = "Code executed successfully"
	ErrorPritnUndefined   = "NameError: name 'pritn' is not defined"
)

// Outcome is the result of a simulated run. Exactly one of Output or Error
// is set; use the success/failure constructors to keep that invariant.
type Outcome struct {
	Output string
	Error  string
}

// Failed reports whether the run produced an error.
func (o Outcome) Failed() bool {
	return o.Error != ""
}

func success(output string) Outcome { return Outcome{Output: output} }
func failure(err string) Outcome    { return Outcome{Error: err} }

// printArg captures the first argument of a print(...) call, non-greedy so
// only the first closing paren ends the match.
var printArg = regexp.MustCompile(`print\((.*?)\)`)

// quoteStripper removes single and double quote characters from the
// extracted print argument, mimicking "echo the literal" behaviour.
var quoteStripper = strings.NewReplacer(`'`, "", `"`, "")

// rule pairs a predicate with the outcome it produces. Rules are evaluated
// in order; the first match wins.
type rule struct {
	match   func(code string) bool
	outcome func(code string) Outcome
}

var rules = []rule{
	{
		// A print call with an extractable argument echoes that argument,
		// quotes stripped. "print(" without a closing paren falls through.
		match: func(code string) bool {
			return strings.Contains(code, "print(") && printArg.MatchString(code)
		},
		outcome: func(code string) Outcome {
			arg := printArg.FindStringSubmatch(code)[1]
			return success(quoteStripper.Replace(arg))
		},
	},
	{
		// The one typo the simulator knows about.
		match: func(code string) bool {
			return strings.Contains(code, "pritn")
		},
		outcome: func(code string) Outcome {
			return failure(ErrorPritnUndefined)
		},
	},
	{
		match: func(code string) bool {
			return strings.Contains(code, "def ")
		},
		outcome: func(code string) Outcome {
			return success(OutputFunctionDefined)
		},
	},
	{
		match: func(code string) bool {
			return strings.Contains(code, "for ") || strings.Contains(code, "while ")
		},
		outcome: func(code string) Outcome {
			return success(OutputLoopExecuted)
		},
	},
}

// Run evaluates code against the rule table and returns the first matching
// outcome, or the generic success outcome when nothing matches. It is pure
// and deterministic: identical input always yields an identical Outcome.
func Run(code string) Outcome {
	for _, r := range rules {
		if r.match(code) {
			return r.outcome(code)
		}
	}
	return success(OutputGenericSuccess)
}
