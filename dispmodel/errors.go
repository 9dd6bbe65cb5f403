package dispmodel

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrorKind discriminates fatal errors.
type ErrorKind string

const (
	InvalidId      ErrorKind = "InvalidId"
	ParseFailure   ErrorKind = "ParseFailure"
	HierarchyCycle ErrorKind = "HierarchyCycle"
	DuplicateKey   ErrorKind = "DuplicateKey"
)

// Error is a fatal problem with the input. A diagram with an Error is not rendered.
type Error struct {
	Kind ErrorKind
	// ID is the offending id for InvalidId, HierarchyCycle and DuplicateKey.
	ID string
	// Container names the map a DuplicateKey was found in.
	Container string
	Reason    string
	// Line and Column are 1-based; zero when unknown.
	Line   int
	Column int
}

func (e *Error) Error() string {
	var sb strings.Builder
	if e.Line > 0 {
		fmt.Fprintf(&sb, "%d:%d: ", e.Line, e.Column)
	}
	switch e.Kind {
	case InvalidId:
		fmt.Fprintf(&sb, "invalid id %q: %s", e.ID, e.Reason)
	case HierarchyCycle:
		fmt.Fprintf(&sb, "thing %q is its own ancestor in thing_hierarchy", e.ID)
	case DuplicateKey:
		container := e.Container
		if container == "" {
			container = "document"
		}
		fmt.Fprintf(&sb, "duplicate key %q in %s", e.ID, container)
	default:
		sb.WriteString(e.Reason)
	}
	return sb.String()
}

func (e *Error) at(n *yaml.Node) *Error {
	if n != nil && e.Line == 0 {
		e.Line = n.Line
		e.Column = n.Column
	}
	return e
}

func parseFailure(n *yaml.Node, format string, v ...interface{}) *Error {
	return (&Error{Kind: ParseFailure, Reason: fmt.Sprintf(format, v...)}).at(n)
}

var yamlLineRegex = regexp.MustCompile(`line (\d+): `)

// fromYAMLError converts errors from gopkg.in/yaml.v3 into a ParseFailure,
// recovering the line number from the message.
func fromYAMLError(err error) *Error {
	msg := strings.TrimPrefix(err.Error(), "yaml: ")
	msg = strings.TrimPrefix(msg, "unmarshal errors:\n  ")
	e := &Error{Kind: ParseFailure, Reason: msg}
	if m := yamlLineRegex.FindStringSubmatchIndex(msg); m != nil {
		e.Line, _ = strconv.Atoi(msg[m[2]:m[3]])
		e.Column = 1
		e.Reason = msg[:m[0]] + msg[m[1]:]
	}
	return e
}

// IssueKind discriminates recoverable diagnostics.
type IssueKind string

const (
	UnresolvedReference     IssueKind = "UnresolvedReference"
	StyleAliasCycle         IssueKind = "StyleAliasCycle"
	SequenceTooShort        IssueKind = "SequenceTooShort"
	ThemeAttrUnknown        IssueKind = "ThemeAttrUnknown"
	MeasurementOverflow     IssueKind = "MeasurementOverflow"
	DuplicateHierarchyEntry IssueKind = "DuplicateHierarchyEntry"
	DuplicateEdgeGroup      IssueKind = "DuplicateEdgeGroup"
	ReservedId              IssueKind = "ReservedId"
)

// Issue is a recoverable diagnostic. IDs is the chain of ids needed to
// locate the problem, outermost first.
type Issue struct {
	Kind    IssueKind `json:"kind" yaml:"kind"`
	Message string    `json:"message" yaml:"message"`
	IDs     []string  `json:"ids,omitempty" yaml:"ids,omitempty"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Kind, i.Message)
}

// Issues accumulates diagnostics in discovery order.
type Issues []Issue

func (is *Issues) Add(kind IssueKind, ids []string, format string, v ...interface{}) {
	*is = append(*is, Issue{Kind: kind, Message: fmt.Sprintf(format, v...), IDs: ids})
}

// Of returns the issues of one kind.
func (is Issues) Of(kind IssueKind) Issues {
	var out Issues
	for _, i := range is {
		if i.Kind == kind {
			out = append(out, i)
		}
	}
	return out
}
