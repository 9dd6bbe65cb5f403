package dispmodel

import (
	"regexp"
	"strconv"
	"strings"
)

var idRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateID checks s against [A-Za-z_][A-Za-z0-9_]*.
func ValidateID(s string) *Error {
	switch {
	case s == "":
		return &Error{Kind: InvalidId, ID: s, Reason: "ids must not be empty"}
	case !idRegex.MatchString(s):
		return &Error{Kind: InvalidId, ID: s, Reason: "ids may only contain ASCII letters, digits and underscores, and must not start with a digit"}
	}
	return nil
}

func validate(s string) error {
	if err := ValidateID(s); err != nil {
		return err
	}
	return nil
}

// ID identifies any entity: a thing, tag, process, step, edge group or edge.
type ID string

type (
	ThingID       string
	EdgeGroupID   string
	EdgeID        string
	TagID         string
	ProcessID     string
	ProcessStepID string
	EntityTypeID  string
	StyleAlias    string
)

func (id ID) Validate() error            { return validate(string(id)) }
func (id ThingID) Validate() error       { return validate(string(id)) }
func (id EdgeGroupID) Validate() error   { return validate(string(id)) }
func (id EdgeID) Validate() error        { return validate(string(id)) }
func (id TagID) Validate() error         { return validate(string(id)) }
func (id ProcessID) Validate() error     { return validate(string(id)) }
func (id ProcessStepID) Validate() error { return validate(string(id)) }
func (id EntityTypeID) Validate() error  { return validate(string(id)) }
func (id StyleAlias) Validate() error    { return validate(string(id)) }

// EdgeIDFor returns the id of the index'th edge of group.
func EdgeIDFor(group EdgeGroupID, index int) EdgeID {
	return EdgeID(string(group) + "__" + strconv.Itoa(index))
}

// IdOrDefaults keys theme styles: either an entity id or one of the
// defaults keys.
type IdOrDefaults string

const (
	NodeDefaults IdOrDefaults = "node_defaults"
	EdgeDefaults IdOrDefaults = "edge_defaults"
)

func (k IdOrDefaults) Validate() error { return validate(string(k)) }

func (k IdOrDefaults) IsDefaults() bool {
	return k == NodeDefaults || k == EdgeDefaults
}

// TagIdOrDefaults keys theme_tag_things_focus.
type TagIdOrDefaults string

const TagDefaults TagIdOrDefaults = "tag_defaults"

func (k TagIdOrDefaults) Validate() error { return validate(string(k)) }

// IsReservedEntityID reports whether id is reserved for internal use.
func IsReservedEntityID(id string) bool {
	return strings.HasPrefix(id, "_") || strings.HasPrefix(id, "type_")
}
