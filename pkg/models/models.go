package models

import (
	"fmt"
)

// EntityType identifies one of the three record kinds in the publication data.
// The integer order fixes the node-id block order used by the graph builder.
type EntityType int

const (
	Author EntityType = iota
	Paper
	Conference
	numEntityTypes
)

// NumEntityTypes is the number of entity kinds the builder partitions over.
const NumEntityTypes = int(numEntityTypes)

func (t EntityType) String() string {
	switch t {
	case Author:
		return "author"
	case Paper:
		return "paper"
	case Conference:
		return "conference"
	}
	return fmt.Sprintf("EntityType(%d)", int(t))
}

// Entity is a single row of an entity table. Native IDs are unique only
// within their entity type.
type Entity struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// LabeledEntity couples an entity ID with its ground-truth community label.
type LabeledEntity struct {
	ID    int    `json:"id"`
	Label int    `json:"label"`
	Name  string `json:"name"`
}

// Relation is one row of a cross-type relationship table, e.g. a
// paper-author or paper-conference link.
type Relation struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// ValidationError represents structured validation errors
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

func (ve ValidationError) Error() string {
	if ve.Value != "" {
		return fmt.Sprintf("validation error in field '%s': %s (value: %s)", ve.Field, ve.Message, ve.Value)
	}
	return fmt.Sprintf("validation error in field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}
	return fmt.Sprintf("%d validation errors: %s (and %d more)", len(ve), ve[0].Error(), len(ve)-1)
}
