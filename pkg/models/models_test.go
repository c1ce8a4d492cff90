package models

import (
	"strings"
	"testing"
)

func TestEntityTypeString(t *testing.T) {
	cases := map[EntityType]string{
		Author:        "author",
		Paper:         "paper",
		Conference:    "conference",
		EntityType(9): "EntityType(9)",
	}

	for entityType, want := range cases {
		if got := entityType.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(entityType), got, want)
		}
	}
}

func TestValidationErrors(t *testing.T) {
	t.Run("SingleError", func(t *testing.T) {
		err := ValidationError{Field: "paper.id", Message: "duplicate native id", Value: "3"}
		if !strings.Contains(err.Error(), "paper.id") || !strings.Contains(err.Error(), "3") {
			t.Errorf("unexpected message: %s", err.Error())
		}
	})

	t.Run("Collection", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "a", Message: "first"},
			{Field: "b", Message: "second"},
			{Field: "c", Message: "third"},
		}
		msg := errs.Error()
		if !strings.Contains(msg, "3 validation errors") || !strings.Contains(msg, "and 2 more") {
			t.Errorf("unexpected message: %s", msg)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		if ValidationErrors(nil).Error() != "no validation errors" {
			t.Error("unexpected message for empty collection")
		}
	})
}
