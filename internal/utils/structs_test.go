package utils

import (
	"errors"
	"reflect"
	"testing"
)

type fixture struct {
	ID     string `db:"id"`
	Name   string `db:"name"`
	Score  float64
	Hidden string `db:"-"`
	note   string `db:"note"`
}

func TestStructTagValues(t *testing.T) {
	want := []string{"id", "name"}

	if got := StructTagValues(fixture{note: "x"}); !reflect.DeepEqual(got, want) {
		t.Fatalf("StructTagValues = %v, want %v", got, want)
	}
	if got := StructTagValues(&fixture{}); !reflect.DeepEqual(got, want) {
		t.Fatalf("StructTagValues(ptr) = %v, want %v", got, want)
	}
}

func TestStructToMap(t *testing.T) {
	input := fixture{ID: "abc", Name: "test", Score: 1.5, Hidden: "no"}

	got := StructToMap(input)
	want := map[string]any{"id": "abc", "name": "test"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("StructToMap = %v, want %v", got, want)
	}
}

func TestStructToMapSubset(t *testing.T) {
	input := fixture{ID: "abc", Name: "test"}

	got := StructToMapSubset(input, "name", "missing")
	want := map[string]any{"name": "test"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("StructToMapSubset = %v, want %v", got, want)
	}
}

func TestErrorWrapOrNil(t *testing.T) {
	if err := ErrorWrapOrNil(nil, "context"); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	base := errors.New("boom")
	wrapped := ErrorWrapOrNil(base, "context")
	if !errors.Is(wrapped, base) {
		t.Fatalf("wrapped error lost its cause: %v", wrapped)
	}
	if wrapped.Error() != "context: boom" {
		t.Fatalf("unexpected message %q", wrapped.Error())
	}

	if err := ErrorWrapOrNil(base, ""); err != base {
		t.Fatalf("empty message must return the error unchanged, got %v", err)
	}
}
