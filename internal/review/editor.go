package review

import (
	"fmt"
	"sort"
)

type EditPhase int

const (
	PhaseViewing EditPhase = iota
	PhaseEditing
	PhaseSaving
)

type fieldEdit struct {
	phase    EditPhase
	draft    string
	original string
}

// Editor tracks the edit lifecycle of every field on one record view. Fields
// move Viewing -> Editing -> Saving independently of each other; a failed
// save drops the field back to Editing with its draft intact so the reviewer
// can retry, and cancelling restores the snapshot taken when editing began.
//
// Not safe for concurrent use; the console processes one interaction at a
// time.
type Editor struct {
	fields map[string]*fieldEdit
}

func NewEditor() *Editor {
	return &Editor{fields: make(map[string]*fieldEdit)}
}

func (e *Editor) Phase(field string) EditPhase {
	if edit, ok := e.fields[field]; ok {
		return edit.phase
	}
	return PhaseViewing
}

// BeginEdit snapshots the current value and opens the field for editing. It
// has no effect on a field already open.
func (e *Editor) BeginEdit(field, current string) {
	if _, ok := e.fields[field]; ok {
		return
	}
	e.fields[field] = &fieldEdit{
		phase:    PhaseEditing,
		draft:    current,
		original: current,
	}
}

func (e *Editor) SetDraft(field, value string) error {
	edit, ok := e.fields[field]
	if !ok || edit.phase != PhaseEditing {
		return fmt.Errorf("field %s is not open for editing", field)
	}
	edit.draft = value
	return nil
}

func (e *Editor) Draft(field string) (string, bool) {
	if edit, ok := e.fields[field]; ok {
		return edit.draft, true
	}
	return "", false
}

// CancelEdit closes the field and returns the pre-edit snapshot.
func (e *Editor) CancelEdit(field string) (string, bool) {
	edit, ok := e.fields[field]
	if !ok || edit.phase == PhaseSaving {
		return "", false
	}
	delete(e.fields, field)
	return edit.original, true
}

func (e *Editor) beginSave(field string) (string, error) {
	edit, ok := e.fields[field]
	if !ok {
		return "", fmt.Errorf("field %s is not open for editing", field)
	}
	if edit.phase == PhaseSaving {
		return "", fmt.Errorf("field %s already has a save in flight", field)
	}
	edit.phase = PhaseSaving
	return edit.draft, nil
}

func (e *Editor) finishSave(field string, saved bool) {
	edit, ok := e.fields[field]
	if !ok {
		return
	}
	if saved {
		delete(e.fields, field)
		return
	}
	edit.phase = PhaseEditing
}

// Editing lists the fields currently open, sorted for stable output.
func (e *Editor) Editing() []string {
	fields := make([]string, 0, len(e.fields))
	for field := range e.fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}
