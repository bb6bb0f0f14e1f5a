package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/rsehgal/adaptest/internal/ui/theme"
)

var optionLabels = []string{"A", "B", "C", "D", "E", "F"}

// OptionPicker renders a multiple-choice question's options. Unlike a
// quiz with a local answer key, the correct option is unknown until the
// server grades the submission, so the picker has two phases: selecting
// and graded.
type OptionPicker struct {
	Options  []string
	Selected int
	graded   bool
	correct  string
	chosen   string
	locked   bool
}

// NewOptionPicker creates a picker over the given option texts.
func NewOptionPicker(options []string) OptionPicker {
	return OptionPicker{Options: options}
}

// Init returns nil (no initial command).
func (o OptionPicker) Init() tea.Cmd {
	return nil
}

// Update handles navigation. Selection is ignored while locked
// (submission in flight) or after grading.
func (o OptionPicker) Update(msg tea.Msg) (OptionPicker, tea.Cmd) {
	if o.locked || o.graded {
		return o, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if o.Selected > 0 {
			o.Selected--
		}
	case "down", "j":
		if o.Selected < len(o.Options)-1 {
			o.Selected++
		}
	case "a", "b", "c", "d", "e", "f":
		idx := int(kmsg.String()[0] - 'a')
		if idx < len(o.Options) {
			o.Selected = idx
		}
	}

	return o, nil
}

// SelectedLabel returns the letter label of the current selection.
func (o OptionPicker) SelectedLabel() string {
	if o.Selected < 0 || o.Selected >= len(optionLabels) {
		return ""
	}
	return optionLabels[o.Selected]
}

// Lock freezes the picker while a submission is in flight.
func (o *OptionPicker) Lock() {
	o.locked = true
}

// Unlock re-enables the picker after a failed submission.
func (o *OptionPicker) Unlock() {
	o.locked = false
}

// Grade records the server's verdict: which option the user chose and
// which was correct.
func (o *OptionPicker) Grade(chosen, correct string) {
	o.graded = true
	o.chosen = chosen
	o.correct = correct
	o.locked = false
}

// Graded reports whether the server has graded this question.
func (o OptionPicker) Graded() bool {
	return o.graded
}

// View renders the options.
func (o OptionPicker) View() string {
	var s string
	for i, opt := range o.Options {
		label := optionLabels[min(i, len(optionLabels)-1)]
		line := fmt.Sprintf("%s) %s", label, opt)

		switch {
		case o.graded && label == o.correct:
			s += theme.Correct.Render("  ✓ "+line) + "\n"
		case o.graded && label == o.chosen:
			s += theme.Incorrect.Render("  ✗ "+line) + "\n"
		case o.graded:
			s += theme.Unselected.Render("    "+line) + "\n"
		case i == o.Selected:
			s += theme.Selected.Render("  ▸ "+line) + "\n"
		default:
			s += theme.Unselected.Render("    "+line) + "\n"
		}
	}
	return s
}
