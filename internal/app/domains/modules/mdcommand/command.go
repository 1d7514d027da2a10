// Package mdcommand parses conversation turns that arrive without
// NLP-extracted items into one of a closed set of commands.
package mdcommand

import (
	"retailos/internal/app/domains/entity/etline"
)

// Kind command tag
type Kind string

const (
	KindAdd     Kind = "add"
	KindRemove  Kind = "remove"
	KindConfirm Kind = "confirm"
	KindCancel  Kind = "cancel"
	KindSummary Kind = "summary"
	KindUnknown Kind = "unknown"
)

// Command one of AddCommand, RemoveCommand, ConfirmCommand, CancelCommand,
// SummaryCommand or UnknownCommand
type Command interface {
	Kind() Kind
}

// ItemRef an item mention; Alias is the lexicon translation when one exists
type ItemRef struct {
	Phrase string
	Alias  string
}

// Names lookup candidates, alias first
func (r ItemRef) Names() []string {
	if r.Alias != "" && r.Alias != r.Phrase {
		return []string{r.Alias, r.Phrase}
	}
	return []string{r.Phrase}
}

// AddCommand add or re-specify items
type AddCommand struct {
	Lines []etline.RequestedLine
}

// RemoveCommand drop items from the cart
type RemoveCommand struct {
	Items []ItemRef
}

// ConfirmCommand commit the cart
type ConfirmCommand struct{}

// CancelCommand abandon the cart
type CancelCommand struct{}

// SummaryCommand show the cart and ask for confirmation
type SummaryCommand struct{}

// UnknownCommand nothing recognisable
type UnknownCommand struct {
	Text string
}

func (AddCommand) Kind() Kind     { return KindAdd }
func (RemoveCommand) Kind() Kind  { return KindRemove }
func (ConfirmCommand) Kind() Kind { return KindConfirm }
func (CancelCommand) Kind() Kind  { return KindCancel }
func (SummaryCommand) Kind() Kind { return KindSummary }
func (UnknownCommand) Kind() Kind { return KindUnknown }
