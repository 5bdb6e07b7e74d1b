package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tfx/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgDocumentLoaded MsgKind = iota
	MsgDeleted
)

type docResult struct {
	doc *models.ConfigDocument
	err error
}

// documentLoadedMsg is the constructor for [MsgDocumentLoaded]
func documentLoadedMsg(doc *models.ConfigDocument, err error) Msg {
	return Msg{kind: MsgDocumentLoaded, data: docResult{doc, err}}
}

// deletedMsg is the constructor for [MsgDeleted]
func deletedMsg(doc *models.ConfigDocument, err error) Msg {
	return Msg{kind: MsgDeleted, data: docResult{doc, err}}
}
