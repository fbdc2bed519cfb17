package view

import (
	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// StatusBar shows the editor mode and a one-line summary.
type StatusBar interface {
	SetMode(text string)
	SetStatus(text string)
}

type statusBar struct {
	modeLbl   *TLabelWidget
	statusLbl *LabelWidget
}

// NewStatusBar places the mode label at (row, startCol) and lets the status
// line span the remaining columns. If parent is nil, labels are positioned
// relative to the App root.
func NewStatusBar(parent *FrameWidget, row, startCol, span int, modeStyle string) StatusBar {
	s := &statusBar{
		modeLbl:   TLabel(Txt("Mode: select"), Style(modeStyle)),
		statusLbl: Label(Anchor("w"), Borderwidth(1), Relief("sunken")),
	}
	if span < 2 {
		span = 2
	}
	if parent != nil {
		Grid(s.modeLbl, In(parent), Row(row), Column(startCol), Sticky("w"), Padx("0.2m"))
		Grid(s.statusLbl, In(parent), Row(row), Column(startCol+1), Columnspan(span-1), Sticky("we"), Padx("0.2m"))
	} else {
		Grid(s.modeLbl, Row(row), Column(startCol), Sticky("w"), Padx("0.2m"))
		Grid(s.statusLbl, Row(row), Column(startCol+1), Columnspan(span-1), Sticky("we"), Padx("0.2m"))
	}
	return s
}

func (s *statusBar) SetMode(text string) {
	if s == nil || s.modeLbl == nil {
		return
	}
	s.modeLbl.Configure(Txt(text))
}

func (s *statusBar) SetStatus(text string) {
	if s == nil || s.statusLbl == nil {
		return
	}
	s.statusLbl.Configure(Txt(text))
}
