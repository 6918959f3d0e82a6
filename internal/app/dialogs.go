package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize/english"

	"github.com/llehouerou/bpplay/internal/errmsg"
	"github.com/llehouerou/bpplay/internal/ui/confirm"
	"github.com/llehouerou/bpplay/internal/ui/textinput"
)

// Choices of unsavedRequest.
const (
	choiceSave = iota
	choiceDiscard
)

// unsavedRequest asks what to do with unsaved breakpoints before verb.
func unsavedRequest(verb string, ctx any) confirm.Request {
	return confirm.Request{
		Title:   verb,
		Message: "There are unsaved breakpoint changes.",
		Options: []confirm.Option{
			{Label: "Save", Key: "s"},
			{Label: "Discard", Key: "d"},
			{Label: "Cancel", Key: "c"},
		},
		Context: ctx,
	}
}

func clearRequest(n int) confirm.Request {
	return confirm.YesNo(
		"Clear breakpoints",
		fmt.Sprintf("Remove all %s? This can be undone.", english.Plural(n, "breakpoint", "")),
		confirmClear{},
	)
}

func (m Model) handleConfirm(r confirm.Result) (tea.Model, tea.Cmd) {
	if _, ok := r.Context.(confirmClear); ok {
		if !r.Confirmed() {
			return m, nil
		}
		if err := m.session.ClearBreakpoints(); err != nil {
			cmd := m.notifyError(errmsg.OpBreakpointClear, err)
			return m, cmd
		}
		m.syncView()
		return m, nil
	}

	switch r.Choice {
	case choiceSave:
		if _, err := m.session.Save(m.session.DefaultSavePath()); err != nil {
			cmd := m.notifyError(errmsg.OpFileSave, err)
			return m, cmd
		}
	case choiceDiscard:
	default:
		return m, nil
	}

	var cmd tea.Cmd
	switch ctx := r.Context.(type) {
	case confirmQuit:
		cmd = m.quit()
	case confirmClose:
		m.closeFile()
	case confirmOpen:
		cmd = m.openFile(ctx.path)
	}
	return m, cmd
}

func (m Model) handleInput(r textinput.Result) (tea.Model, tea.Cmd) {
	if r.Canceled {
		return m, nil
	}

	var cmd tea.Cmd
	switch ctx := r.Context.(type) {
	case inputOpen:
		path := strings.TrimSpace(r.Text)
		if path == "" {
			return m, nil
		}
		if m.session.Dirty() {
			m.popups.ShowConfirm(unsavedRequest("Open "+path, confirmOpen{path: path}))
			return m, nil
		}
		cmd = m.openFile(path)

	case inputSaveAs:
		path := strings.TrimSpace(r.Text)
		if path == "" {
			return m, nil
		}
		cmd = m.save(path)

	case inputExport:
		path := strings.TrimSpace(r.Text)
		if path == "" {
			return m, nil
		}
		cmd = m.exportChapters(path)

	case inputHint:
		bp, err := m.session.AddBreakpointAt(ctx.at, r.Text)
		if err != nil {
			cmd = m.notifyError(errmsg.OpBreakpointAdd, err)
			break
		}
		m.syncView()
		m.list.SelectTimepoint(bp.Timepoint)
	}
	return m, cmd
}
