package ui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"esdata/internal/driver"
)

// RunProgress runs work while drawing its events to out. The UI exits once
// work returns; the error of work wins over a UI failure.
func RunProgress(out io.Writer, title string, files []string, work func(driver.EventSink) error) error {
	events := make(chan driver.Event, 64)
	workErr := make(chan error, 1)
	go func() {
		err := work(func(ev driver.Event) { events <- ev })
		close(events)
		workErr <- err
	}()

	prog := tea.NewProgram(NewProgressModel(title, files, events), tea.WithOutput(out), tea.WithInput(nil))
	_, uiErr := prog.Run()
	if uiErr != nil {
		// UI сломался: дочитываем события, чтобы не заблокировать работу
		for range events {
		}
	}
	if err := <-workErr; err != nil {
		return err
	}
	return uiErr
}
