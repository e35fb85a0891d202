package ui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"named/internal/driver"
)

// Run shows progress for files while work runs with a sink feeding the
// view. work's result is returned once both have finished.
func Run[T any](out io.Writer, title string, files []string, work func(driver.ProgressSink) (T, error)) (T, error) {
	type outcome struct {
		val T
		err error
	}
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan outcome, 1)
	go func() {
		v, err := work(driver.ChannelSink{Ch: events})
		close(events)
		outcomeCh <- outcome{val: v, err: err}
	}()

	program := tea.NewProgram(NewProgressModel(title, files, events), tea.WithOutput(out), tea.WithInput(nil))
	_, uiErr := program.Run()
	if uiErr != nil {
		// вид упал: дочитываем события, чтобы работа не встала на канале
		go func() {
			for range events {
			}
		}()
	}
	res := <-outcomeCh
	if uiErr != nil && res.err == nil {
		return res.val, uiErr
	}
	return res.val, res.err
}
