package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

type TaskOutput struct {
	ID          int
	Label       string
	Status      string
	Message     string
	StreamLine  string
	Complete    bool
	StartTime   time.Time
	LastUpdated time.Time
	Error       error
}

type ErrorReport struct {
	Label string
	Error error
	Time  time.Time
}

// Manager redraws one line per registered task (plus an optional progress line)
// on a ticker until StopDisplay prints the final state and a summary.
type Manager struct {
	out         io.Writer
	tasks       []*TaskOutput
	mutex       sync.RWMutex
	numLines    int
	errors      []ErrorReport
	doneCh      chan struct{}
	displayTick time.Duration
	displayWg   sync.WaitGroup
	interactive bool
}

func NewManager() *Manager {
	return NewManagerWithWriter(os.Stdout, true)
}

// NewManagerWithWriter writes to w; a non-interactive manager never moves the
// cursor and only prints the final state.
func NewManagerWithWriter(w io.Writer, interactive bool) *Manager {
	return &Manager{
		out:         w,
		doneCh:      make(chan struct{}),
		displayTick: 200 * time.Millisecond,
		interactive: interactive,
	}
}

func (m *Manager) Register(label string) int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	id := len(m.tasks) + 1
	m.tasks = append(m.tasks, &TaskOutput{
		ID:          id,
		Label:       label,
		Status:      "pending",
		StartTime:   time.Now(),
		LastUpdated: time.Now(),
	})
	return id
}

func (m *Manager) task(id int) *TaskOutput {
	if id < 1 || id > len(m.tasks) {
		return nil
	}
	return m.tasks[id-1]
}

func (m *Manager) SetMessage(id int, message string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if info := m.task(id); info != nil {
		info.Message = message
		info.Status = "active"
		info.LastUpdated = time.Now()
	}
}

func (m *Manager) GetStatus(id int) string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if info := m.task(id); info != nil {
		return info.Status
	}
	return "unknown"
}

// UpdateProgress replaces the task's progress line; total <= 0 means the size is unknown.
func (m *Manager) UpdateProgress(id int, downloaded, total int64) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	info := m.task(id)
	if info == nil {
		return
	}
	elapsed := time.Since(info.StartTime).Seconds()
	var sizeText string
	if total > 0 {
		sizeText = fmt.Sprintf("%s / %s", formatSize(downloaded), formatSize(total))
	} else {
		sizeText = formatSize(downloaded)
	}
	info.StreamLine = fmt.Sprintf("%s%s %s %s",
		PrintProgressBar(downloaded, total, 30),
		debugStyle.Render(sizeText),
		StyleSymbols["bullet"],
		debugStyle.Render(FormatSpeed(downloaded, elapsed)))
	info.LastUpdated = time.Now()
}

// UpdateCount shows item-based progress such as extracted archive entries.
func (m *Manager) UpdateCount(id int, done, total int, unit string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if info := m.task(id); info != nil {
		info.StreamLine = fmt.Sprintf("%s%s", PrintProgressBar(int64(done), int64(total), 30), debugStyle.Render(fmt.Sprintf("%d / %d %s", done, total, unit)))
		info.LastUpdated = time.Now()
	}
}

func (m *Manager) Complete(id int, message string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if info := m.task(id); info != nil {
		info.StreamLine = ""
		if message == "" {
			info.Message = fmt.Sprintf("Completed %s", info.Label)
		} else {
			info.Message = message
		}
		info.Complete = true
		info.Status = "success"
		info.LastUpdated = time.Now()
	}
}

func (m *Manager) ReportError(id int, err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if info := m.task(id); info != nil {
		info.StreamLine = ""
		info.Message = fmt.Sprintf("Failed %s", info.Label)
		info.Complete = true
		info.Status = "error"
		info.Error = err
		info.LastUpdated = time.Now()
		m.errors = append(m.errors, ErrorReport{
			Label: info.Label,
			Error: err,
			Time:  time.Now(),
		})
	}
}

func (m *Manager) statusIndicator(status string) string {
	switch status {
	case "success":
		return successStyle.Render(StyleSymbols["pass"])
	case "error":
		return errorStyle.Render(StyleSymbols["fail"])
	case "pending":
		return pendingStyle.Render(StyleSymbols["pending"])
	default:
		return infoStyle.Render(StyleSymbols["bullet"])
	}
}

func (m *Manager) updateDisplay() {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if m.interactive && m.numLines > 0 {
		fmt.Fprintf(m.out, "\033[%dA\033[J", m.numLines)
	}
	availableLines := getTerminalHeight() - 3
	labelWidth := getTerminalWidth() - 20
	lineCount := 0
	for _, info := range m.tasks {
		if lineCount >= availableLines {
			break
		}
		elapsed := time.Since(info.StartTime).Round(time.Second)
		if info.Complete {
			elapsed = info.LastUpdated.Sub(info.StartTime).Round(time.Second)
		}
		message := info.Message
		if message == "" {
			message = "Waiting..."
		}
		var styledMessage string
		switch info.Status {
		case "success":
			styledMessage = successStyle.Render(truncateLabel(message, labelWidth))
		case "error":
			styledMessage = errorStyle.Render(truncateLabel(message, labelWidth))
		default:
			styledMessage = pendingStyle.Render(truncateLabel(message, labelWidth))
		}
		fmt.Fprintf(m.out, "%s%s %s %s\n", strings.Repeat(" ", 2), m.statusIndicator(info.Status), debugStyle.Render(elapsed.String()), styledMessage)
		lineCount++
		if info.StreamLine != "" && lineCount < availableLines {
			fmt.Fprintf(m.out, "%s%s\n", strings.Repeat(" ", 2+4), streamStyle.Render(info.StreamLine))
			lineCount++
		}
	}
	m.numLines = lineCount
}

func (m *Manager) StartDisplay() {
	m.displayWg.Add(1)
	go func() {
		defer m.displayWg.Done()
		ticker := time.NewTicker(m.displayTick)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if m.interactive {
					m.updateDisplay()
				}
			case <-m.doneCh:
				m.updateDisplay()
				m.ShowSummary()
				return
			}
		}
	}()
}

func (m *Manager) StopDisplay() {
	close(m.doneCh)
	m.displayWg.Wait()
}

func (m *Manager) displayErrors() {
	if len(m.errors) == 0 {
		return
	}
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, strings.Repeat(" ", 2)+errorStyle.Bold(true).Render("Errors:"))
	for i, report := range m.errors {
		fmt.Fprintf(m.out, "%s%s %s %s\n",
			strings.Repeat(" ", 2+2),
			errorStyle.Render(fmt.Sprintf("%d.", i+1)),
			debugStyle.Render(fmt.Sprintf("[%s]", report.Time.Format("15:04:05"))),
			errorStyle.Render(report.Label))
		fmt.Fprintf(m.out, "%s%s\n", strings.Repeat(" ", 2+4), errorStyle.Render(fmt.Sprintf("Error: %v", report.Error)))
	}
}

func (m *Manager) ShowSummary() {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	fmt.Fprintln(m.out)
	var success, failures int
	for _, info := range m.tasks {
		switch info.Status {
		case "success":
			success++
		case "error":
			failures++
		}
	}
	fmt.Fprintln(m.out, strings.Repeat(" ", 2)+success2Style.Render(fmt.Sprintf("Completed %d of %d", success, len(m.tasks))))
	if failures > 0 {
		fmt.Fprintln(m.out, strings.Repeat(" ", 2)+errorStyle.Render(fmt.Sprintf("Failed %d of %d", failures, len(m.tasks))))
	}
	m.displayErrors()
	fmt.Fprintln(m.out)
}
