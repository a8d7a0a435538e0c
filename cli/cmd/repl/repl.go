package repl

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/linelog/log"
	"github.com/ardnew/linelog/tmpl"
)

const (
	tmplPrompt = "➜ "
	ctrlPrompt = " :"
)

const helpText = `
: Commands (press Esc to toggle mode):

  help              Print this cruft
  list              List available template sets
  show              Show the sample record and preview level
  set FIELD VALUE   Set a sample record field
  unset FIELD       Remove a sample record field
  level NAME|all    Choose the preview level (or every level at once)
  load NAME         Load a template set and edit its current plan
  clear             Clear screen
  quit              Exit REPL

Usage:
  Type a template line to render it against the sample record
  Completions appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Space to accept the current candidate
  Press Esc to toggle between template and command modes
  Use Up/Down arrows for history navigation (mode switches automatically)
  Use Shift+Up/Shift+Down for history navigation within current mode only
  Press Ctrl+C on empty line or Ctrl+D to exit
`

// inputMode represents the current input mode.
type inputMode int

const (
	modeTmpl inputMode = iota
	modeCtrl
)

// Terminal styles shared across the REPL views.
var (
	promptStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("4"))
)

// modePrompt returns the styled prompt for the given input mode.
func modePrompt(mode inputMode) string {
	if mode == modeCtrl {
		return ctrlPromptStyle.Render(ctrlPrompt)
	}

	return promptStyle.Render(tmplPrompt)
}

// formatTmplLine formats the template echo line with prompt and input styled.
func formatTmplLine(input string) string {
	return promptStyle.Render(tmplPrompt) + inputStyle.Render(input)
}

// formatCtrlLine formats the control command echo line with prompt and
// input styled.
func formatCtrlLine(input string) string {
	return ctrlPromptStyle.Render(ctrlPrompt) + inputStyle.Render(input)
}

// lineState captures an input line so each mode keeps its own draft while
// the user toggles between them.
type lineState struct {
	text   string
	cursor int
}

// model is the Bubble Tea model for the REPL.
type model struct {
	input        textinput.Model
	set          *tmpl.Set      // loaded template set
	fields       map[string]any // sample record fields
	history      *History
	historyIdx   int
	matches      fuzzy.Matches // current fuzzy match results
	candidates   []string      // backing candidate list
	wordStart    int           // byte offset of current word start
	wordEnd      int           // byte offset of current word end
	suggIdx      int           // selected candidate index
	tabActive    bool          // whether user is tab-cycling
	preTabText   string        // input text before tab-cycling began
	preTabCursor int           // cursor position before tab-cycling began
	width        int           // terminal width for ellipsization
	level        tmpl.Level    // preview level
	allLevels    bool          // preview every level at once
	quitting     bool
	mode         inputMode
	saved        [2]lineState // per-mode drafts, indexed by inputMode
}

// sampleFields is the starting record for previews. The set and unset
// commands edit it.
func sampleFields() map[string]any {
	return map[string]any{
		"message": "System check completed.",
		"reason":  "All systems operational.",
		"status":  "OK",
	}
}

// Run starts the REPL with the named template set loaded and the given
// preview level selected. History persists under cacheDir.
func Run(
	ctx context.Context,
	template string,
	level tmpl.Level,
	cacheDir string,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	log.DebugContext(
		ctx,
		"repl start",
		slog.String("template", template),
		slog.String("level", level.String()),
		slog.String("cache_dir", cacheDir),
	)

	set, err := tmpl.Resolve(template)
	if err != nil {
		return err
	}

	history := NewHistory(filepath.Join(cacheDir, baseHistory))
	if err := history.Load(); err != nil {
		fmt.Printf("Warning: could not load history: %v\n", err)
	}

	log.DebugContext(
		ctx,
		"repl history loaded",
		slog.Int("entry_count", history.Len()),
	)

	p := tea.NewProgram(newModel(set, level, history), tea.WithContext(ctx))
	_, err = p.Run()

	return err
}

const defaultWidth = 80

func newModel(set *tmpl.Set, level tmpl.Level, history *History) model {
	ti := textinput.New()
	ti.Prompt = modePrompt(modeTmpl)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		input:      ti,
		set:        set,
		fields:     sampleFields(),
		history:    history,
		historyIdx: history.Len(),
		width:      defaultWidth,
		level:      level,
		mode:       modeTmpl,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(tmplPrompt) - 2

		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	return m.input.View() + "\n" + m.statusLine() + "\n"
}

// statusLine picks the line rendered beneath the input: a history position,
// a usage hint, the candidate bar, or the attribute hint. An empty string
// leaves the line blank.
func (m model) statusLine() string {
	if m.historyIdx < m.history.Len() {
		pos := lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx + 1))

		return hintStyle.Render(fmt.Sprintf("%s/%d", pos, m.history.Len()))
	}

	input := m.input.Value()

	if strings.TrimSpace(input) == "" {
		if m.mode == modeCtrl {
			return hintStyle.Render("Type: help, list, show, set, unset, level, load, clear, quit")
		}

		return hintStyle.Render("Type a template line or press Esc for commands")
	}

	if len(m.matches) > 0 {
		return renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width)
	}

	if m.mode == modeTmpl {
		// No candidates compete for the line, so the attribute hint may
		// use it when the cursor sits inside a declaration.
		cursor := byteOffset(input, m.input.Position())
		if dc := declContextAt(input, cursor); dc.inAttrs {
			return renderAttrHint(dc)
		}
	}

	return ""
}

func (m model) handleKey(key tea.KeyMsg) (model, tea.Cmd) {
	switch key.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.resetLine()

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if !m.tabActive || len(m.matches) == 0 {
			return m.executeInput()
		}
		// Lock in the current tab candidate without executing.
		m.tabActive = false
		refreshMatches(&m, true)

		return m, nil

	case tea.KeyTab:
		return m.cycleCandidate(1)

	case tea.KeyShiftTab:
		return m.cycleCandidate(-1)

	case tea.KeyUp:
		return m.historyPrev()

	case tea.KeyDown:
		return m.historyNext()

	case tea.KeyShiftUp:
		return m.historyStepInMode(-1)

	case tea.KeyShiftDown:
		return m.historyStepInMode(1)

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m, false)

			return m, nil
		}

		return m.toggleMode()

	case tea.KeyRunes, tea.KeySpace:
		// Space is a "breaking" key while tab-cycling: it accepts the
		// completed word and ends the cycle.
		if m.tabActive && key.String() == " " {
			m.tabActive = false
		}

		return m.passthrough(key, true)
	}

	// Backspace, delete, and cursor movement edit freely, so matches are
	// recomputed without auto-confirming a completion.
	m.tabActive = false

	return m.passthrough(key, false)
}

// resetLine clears the input and drops any tab cycle or history scroll.
func (m *model) resetLine() {
	m.input.SetValue("")
	m.tabActive = false
	m.historyIdx = m.history.Len()
	refreshMatches(m, false)
}

// passthrough forwards the key to the text input, leaves history scrolling,
// and recomputes matches.
func (m model) passthrough(key tea.KeyMsg, confirm bool) (model, tea.Cmd) {
	m.historyIdx = m.history.Len()

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(key)
	refreshMatches(&m, confirm)

	return m, cmd
}

// cycleCandidate steps through the candidate bar in the given direction,
// starting a tab cycle if one is not active. A sole candidate completes
// and confirms immediately.
func (m model) cycleCandidate(dir int) (model, tea.Cmd) {
	if len(m.matches) == 0 {
		return m, nil
	}

	if len(m.matches) == 1 {
		spliceWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m, nil
	}

	if m.tabActive {
		m.suggIdx = (m.suggIdx + dir + len(m.matches)) % len(m.matches)
	} else {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		if dir > 0 {
			m.suggIdx = 0
		} else {
			m.suggIdx = len(m.matches) - 1
		}
	}

	spliceWord(&m, m.matches[m.suggIdx].Str)

	return m, nil
}

// spliceWord swaps the word under the cursor for the chosen candidate and
// places the cursor at its end.
func spliceWord(m *model, candidate string) {
	input := m.input.Value()
	head := input[:m.wordStart] + candidate

	m.input.SetValue(head + input[m.wordEnd:])
	m.input.SetCursor(utf8.RuneCountInString(head))

	m.wordEnd = len(head)
}

// refreshMatches recomputes fuzzy matches for the current input state.
// When confirm is set it also accepts the completion once exactly one
// candidate remains and the typed word already spells it out. Deletions and
// cursor navigation pass confirm false so the user can edit freely without
// unexpected completions.
func refreshMatches(m *model, confirm bool) {
	m.matches, m.candidates, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if !confirm || len(m.matches) != 1 {
		return
	}

	if word := m.input.Value()[m.wordStart:m.wordEnd]; word == m.matches[0].Str {
		spliceWord(m, word)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil
	}
}

// echoThen echoes the submitted line, then prints out beneath it.
func echoThen(echo tea.Cmd, out string) tea.Cmd {
	return tea.Sequence(echo, tea.Println(out))
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	// Submission clears the drafts of both modes.
	m.saved = [2]lineState{}
	m.input.SetValue("")

	_, _ = m.history.Write(input, m.mode)
	m.historyIdx = m.history.Len()

	if m.mode == modeCtrl {
		return m.executeCommand(input)
	}

	// Template mode: echo the line and render a preview beneath it.
	echo := tea.Println(formatTmplLine(input))

	plan, err := tmpl.Parse(input)
	if err != nil {
		return m, echoThen(echo, errorStyle.Render(err.Error()))
	}

	return m, echoThen(echo, m.renderPreview(plan))
}

// renderPreview renders the plan against the sample record at the preview
// level, or once per level with a level-name prefix. The rendered line is
// returned raw so its embedded escape sequences display as they would in
// real output.
func (m model) renderPreview(plan *tmpl.Plan) string {
	if !m.allLevels {
		set := tmpl.NewSet("playground", map[tmpl.Level]*tmpl.Plan{
			m.level: plan,
		})

		line, err := set.Render(tmpl.Record{Fields: m.fields, Level: m.level})
		if err != nil {
			return errorStyle.Render(err.Error())
		}

		return line
	}

	plans := make(map[tmpl.Level]*tmpl.Plan, 5)
	for level := range tmpl.Levels() {
		plans[level] = plan
	}

	set := tmpl.NewSet("playground", plans)

	var lines []string

	for level := range tmpl.Levels() {
		line, err := set.Render(tmpl.Record{Fields: m.fields, Level: level})
		if err != nil {
			line = errorStyle.Render(err.Error())
		}

		lines = append(lines, hintStyle.Render(fmt.Sprintf("%-8s ", level))+line)
	}

	return strings.Join(lines, "\n")
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	echo := tea.Println(formatCtrlLine(input))
	args := parts[1:]

	switch parts[0] {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "h", "help":
		return m, echoThen(echo, helpText)

	case "l", "list":
		return m, echoThen(echo, m.listTemplates())

	case "show":
		return m, echoThen(echo, m.showRecord())

	case "set":
		if len(args) < 2 {
			return m, echoThen(echo, errorStyle.Render("usage: set FIELD VALUE"))
		}

		m.fields[args[0]] = strings.Join(args[1:], " ")

		return m, echoThen(echo, m.showRecord())

	case "unset":
		if len(args) != 1 {
			return m, echoThen(echo, errorStyle.Render("usage: unset FIELD"))
		}

		delete(m.fields, args[0])

		return m, echoThen(echo, m.showRecord())

	case "level":
		if len(args) != 1 {
			return m, echoThen(echo, errorStyle.Render("usage: level NAME|all"))
		}

		return m.setLevel(args[0], echo)

	case "load":
		if len(args) != 1 {
			return m, echoThen(echo, errorStyle.Render("usage: load NAME"))
		}

		return m.loadTemplate(args[0], echo)

	case "c", "clear":
		return m, tea.ClearScreen
	}

	return m, echoThen(echo, errorStyle.Render(
		"Unknown command: "+parts[0]+" (try 'help')",
	))
}

// setLevel selects the preview level by name, or every level with "all".
func (m model) setLevel(name string, echo tea.Cmd) (model, tea.Cmd) {
	if strings.EqualFold(name, "all") {
		m.allLevels = true

		return m, echoThen(echo, hintStyle.Render("previewing all levels"))
	}

	for level := range tmpl.Levels() {
		if strings.EqualFold(name, level.String()) {
			m.level = level
			m.allLevels = false

			return m, echoThen(echo, hintStyle.Render(
				"previewing level "+level.String(),
			))
		}
	}

	return m, echoThen(echo, errorStyle.Render(
		"unknown level: "+name+
			" (try debug, info, warning, error, critical, or all)",
	))
}

// loadTemplate replaces the loaded set and seeds the input with the plan
// at the preview level so it can be edited in place.
func (m model) loadTemplate(name string, echo tea.Cmd) (model, tea.Cmd) {
	set, err := tmpl.Resolve(name)
	if err != nil {
		return m, echoThen(echo, errorStyle.Render(err.Error()))
	}

	m.set = set

	if m.mode != modeTmpl {
		m, _ = m.switchToMode(modeTmpl)
	}

	if plan, ok := set.Plan(m.level); ok {
		src := plan.Source()
		m.input.SetValue(src)
		m.input.SetCursor(utf8.RuneCountInString(src))
	}

	refreshMatches(&m, false)

	return m, echoThen(echo, hintStyle.Render("loaded template "+set.Name()))
}

// applyHistoryEntry loads the entry at index i into the input, switching
// input mode to match the entry.
func (m *model) applyHistoryEntry(i int) {
	entry, err := m.history.GetEntry(i)
	if err != nil {
		return
	}

	if m.mode != entry.Mode {
		*m, _ = m.switchToMode(entry.Mode)
	}

	m.input.SetValue(entry.Line)
	m.input.SetCursor(utf8.RuneCountInString(entry.Line))
	refreshMatches(m, false)
}

func (m model) historyPrev() (model, tea.Cmd) {
	if m.historyIdx > 0 {
		m.historyIdx--
		m.applyHistoryEntry(m.historyIdx)
	}

	return m, nil
}

func (m model) historyNext() (model, tea.Cmd) {
	if m.historyIdx < m.history.Len()-1 {
		m.historyIdx++
		m.applyHistoryEntry(m.historyIdx)

		return m, nil
	}

	m.historyIdx = m.history.Len()
	m.input.SetValue("")
	refreshMatches(&m, false)

	return m, nil
}

// historyStepInMode seeks the nearest history entry in the given direction
// whose mode matches the current input mode. Stepping forward past the
// newest matching entry returns to a blank line.
func (m model) historyStepInMode(step int) (model, tea.Cmd) {
	for i := m.historyIdx + step; i >= 0 && i < m.history.Len(); i += step {
		entry, err := m.history.GetEntry(i)
		if err != nil || entry.Mode != m.mode {
			continue
		}

		m.historyIdx = i
		m.input.SetValue(entry.Line)
		m.input.SetCursor(utf8.RuneCountInString(entry.Line))
		refreshMatches(&m, false)

		return m, nil
	}

	if step > 0 && m.historyIdx < m.history.Len() {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		refreshMatches(&m, false)
	}

	return m, nil
}

// previewWidth caps template source previews in the list command.
const previewWidth = 40

// listTemplates lists the available template sets with a source preview of
// each set's plan at the preview level. The loaded set is marked.
func (m model) listTemplates() string {
	var b strings.Builder

	for name := range tmpl.Names() {
		marker := "  "
		if name == m.set.Name() {
			marker = "* "
		}

		preview := ""

		if set, err := tmpl.Lookup(name); err == nil {
			if plan, ok := set.Plan(m.level); ok {
				preview = previewSource(plan.Source())
			}
		}

		b.WriteString(fmt.Sprintf("%s%s %s\n", marker, name, hintStyle.Render(preview)))
	}

	return b.String()
}

// previewSource shortens template source to fit the list preview column.
func previewSource(src string) string {
	runes := []rune(src)
	if len(runes) <= previewWidth {
		return src
	}

	return string(runes[:previewWidth-3]) + "..."
}

// showRecord describes the loaded set, the preview level, and the sample
// record fields.
func (m model) showRecord() string {
	var b strings.Builder

	levelName := m.level.String()
	if m.allLevels {
		levelName = "all"
	}

	b.WriteString(fmt.Sprintf("  template %s\n", hintStyle.Render(m.set.Name())))
	b.WriteString(fmt.Sprintf("  level    %s\n", hintStyle.Render(levelName)))

	for _, name := range slices.Sorted(maps.Keys(m.fields)) {
		b.WriteString(fmt.Sprintf("  %s=%v\n", name, m.fields[name]))
	}

	return b.String()
}

// toggleMode switches between template and control modes.
func (m model) toggleMode() (model, tea.Cmd) {
	if m.mode == modeTmpl {
		return m.switchToMode(modeCtrl)
	}

	return m.switchToMode(modeTmpl)
}

// switchToMode saves the current mode's draft, then restores the draft and
// prompt of the target mode.
func (m model) switchToMode(mode inputMode) (model, tea.Cmd) {
	m.saved[m.mode] = lineState{text: m.input.Value(), cursor: m.input.Position()}

	m.mode = mode
	m.input.Prompt = modePrompt(mode)

	draft := m.saved[mode]
	m.input.SetValue(draft.text)
	m.input.SetCursor(draft.cursor)

	refreshMatches(&m, false)

	return m, nil
}
