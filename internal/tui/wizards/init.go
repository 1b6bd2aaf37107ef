package wizards

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vvka-141/normhash/internal/config"
	"github.com/vvka-141/normhash/internal/tui"
	"github.com/vvka-141/normhash/internal/tui/components"
	"github.com/vvka-141/normhash/pkg/normhash"
)

// InitResult holds the result of the init wizard.
type InitResult struct {
	Cancelled bool
	Options   normhash.Options
	Format    config.Format
}

// InitWizard asks for each hashing default and the config file format.
type InitWizard struct {
	targetDir string
	questions []components.Selector
	step      int
	result    InitResult
	keys      tui.KeyMap
}

const (
	questionEOL = iota
	questionWhitespace
	questionTerminator
	questionFormat
)

// NewInitWizard creates a wizard whose answers start at defaults.
func NewInitWizard(targetDir string, defaults normhash.Options, format config.Format) InitWizard {
	if targetDir == "" {
		targetDir = "."
	}

	questions := []components.Selector{
		questionEOL: components.NewSelector("Line terminator written between lines", []components.Option{
			{Label: "LF (\\n)", Description: "Unix and macOS convention", Value: "lf"},
			{Label: "CRLF (\\r\\n)", Description: "Windows convention", Value: "crlf"},
			{Label: "CR (\\r)", Description: "Classic Mac OS convention", Value: "cr"},
			{Label: "None", Description: "Concatenate lines without separator", Value: "none"},
		}).WithValue(config.FormatEOL(defaults.EOL)),
		questionWhitespace: components.NewSelector("Whitespace inside lines", []components.Option{
			{Label: "Keep", Description: "Spaces and tabs are part of the digest", Value: "false"},
			{Label: "Ignore", Description: "Strip every whitespace character before hashing", Value: "true"},
		}).WithValue(strconv.FormatBool(defaults.IgnoreWhitespace)),
		questionTerminator: components.NewSelector("Terminator after the last line", []components.Option{
			{Label: "Append", Description: "Missing final newline does not change the digest", Value: "false"},
			{Label: "Omit", Description: "Lines are only separated, never terminated", Value: "true"},
		}).WithValue(strconv.FormatBool(defaults.NoTrailingTerminator)),
		questionFormat: components.NewSelector("Config file format", []components.Option{
			{Label: "YAML", Description: config.YAMLFileName, Value: string(config.FormatYAML)},
			{Label: "TOML", Description: config.TOMLFileName, Value: string(config.FormatTOML)},
		}).WithValue(string(format)),
	}
	for i := range questions {
		questions[i] = questions[i].WithShowHelp(false)
	}

	return InitWizard{
		targetDir: targetDir,
		questions: questions,
		keys:      tui.DefaultKeyMap(),
	}
}

// Init implements tea.Model.
func (w InitWizard) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (w InitWizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return w, nil
	}

	switch {
	case key.Matches(keyMsg, w.keys.Quit):
		w.result.Cancelled = true
		return w, tea.Quit
	case key.Matches(keyMsg, w.keys.Back):
		return w.back()
	}

	if w.confirming() {
		if key.Matches(keyMsg, w.keys.Select) {
			return w, tea.Quit
		}
		return w, nil
	}

	model, _ := w.questions[w.step].Update(keyMsg)
	w.questions[w.step] = model.(components.Selector)
	if w.questions[w.step].Submitted() {
		w.step++
		if w.confirming() {
			w.result = w.answers()
		}
	}
	return w, nil
}

func (w InitWizard) back() (tea.Model, tea.Cmd) {
	if w.step == 0 {
		w.result.Cancelled = true
		return w, tea.Quit
	}
	w.step--
	w.questions[w.step] = w.questions[w.step].Reset()
	return w, nil
}

func (w InitWizard) confirming() bool {
	return w.step == len(w.questions)
}

func (w InitWizard) answers() InitResult {
	eol, _ := config.ParseEOL(w.questions[questionEOL].Value())
	ignore, _ := strconv.ParseBool(w.questions[questionWhitespace].Value())
	noEOF, _ := strconv.ParseBool(w.questions[questionTerminator].Value())

	return InitResult{
		Options: normhash.Options{
			EOL:                  eol,
			IgnoreWhitespace:     ignore,
			NoTrailingTerminator: noEOF,
		},
		Format: config.Format(w.questions[questionFormat].Value()),
	}
}

// View implements tea.Model.
func (w InitWizard) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("normhash init - Project Defaults"))
	b.WriteString("\n")

	if !w.confirming() {
		b.WriteString(fmt.Sprintf("Step %d of %d\n\n", w.step+1, len(w.questions)))
		b.WriteString(w.questions[w.step].View())
		b.WriteString(tui.HelpStyle.Render("\n" + w.keys.HelpText()))
		return b.String()
	}

	b.WriteString(tui.SuccessStyle.Render(tui.SymbolCheck + " Ready to write configuration"))
	b.WriteString("\n\n")

	absPath, _ := filepath.Abs(filepath.Join(w.targetDir, w.result.Format.FileName()))
	b.WriteString(fmt.Sprintf("File:     %s\n", absPath))
	b.WriteString(fmt.Sprintf("Options:  %s\n", w.result.Options))

	b.WriteString(tui.HelpStyle.Render("\nenter write file • esc back • q cancel"))

	return b.String()
}

// Result returns the wizard result.
func (w InitWizard) Result() InitResult {
	return w.result
}

// RunInitWizard executes the init wizard.
func RunInitWizard(targetDir string, defaults normhash.Options, format config.Format) (InitResult, error) {
	p := tea.NewProgram(NewInitWizard(targetDir, defaults, format), tea.WithAltScreen())

	model, err := p.Run()
	if err != nil {
		return InitResult{Cancelled: true}, err
	}

	w := model.(InitWizard)
	if !w.confirming() {
		return InitResult{Cancelled: true}, nil
	}
	return w.Result(), nil
}
