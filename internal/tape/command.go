// Package tape parses and runs .tape scripts: line-based lists of desktop
// commands used to record demos and drive the desktop in tests.
//
//	# open the projects folder and move it
//	Open Projects
//	Sleep 500ms
//	Move 10 4
//	Type "hello"
package tape

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// CommandType names a tape command.
type CommandType string

// Command types. The script keyword is the constant's value.
const (
	CommandTypeOpen       CommandType = "Open"
	CommandTypeClose      CommandType = "Close"
	CommandTypeFocus      CommandType = "Focus"
	CommandTypeMinimize   CommandType = "Minimize"
	CommandTypeRestore    CommandType = "Restore"
	CommandTypeRestoreAll CommandType = "RestoreAll"
	CommandTypeMaximize   CommandType = "Maximize"
	CommandTypeMove       CommandType = "Move"
	CommandTypeResize     CommandType = "Resize"
	CommandTypeNextWindow CommandType = "NextWindow"
	CommandTypePrevWindow CommandType = "PrevWindow"
	CommandTypeNextTab    CommandType = "NextTab"
	CommandTypePrevTab    CommandType = "PrevTab"

	CommandTypeInputMode   CommandType = "InputMode"
	CommandTypeDesktopMode CommandType = "DesktopMode"
	CommandTypeLauncher    CommandType = "Launcher"
	CommandTypeHelp        CommandType = "Help"
	CommandTypeLogs        CommandType = "Logs"

	CommandTypeType      CommandType = "Type"
	CommandTypeKey       CommandType = "Key"
	CommandTypeEnter     CommandType = "Enter"
	CommandTypeTab       CommandType = "Tab"
	CommandTypeEscape    CommandType = "Escape"
	CommandTypeBackspace CommandType = "Backspace"
	CommandTypeSpace     CommandType = "Space"

	CommandTypeSleep              CommandType = "Sleep"
	CommandTypeNotify             CommandType = "Notify"
	CommandTypeSetDockbarPosition CommandType = "SetDockbarPosition"
	CommandTypeSetBorderStyle     CommandType = "SetBorderStyle"
	CommandTypeSetTheme           CommandType = "SetTheme"
)

// arity is the accepted argument count for each command.
var arity = map[CommandType][2]int{
	CommandTypeOpen:       {1, 1},
	CommandTypeClose:      {0, 1},
	CommandTypeFocus:      {1, 1},
	CommandTypeMinimize:   {0, 1},
	CommandTypeRestore:    {0, 1},
	CommandTypeRestoreAll: {0, 0},
	CommandTypeMaximize:   {0, 1},
	CommandTypeMove:       {2, 2},
	CommandTypeResize:     {2, 2},
	CommandTypeNextWindow: {0, 0},
	CommandTypePrevWindow: {0, 0},
	CommandTypeNextTab:    {0, 0},
	CommandTypePrevTab:    {0, 0},

	CommandTypeInputMode:   {0, 0},
	CommandTypeDesktopMode: {0, 0},
	CommandTypeLauncher:    {0, 0},
	CommandTypeHelp:        {0, 0},
	CommandTypeLogs:        {0, 0},

	CommandTypeType:      {1, 1},
	CommandTypeKey:       {1, 1},
	CommandTypeEnter:     {0, 0},
	CommandTypeTab:       {0, 0},
	CommandTypeEscape:    {0, 0},
	CommandTypeBackspace: {0, 0},
	CommandTypeSpace:     {0, 0},

	CommandTypeSleep:              {1, 1},
	CommandTypeNotify:             {1, 2},
	CommandTypeSetDockbarPosition: {1, 1},
	CommandTypeSetBorderStyle:     {1, 1},
	CommandTypeSetTheme:           {1, 1},
}

// keywords maps the lowercased keyword to its type.
var keywords = func() map[string]CommandType {
	m := make(map[string]CommandType, len(arity))
	for t := range arity {
		m[strings.ToLower(string(t))] = t
	}
	return m
}()

// Command is one parsed line.
type Command struct {
	Type CommandType
	Args []string
	Line int
}

func (c Command) String() string {
	if len(c.Args) == 0 {
		return string(c.Type)
	}
	quoted := make([]string, len(c.Args))
	for i, a := range c.Args {
		if strings.ContainsAny(a, " \t\"") || a == "" {
			a = strconv.Quote(a)
		}
		quoted[i] = a
	}
	return string(c.Type) + " " + strings.Join(quoted, " ")
}

// IntArg parses argument i as an integer.
func (c Command) IntArg(i int) (int, error) {
	if i >= len(c.Args) {
		return 0, fmt.Errorf("line %d: %s: missing argument %d", c.Line, c.Type, i+1)
	}
	n, err := strconv.Atoi(c.Args[i])
	if err != nil {
		return 0, fmt.Errorf("line %d: %s: %q is not a number", c.Line, c.Type, c.Args[i])
	}
	return n, nil
}

// Duration returns how long a Sleep command waits. A bare number is
// milliseconds.
func (c Command) Duration() (time.Duration, error) {
	if c.Type != CommandTypeSleep || len(c.Args) == 0 {
		return 0, nil
	}
	return parseDuration(c.Args[0])
}

func parseDuration(s string) (time.Duration, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return d, nil
}

// ParseError lists every problem found in a script.
type ParseError struct {
	Errors []error
}

func (e *ParseError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

// Parse reads a script. Blank lines and lines starting with # are skipped.
// All errors are collected before returning.
func Parse(r io.Reader) ([]Command, error) {
	var (
		cmds []Command
		errs []error
	)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		cmd, err := parseLine(text, line)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		cmds = append(cmds, cmd)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read tape: %w", err)
	}
	if len(errs) > 0 {
		return nil, &ParseError{Errors: errs}
	}
	return cmds, nil
}

// ParseString parses a script held in memory.
func ParseString(src string) ([]Command, error) {
	return Parse(strings.NewReader(src))
}

// ParseFile parses the script at path.
func ParseFile(path string) ([]Command, error) {
	// #nosec G304 - the path is given on the command line
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tape: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Parse(f)
}

func parseLine(text string, line int) (Command, error) {
	fields, err := splitFields(text)
	if err != nil {
		return Command{}, fmt.Errorf("line %d: %w", line, err)
	}
	t, ok := keywords[strings.ToLower(fields[0])]
	if !ok {
		return Command{}, fmt.Errorf("line %d: unknown command %q", line, fields[0])
	}
	args := fields[1:]
	if n := arity[t]; len(args) < n[0] || len(args) > n[1] {
		return Command{}, fmt.Errorf("line %d: %s takes %s, got %d", line, t, arityText(n), len(args))
	}
	cmd := Command{Type: t, Args: args, Line: line}

	switch t {
	case CommandTypeMove, CommandTypeResize:
		for i := range args {
			if _, err := cmd.IntArg(i); err != nil {
				return Command{}, err
			}
		}
	case CommandTypeSleep:
		if _, err := parseDuration(args[0]); err != nil {
			return Command{}, fmt.Errorf("line %d: %w", line, err)
		}
	case CommandTypeKey:
		if _, err := KeyPress(args[0]); err != nil {
			return Command{}, fmt.Errorf("line %d: %w", line, err)
		}
	}
	return cmd, nil
}

func arityText(n [2]int) string {
	switch {
	case n[0] == n[1] && n[0] == 0:
		return "no arguments"
	case n[0] == n[1] && n[0] == 1:
		return "1 argument"
	case n[0] == n[1]:
		return fmt.Sprintf("%d arguments", n[0])
	default:
		return fmt.Sprintf("%d to %d arguments", n[0], n[1])
	}
}

// splitFields splits on whitespace, keeping double-quoted strings whole.
func splitFields(s string) ([]string, error) {
	var (
		fields []string
		cur    strings.Builder
		inWord bool
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			end := i + 1
			for end < len(s) && s[end] != '"' {
				if s[end] == '\\' {
					end++
				}
				end++
			}
			if end >= len(s) {
				return nil, fmt.Errorf("unterminated string")
			}
			unq, err := strconv.Unquote(s[i : end+1])
			if err != nil {
				return nil, fmt.Errorf("bad string %s", s[i:end+1])
			}
			cur.WriteString(unq)
			inWord = true
			i = end
		case c == ' ' || c == '\t':
			if inWord {
				fields = append(fields, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteByte(c)
			inWord = true
		}
	}
	if inWord {
		fields = append(fields, cur.String())
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	return fields, nil
}
