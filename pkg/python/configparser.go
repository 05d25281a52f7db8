// This file mimics the parts of `configparser.py` that INI-style tool configuration files
// (setup.cfg, tox.ini, vsc-ci.ini) rely on.

// Package python holds Go renditions of Python standard-library behavior that the files we
// read and write depend on.
package python

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"
)

type Config map[string]ConfigSection

type ConfigSection map[string]string

// ParseError is a syntax error at a specific line of the input.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

type ConfigParser struct {
	Delimiters            []string
	CommentPrefixes       []string
	InlineCommentPrefixes []string

	Strict             bool
	EmptyLinesInValues bool

	// Transform keys
	OptionTransform func(string) string
	// Transform values
	Interpolate func(Config, string) (string, error)
}

func NewConfigParser() *ConfigParser {
	return &ConfigParser{
		Delimiters:            []string{"=", ":"},
		CommentPrefixes:       []string{"#", ";"},
		InlineCommentPrefixes: []string{},

		Strict:             true,
		EmptyLinesInValues: true,

		OptionTransform: strings.ToLower,
		Interpolate:     NoInterpolation,
	}
}

func (p *ConfigParser) Parse(fp io.Reader) (Config, error) {
	config := make(Config)

	var (
		curIndentLevel int
		curSection     ConfigSection
		curKey         string
		curVal         []string
	)

	flushKV := func() {
		if curVal != nil {
			curSection[curKey] = strings.TrimRight(strings.Join(curVal, "\n"), "\n")
			curKey = ""
			curVal = nil
		}
	}

	fpLines := bufio.NewReader(fp)
	lineno := 0
	for keepGoing := true; keepGoing; {
		line, err := fpLines.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				return nil, err
			}
			keepGoing = false
		}
		lineno++

		commentStart := len(line)
		for _, commentPrefix := range p.InlineCommentPrefixes {
			// Python requires whitespace before an inline comment prefix.
			index := strings.Index(line, commentPrefix)
			if index > 0 && index < commentStart && unicode.IsSpace(rune(line[index-1])) {
				commentStart = index
			}
		}
		for _, commentPrefix := range p.CommentPrefixes {
			if strings.HasPrefix(strings.TrimSpace(line), commentPrefix) {
				commentStart = 0
				break
			}
		}
		value := strings.TrimSpace(line[:commentStart])

		if value == "" {
			if p.EmptyLinesInValues {
				// only a blank line (not a comment line) continues a value
				if curVal != nil && commentStart == len(line) && keepGoing {
					curVal = append(curVal, value)
				}
			} else {
				curIndentLevel = 0
			}
			continue
		}

		lineIndentLevel := len(line) - len(strings.TrimLeftFunc(line, unicode.IsSpace))
		switch {
		case curVal != nil && lineIndentLevel > 0 && lineIndentLevel > curIndentLevel:
			curVal = append(curVal, value)
		case strings.HasPrefix(value, "[") && strings.HasSuffix(value, "]"):
			flushKV()
			curIndentLevel = lineIndentLevel
			sectName := strings.TrimSuffix(strings.TrimPrefix(value, "["), "]")
			if _, exists := config[sectName]; !exists {
				config[sectName] = make(ConfigSection)
			} else if p.Strict {
				return nil, &ParseError{Line: lineno, Msg: fmt.Sprintf("duplicate section name %q", sectName)}
			}
			curSection = config[sectName]
		default:
			flushKV()
			curIndentLevel = lineIndentLevel
			if curSection == nil {
				return nil, &ParseError{Line: lineno, Msg: "no section header"}
			}
			sepPos := len(value)
			sepLen := 0
			for _, sep := range p.Delimiters {
				if index := strings.Index(value, sep); index >= 0 && index < sepPos {
					sepPos = index
					sepLen = len(sep)
				}
			}
			if sepPos == len(value) {
				return nil, &ParseError{Line: lineno, Msg: fmt.Sprintf("invalid line: %q", value)}
			}
			curKey = p.OptionTransform(strings.TrimSpace(value[:sepPos]))
			curVal = []string{
				strings.TrimSpace(value[sepPos+sepLen:]),
			}
			if _, exists := curSection[curKey]; p.Strict && exists {
				return nil, &ParseError{Line: lineno, Msg: fmt.Sprintf("duplicate option name %q", curKey)}
			}
		}
	}
	flushKV()

	for sect := range config {
		for key, val := range config[sect] {
			var err error
			config[sect][key], err = p.Interpolate(config, val)
			if err != nil {
				return nil, fmt.Errorf("[%s] %s: %w", sect, key, err)
			}
		}
	}

	return config, nil
}

func NoInterpolation(_ Config, val string) (string, error) {
	return val, nil
}

// Keys returns the option names of the section, sorted.
func (s ConfigSection) Keys() []string {
	keys := make([]string, 0, len(s))
	for key := range s {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// GetBoolean mimics `ConfigParser.getboolean()`; `ok` is false if the option is not set.
func (s ConfigSection) GetBoolean(key string) (val, ok bool, err error) {
	str, ok := s[key]
	if !ok {
		return false, false, nil
	}
	val, err = ParseBoolean(str)
	if err != nil {
		return false, true, fmt.Errorf("option %q: %w", key, err)
	}
	return val, true, nil
}

// GetLines splits a (possibly multi-line) option value into its non-empty lines.
func (s ConfigSection) GetLines(key string) []string {
	var ret []string
	for _, line := range strings.Split(s[key], "\n") {
		if line = strings.TrimSpace(line); line != "" {
			ret = append(ret, line)
		}
	}
	return ret
}

// ParseBoolean accepts the same spellings as `ConfigParser.BOOLEAN_STATES`.
func ParseBoolean(str string) (bool, error) {
	switch strings.ToLower(str) {
	case "1", "yes", "true", "on":
		return true, nil
	case "0", "no", "false", "off":
		return false, nil
	default:
		return false, fmt.Errorf("not a boolean: %q", str)
	}
}
