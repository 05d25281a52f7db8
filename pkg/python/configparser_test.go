package python_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawire/vscinstall/pkg/python"
)

func TestConfigParser(t *testing.T) {
	t.Parallel()
	type testcase struct {
		Input     string
		Output    python.Config
		ErrorLine int
	}
	testcases := map[string]testcase{
		"empty": {
			Input:  "",
			Output: python.Config{},
		},
		"section-only": {
			Input:  "[vsc-ci]\n",
			Output: python.Config{"vsc-ci": {}},
		},
		"delimiters": {
			Input: "[s]\na = 1\nB: 2\nc=x=y\n",
			Output: python.Config{"s": {
				"a": "1",
				"b": "2",
				"c": "x=y",
			}},
		},
		"comments": {
			Input:  "# leading\n[s]\n; semicolon\nkey = value\n  # indented\n",
			Output: python.Config{"s": {"key": "value"}},
		},
		"continuation": {
			Input: strings.Join([]string{
				"[vsc-ci]",
				"additional_test_commands=",
				"    ./more_tests.sh",
				"",
				"    another-command",
				"other = 1",
				"",
			}, "\n"),
			Output: python.Config{"vsc-ci": {
				"additional_test_commands": "\n./more_tests.sh\n\nanother-command",
				"other":                    "1",
			}},
		},
		"no-section": {
			Input:     "key = value\n",
			ErrorLine: 1,
		},
		"duplicate-option": {
			Input:     "[s]\na=1\nA=2\n",
			ErrorLine: 3,
		},
		"duplicate-section": {
			Input:     "[s]\n[t]\n[s]\n",
			ErrorLine: 3,
		},
		"no-delimiter": {
			Input:     "[s]\njunk\n",
			ErrorLine: 2,
		},
	}
	for tcName, tcData := range testcases {
		tcData := tcData
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			cfg, err := python.NewConfigParser().Parse(strings.NewReader(tcData.Input))
			if tcData.ErrorLine > 0 {
				var perr *python.ParseError
				require.True(t, errors.As(err, &perr), "got %v", err)
				assert.Equal(t, tcData.ErrorLine, perr.Line)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tcData.Output, cfg)
		})
	}
}

func TestGetBoolean(t *testing.T) {
	t.Parallel()
	sect := python.ConfigSection{
		"a": "1",
		"b": "Yes",
		"c": "off",
		"d": "FALSE",
		"e": "maybe",
	}

	for key, expected := range map[string]bool{"a": true, "b": true, "c": false, "d": false} {
		val, ok, err := sect.GetBoolean(key)
		assert.NoError(t, err, key)
		assert.True(t, ok, key)
		assert.Equal(t, expected, val, key)
	}

	_, ok, err := sect.GetBoolean("e")
	assert.True(t, ok)
	assert.EqualError(t, err, `option "e": not a boolean: "maybe"`)

	_, ok, err = sect.GetBoolean("unset")
	assert.False(t, ok)
	assert.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, sect.Keys())
}

func TestGetLines(t *testing.T) {
	t.Parallel()
	sect := python.ConfigSection{
		"one":   "./more_tests.sh",
		"multi": "\n./more_tests.sh\n\nanother-command",
	}
	assert.Equal(t, []string{"./more_tests.sh"}, sect.GetLines("one"))
	assert.Equal(t, []string{"./more_tests.sh", "another-command"}, sect.GetLines("multi"))
	assert.Nil(t, sect.GetLines("unset"))
}
