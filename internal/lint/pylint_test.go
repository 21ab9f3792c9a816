package lint

import (
	"testing"

	"github.com/stretchr/testify/require"

	pberrors "git.home.luguber.info/inful/pybuilder/internal/errors"
)

const pylintFixture = `[
  {
    "type": "convention",
    "module": "app",
    "obj": "",
    "line": 1,
    "column": 0,
    "endLine": null,
    "endColumn": null,
    "path": "app.py",
    "symbol": "missing-module-docstring",
    "message": "Missing module docstring",
    "message-id": "C0114"
  },
  {
    "type": "warning",
    "module": "app",
    "obj": "",
    "line": 3,
    "column": 0,
    "endLine": 3,
    "endColumn": 9,
    "path": "app.py",
    "symbol": "unused-import",
    "message": "Unused import os",
    "message-id": "W0611"
  },
  {
    "type": "error",
    "module": "app",
    "obj": "main",
    "line": 7,
    "column": 4,
    "endLine": 7,
    "endColumn": 12,
    "path": "app.py",
    "symbol": "undefined-variable",
    "message": "Undefined variable 'frobnicate'",
    "message-id": "E0602"
  }
]`

func TestDecodePylint(t *testing.T) {
	diagnostics, err := DecodePylint([]byte(pylintFixture))
	require.NoError(t, err)
	require.Len(t, diagnostics, 3)

	// Convention maps to a note.
	require.Equal(t, SeverityNote, diagnostics[0].Severity)
	require.Equal(t, "C0114", diagnostics[0].Code)
	require.Equal(t, Position{Line: 1, Column: 0}, diagnostics[0].Start)
	require.Equal(t, Position{}, diagnostics[0].End, "null end columns decode to zero")

	// Unused-import is flagged as unused code.
	require.Equal(t, SeverityWarning, diagnostics[1].Severity)
	require.True(t, diagnostics[1].Unused)
	require.False(t, diagnostics[1].Deprecated)

	require.Equal(t, SeverityError, diagnostics[2].Severity)
	require.Equal(t, Position{Line: 7, Column: 4}, diagnostics[2].Start)
	require.Equal(t, Position{Line: 7, Column: 12}, diagnostics[2].End)
}

func TestDecodePylint_Malformed(t *testing.T) {
	_, err := DecodePylint([]byte("pylint exploded"))
	require.Error(t, err)
	require.True(t, pberrors.IsCategory(err, pberrors.CategoryLint))
}

func TestDecodePylint_EmptyRun(t *testing.T) {
	diagnostics, err := DecodePylint([]byte("[]"))
	require.NoError(t, err)
	require.Empty(t, diagnostics)
}

func TestPylintArgv(t *testing.T) {
	argv := PylintArgv("app.py", false)
	require.Equal(t, "pylint", argv[0])
	require.Equal(t, "app.py", argv[len(argv)-1])
	require.Contains(t, argv, "--exit-zero")
	require.NotContains(t, argv, "--from-stdin")

	require.Contains(t, PylintArgv("app.py", true), "--from-stdin")
}

func TestSeverityMapping(t *testing.T) {
	cases := map[string]Severity{
		"fatal":      SeverityFatal,
		"error":      SeverityError,
		"warning":    SeverityWarning,
		"convention": SeverityNote,
		"refactor":   SeverityNote,
		"info":       SeverityNote,
	}
	for messageType, want := range cases {
		if got := pylintSeverity(messageType); got != want {
			t.Errorf("pylintSeverity(%q) = %v, want %v", messageType, got, want)
		}
	}
}
