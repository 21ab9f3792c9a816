package lint

import (
	"encoding/json"

	pberrors "git.home.luguber.info/inful/pybuilder/internal/errors"
)

// pylint message ids describing unused code.
var pylintUnusedIDs = map[string]bool{
	"W0611": true, // unused-import
	"W0612": true, // unused-variable
	"W0613": true, // unused-argument
	"W0614": true, // unused-wildcard-import
}

// pylint message ids describing deprecated usage.
var pylintDeprecatedIDs = map[string]bool{
	"W0402": true, // deprecated-module
	"W1505": true, // deprecated-method
	"W1511": true, // deprecated-argument
	"W1512": true, // deprecated-class
	"W1513": true, // deprecated-decorator
}

// PylintArgv returns the command line for linting path. With fromStdin set
// the buffer contents are piped on stdin and pylint is told to read them in
// place of the file on disk.
func PylintArgv(path string, fromStdin bool) []string {
	argv := []string{
		"pylint",
		"--output-format", "json",
		"--persistent", "n",
		"-j", "0",
		"--score", "n",
		"--exit-zero",
	}
	if fromStdin {
		argv = append(argv, "--from-stdin")
	}
	return append(argv, path)
}

// pylintMessage mirrors one entry of pylint's JSON output.
type pylintMessage struct {
	Type      string `json:"type"`
	MessageID string `json:"message-id"`
	Symbol    string `json:"symbol"`
	Message   string `json:"message"`
	Path      string `json:"path"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	EndLine   int    `json:"endLine"`
	EndColumn int    `json:"endColumn"`
}

// DecodePylint parses pylint JSON output into diagnostics.
func DecodePylint(output []byte) ([]Diagnostic, error) {
	var messages []pylintMessage
	if err := json.Unmarshal(output, &messages); err != nil {
		return nil, pberrors.LintDecodeFailed("pylint", err)
	}

	diagnostics := make([]Diagnostic, 0, len(messages))
	for _, msg := range messages {
		diagnostics = append(diagnostics, Diagnostic{
			Severity:   pylintSeverity(msg.Type),
			Code:       msg.MessageID,
			Symbol:     msg.Symbol,
			Message:    msg.Message,
			Path:       msg.Path,
			Start:      Position{Line: msg.Line, Column: msg.Column},
			End:        Position{Line: msg.EndLine, Column: msg.EndColumn},
			Unused:     pylintUnusedIDs[msg.MessageID],
			Deprecated: pylintDeprecatedIDs[msg.MessageID],
		})
	}
	return diagnostics, nil
}

func pylintSeverity(messageType string) Severity {
	switch messageType {
	case "fatal":
		return SeverityFatal
	case "error":
		return SeverityError
	case "warning":
		return SeverityWarning
	default:
		// convention, refactor, info
		return SeverityNote
	}
}
