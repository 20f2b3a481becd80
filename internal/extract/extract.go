// Package extract implements the extract_inputs command: invoke the
// helper, check its exit status, and decode its stdout as a JSON array
// of strings.
package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/inputlab/cellbridge/internal/sidecar"
)

// HelperName is the logical name of the bundled extraction helper.
const HelperName = "extract-inputs"

// Inputs invokes `extract-inputs --single <path>` and returns the
// extracted input cells in helper order. Exactly three failure modes
// exist, each surfaced as a descriptive error: the helper could not be
// spawned, the helper exited non-zero (its stderr is embedded verbatim),
// or its stdout was not a JSON array of strings.
//
// The path is passed through unvalidated; existence and format checks
// are the helper's concern. No retry, no timeout: a single attempt.
func Inputs(ctx context.Context, inv sidecar.Invoker, path string) ([]string, error) {
	res, err := inv.Run(ctx, []string{"--single", path})
	if err != nil {
		return nil, fmt.Errorf("failed to run %s: %v", HelperName, err)
	}

	if res.ExitCode != 0 {
		return nil, fmt.Errorf("%s failed: %s", HelperName, lossyString(res.Stderr))
	}

	return decodeInputs(res.Stdout)
}

// decodeInputs parses stdout as a JSON array of strings. The shape is
// enforced element by element: json.Unmarshal treats a null as a no-op
// for both slices and strings, so relying on a single Unmarshal would
// quietly turn nulls into empty values.
func decodeInputs(stdout []byte) ([]string, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(stdout, &elems); err != nil {
		return nil, fmt.Errorf("parsing %s output: %v", HelperName, err)
	}
	if elems == nil && !startsWithArray(stdout) {
		return nil, fmt.Errorf("parsing %s output: expected a JSON array of strings", HelperName)
	}

	inputs := make([]string, len(elems))
	for i, el := range elems {
		if len(el) == 0 || el[0] != '"' {
			return nil, fmt.Errorf("parsing %s output: element %d is not a string", HelperName, i)
		}
		if err := json.Unmarshal(el, &inputs[i]); err != nil {
			return nil, fmt.Errorf("parsing %s output: %v", HelperName, err)
		}
	}
	return inputs, nil
}

func startsWithArray(b []byte) bool {
	trimmed := bytes.TrimLeft(b, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}

// lossyString decodes b as UTF-8, replacing invalid sequences, and trims
// the trailing newline helpers usually emit.
func lossyString(b []byte) string {
	s := strings.TrimRight(string(b), "\n")
	if utf8.ValidString(s) {
		return s
	}
	return strings.ToValidUTF8(s, string(utf8.RuneError))
}
