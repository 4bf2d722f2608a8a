package expe

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// rawExpe is the canonical on-disk shape: either {meta, items} or a bare
// items array.
type rawExpe struct {
	Meta Meta `json:"meta,omitempty"`
	QAs  []QA `json:"items"`
}

// Load reads an Expe from a JSON file, tolerating both the {meta,items}
// object shape and a bare top-level array.
func Load(path string) (*Expe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("expe: read %q: %w", path, err)
	}

	e := &Expe{Meta: Meta{}, Path: path}

	// Try the {meta, items} object shape first.
	var obj rawExpe
	if err := json.Unmarshal(data, &obj); err == nil && (obj.Meta != nil || obj.QAs != nil) {
		if obj.Meta != nil {
			e.Meta = obj.Meta
		}
		e.QAs = obj.QAs
		return e, nil
	}

	// Fall back to a bare array of QAs.
	var arr []QA
	if err := json.Unmarshal(data, &arr); err != nil {
		return nil, fmt.Errorf("expe: %q is neither {meta,items} nor a QA array: %w", path, err)
	}
	e.QAs = arr
	return e, nil
}

// Save writes the Expe as pretty-printed canonical JSON to path, computing a
// stats-based suffix and refusing to overwrite an existing file unless
// allowOverwrite is true. It returns the actual path written, which differs
// from the requested one because of the suffix.
func Save(e *Expe, path string, allowOverwrite bool) (string, error) {
	if e.Len() == 0 {
		return "", fmt.Errorf("expe: refusing to save an empty Expe")
	}

	out := WithStatsSuffix(path, e.Stats(), time.Now())

	if !allowOverwrite {
		if _, err := os.Stat(out); err == nil {
			return "", fmt.Errorf("expe: %q already exists, refusing to overwrite", out)
		}
	}

	raw := rawExpe{Meta: e.Meta, QAs: e.QAs}
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return "", fmt.Errorf("expe: marshal: %w", err)
	}

	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("expe: mkdir %q: %w", dir, err)
		}
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return "", fmt.Errorf("expe: write %q: %w", out, err)
	}
	return out, nil
}

// suffixPattern matches a previously-applied stats suffix so it can be
// replaced rather than appended again ("suffix idempotence").
var suffixPattern = regexp.MustCompile(`--\d+Q_\d+C_\d+F_\d+M_\d+A_\d+HE_\d+AE_\d{4}-\d{2}-\d{2}_\d{2}h\d{2},\d{2}$`)

// WithStatsSuffix rewrites path's stem to carry a "--<stats>_<timestamp>"
// suffix before the extension, replacing any such suffix already present.
func WithStatsSuffix(path string, s Stats, at time.Time) string {
	dir := filepath.Dir(path)
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext)
	stem = suffixPattern.ReplaceAllString(stem, "")

	suffix := fmt.Sprintf("--%dQ_%dC_%dF_%dM_%dA_%dHE_%dAE_%s",
		s.Questions, s.Chunks, s.Facts, s.Models, s.Answers, s.HumanEval, s.AutoEval,
		at.Format("2006-01-02_15h04,05"))

	name := stem + suffix + ext
	if dir == "." {
		return name
	}
	return filepath.Join(dir, name)
}
