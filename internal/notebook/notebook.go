// Package notebook loads Jupyter notebook documents and extracts their code cells.
//
// Only the parts of the nbformat schema needed to find code are modelled:
// cells with their type and source, and the kernel language metadata.
package notebook

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Sentinel errors for notebook loading.
var (
	ErrRead  = errors.New("failed to read notebook")
	ErrParse = errors.New("failed to parse notebook")
)

// CellTypeCode is the cell_type value of executable cells.
const CellTypeCode = "code"

// DefaultLanguage is used when the notebook metadata names no language.
const DefaultLanguage = "python"

// Notebook is a parsed notebook document.
type Notebook struct {
	Cells    []Cell   `json:"cells"`
	Metadata Metadata `json:"metadata"`
}

// Cell is one notebook cell. Only the type and source are kept.
type Cell struct {
	CellType string `json:"cell_type"`
	Source   Source `json:"source"`
}

// Metadata holds the notebook-level metadata used to pick a lexer.
type Metadata struct {
	Kernelspec   Kernelspec   `json:"kernelspec"`
	LanguageInfo LanguageInfo `json:"language_info"`
}

// Kernelspec describes the kernel the notebook was written for.
type Kernelspec struct {
	Name     string `json:"name"`
	Language string `json:"language"`
}

// LanguageInfo describes the kernel language.
type LanguageInfo struct {
	Name string `json:"name"`
}

// Source is a cell's text as ordered fragments.
// Fragments carry their own line terminators and are joined with no separator.
type Source []string

// UnmarshalJSON accepts both the list form and the single-string form of
// "source" allowed by nbformat.
func (s *Source) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = nil
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = Source{single}
		return nil
	}

	var fragments []string
	if err := json.Unmarshal(data, &fragments); err != nil {
		return fmt.Errorf("source must be a string or a list of strings: %w", err)
	}
	*s = fragments
	return nil
}

// Text joins the fragments into the full cell text.
func (s Source) Text() string {
	return strings.Join(s, "")
}

// CodeCell is a qualifying code cell ready for rendering.
type CodeCell struct {
	Index int    // position in Notebook.Cells
	Code  string // joined source, never blank
}

// Load reads and parses the notebook at path.
func Load(path string) (*Notebook, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- notebook path is user-provided
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	nb, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return nb, nil
}

// Parse decodes notebook JSON. A document without "cells" yields an empty notebook.
func Parse(data []byte) (*Notebook, error) {
	var nb Notebook
	if err := json.Unmarshal(data, &nb); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return &nb, nil
}

// CodeCells returns the qualifying code cells in document order.
// A cell qualifies when its type is "code" and its joined source is not blank.
// Every entry point must go through this function.
func CodeCells(nb *Notebook) []CodeCell {
	if nb == nil {
		return nil
	}

	var cells []CodeCell
	for i, c := range nb.Cells {
		if c.CellType != CellTypeCode {
			continue
		}
		code := c.Source.Text()
		if strings.TrimSpace(code) == "" {
			continue
		}
		cells = append(cells, CodeCell{Index: i, Code: code})
	}
	return cells
}

// Language returns the notebook's programming language, lower-cased.
// language_info wins over kernelspec; DefaultLanguage when neither is set.
func Language(nb *Notebook) string {
	if nb != nil {
		if name := strings.TrimSpace(nb.Metadata.LanguageInfo.Name); name != "" {
			return strings.ToLower(name)
		}
		if lang := strings.TrimSpace(nb.Metadata.Kernelspec.Language); lang != "" {
			return strings.ToLower(lang)
		}
	}
	return DefaultLanguage
}
