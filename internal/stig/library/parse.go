package library

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Format is the on-disk encoding of a STIG document.
type Format string

const (
	FormatXML Format = "xml"
	FormatCSV Format = "csv"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported stig document format")
	ErrMalformedDocument = errors.New("malformed stig document")
)

// StigRequirement is one rule extracted from a STIG document.
type StigRequirement struct {
	VulnID       string   `json:"vulnId"`
	RuleID       string   `json:"ruleId,omitempty"`
	StigID       string   `json:"stigId,omitempty"`
	Severity     string   `json:"severity"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	CheckText    string   `json:"checkText"`
	FixText      string   `json:"fixText"`
	CCI          []string `json:"cci"`
	NISTControls []string `json:"nistControls"`
}

// ParseFormat normalizes a format name.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(raw), ".")) {
	case "xml", "xccdf":
		return FormatXML, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, raw)
	}
}

// ContentType is the MIME type used when storing documents of this format.
func (f Format) ContentType() string {
	if f == FormatXML {
		return "application/xml"
	}
	return "text/csv"
}

// DetectFormat guesses the format from the first non-space byte.
func DetectFormat(data []byte) Format {
	trimmed := bytes.TrimLeft(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")), " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '<' {
		return FormatXML
	}
	return FormatCSV
}

// Parse converts a STIG document into requirement records. An empty
// document yields an empty list.
func Parse(format Format, data []byte) ([]StigRequirement, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []StigRequirement{}, nil
	}
	switch format {
	case FormatXML:
		return parseXCCDF(data)
	case FormatCSV:
		return parseCSV(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

var (
	cciPattern        = regexp.MustCompile(`CCI-\d{6}`)
	controlPattern    = regexp.MustCompile(`\b(?:AC|AT|AU|CA|CM|CP|IA|IR|MA|MP|PE|PL|PM|PS|PT|RA|SA|SC|SI|SR)-\d{1,2}\b(?:\s*\(\d{1,2}\))?`)
	controlRefPattern = regexp.MustCompile(`800-53[^:\n]*::\s*([A-Z]{2}-\d{1,2}(?:\s*\(\d{1,2}\))?)`)
	severityByCat     = map[string]string{"cat i": "high", "cat ii": "medium", "cat iii": "low"}
)

func extractCCIs(texts ...string) []string {
	var out []string
	for _, text := range texts {
		out = append(out, cciPattern.FindAllString(text, -1)...)
	}
	return unique(out)
}

// extractReferencedControls finds "NIST SP 800-53 ... :: AC-2 (1)" references.
func extractReferencedControls(texts ...string) []string {
	var out []string
	for _, text := range texts {
		for _, m := range controlRefPattern.FindAllStringSubmatch(text, -1) {
			out = append(out, normalizeControl(m[1]))
		}
	}
	return out
}

func extractBareControls(texts ...string) []string {
	var out []string
	for _, text := range texts {
		for _, m := range controlPattern.FindAllString(text, -1) {
			out = append(out, normalizeControl(m))
		}
	}
	return out
}

func normalizeControl(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

func normalizeSeverity(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if mapped, ok := severityByCat[s]; ok {
		return mapped
	}
	return s
}

func unique(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}
