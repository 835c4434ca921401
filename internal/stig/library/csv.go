package library

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

type csvColumn int

const (
	colVulnID csvColumn = iota
	colRuleID
	colStigID
	colSeverity
	colTitle
	colDescription
	colCheck
	colFix
	colCCI
	colNIST
)

// csvHeaders maps normalized header names from STIG Viewer and
// spreadsheet exports onto columns.
var csvHeaders = map[string]csvColumn{
	"vuln id":         colVulnID,
	"vuln num":        colVulnID,
	"vulnid":          colVulnID,
	"group id":        colVulnID,
	"rule id":         colRuleID,
	"ruleid":          colRuleID,
	"stig id":         colStigID,
	"rule ver":        colStigID,
	"severity":        colSeverity,
	"rule title":      colTitle,
	"title":           colTitle,
	"discussion":      colDescription,
	"vuln discuss":    colDescription,
	"vuln discussion": colDescription,
	"description":     colDescription,
	"check content":   colCheck,
	"check text":      colCheck,
	"fix text":        colFix,
	"fixtext":         colFix,
	"cci":             colCCI,
	"ccis":            colCCI,
	"cci ref":         colCCI,
	"nist":            colNIST,
	"nist sp 800-53":  colNIST,
	"800-53":          colNIST,
	"ia controls":     colNIST,
}

func parseCSV(data []byte) ([]StigRequirement, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return []StigRequirement{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: csv header: %v", ErrMalformedDocument, err)
	}
	index := map[csvColumn]int{}
	for i, name := range header {
		key := strings.Join(strings.Fields(strings.ReplaceAll(strings.ToLower(name), "_", " ")), " ")
		if col, ok := csvHeaders[key]; ok {
			if _, dup := index[col]; !dup {
				index[col] = i
			}
		}
	}
	_, hasVuln := index[colVulnID]
	_, hasRule := index[colRuleID]
	_, hasTitle := index[colTitle]
	if !hasVuln && !hasRule && !hasTitle {
		return nil, fmt.Errorf("%w: csv header has no vuln id, rule id or title column", ErrMalformedDocument)
	}

	out := []StigRequirement{}
	for line := 2; ; line++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: csv line %d: %v", ErrMalformedDocument, line, err)
		}
		field := func(col csvColumn) string {
			i, ok := index[col]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}
		if strings.TrimSpace(strings.Join(record, "")) == "" {
			continue
		}

		cci := field(colCCI)
		nist := field(colNIST)
		description := field(colDescription)
		controls := extractReferencedControls(cci, nist, description)
		controls = append(controls, extractBareControls(cci, nist)...)

		out = append(out, StigRequirement{
			VulnID:       field(colVulnID),
			RuleID:       field(colRuleID),
			StigID:       field(colStigID),
			Severity:     normalizeSeverity(field(colSeverity)),
			Title:        field(colTitle),
			Description:  description,
			CheckText:    field(colCheck),
			FixText:      field(colFix),
			CCI:          extractCCIs(cci),
			NISTControls: unique(controls),
		})
	}
	return out, nil
}
