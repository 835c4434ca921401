package library

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"regexp"
	"strings"
)

type xccdfBenchmark struct {
	XMLName xml.Name     `xml:"Benchmark"`
	Groups  []xccdfGroup `xml:"Group"`
	Rules   []xccdfRule  `xml:"Rule"`
}

type xccdfGroup struct {
	ID     string       `xml:"id,attr"`
	Title  string       `xml:"title"`
	Rules  []xccdfRule  `xml:"Rule"`
	Groups []xccdfGroup `xml:"Group"`
}

type xccdfRule struct {
	ID          string           `xml:"id,attr"`
	Severity    string           `xml:"severity,attr"`
	Version     string           `xml:"version"`
	Title       string           `xml:"title"`
	Description xccdfDescription `xml:"description"`
	Idents      []xccdfIdent     `xml:"ident"`
	FixText     string           `xml:"fixtext"`
	Check       string           `xml:"check>check-content"`
}

// xccdfDescription covers both DISA encodings: VulnDiscussion escaped into
// the text, or present as a real child element.
type xccdfDescription struct {
	Text       string `xml:",chardata"`
	Discussion string `xml:"VulnDiscussion"`
}

type xccdfIdent struct {
	System string `xml:"system,attr"`
	Value  string `xml:",chardata"`
}

var (
	vulnDiscussionPattern = regexp.MustCompile(`(?s)<VulnDiscussion>(.*?)</VulnDiscussion>`)
	tagPattern            = regexp.MustCompile(`<[^>]+>`)
)

func parseXCCDF(data []byte) ([]StigRequirement, error) {
	var bench xccdfBenchmark
	dec := xml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&bench); err != nil {
		return nil, fmt.Errorf("%w: xccdf: %v", ErrMalformedDocument, err)
	}

	out := []StigRequirement{}
	for _, rule := range bench.Rules {
		out = append(out, ruleRequirement(xccdfGroup{}, rule))
	}
	var walk func(groups []xccdfGroup)
	walk = func(groups []xccdfGroup) {
		for _, g := range groups {
			for _, rule := range g.Rules {
				out = append(out, ruleRequirement(g, rule))
			}
			walk(g.Groups)
		}
	}
	walk(bench.Groups)
	return out, nil
}

func ruleRequirement(g xccdfGroup, rule xccdfRule) StigRequirement {
	description := rule.Description.discussion()

	var identTexts []string
	var cciTexts []string
	for _, ident := range rule.Idents {
		v := strings.TrimSpace(ident.Value)
		if cciPattern.MatchString(v) {
			cciTexts = append(cciTexts, v)
			continue
		}
		identTexts = append(identTexts, v)
	}

	controls := extractReferencedControls(append([]string{rule.Description.Text, description}, identTexts...)...)
	controls = append(controls, extractBareControls(identTexts...)...)

	return StigRequirement{
		VulnID:       strings.TrimSpace(g.ID),
		RuleID:       strings.TrimSpace(rule.ID),
		StigID:       strings.TrimSpace(rule.Version),
		Severity:     normalizeSeverity(rule.Severity),
		Title:        strings.TrimSpace(rule.Title),
		Description:  description,
		CheckText:    strings.TrimSpace(rule.Check),
		FixText:      strings.TrimSpace(rule.FixText),
		CCI:          extractCCIs(cciTexts...),
		NISTControls: unique(controls),
	}
}

func (d xccdfDescription) discussion() string {
	if v := strings.TrimSpace(d.Discussion); v != "" {
		return v
	}
	if m := vulnDiscussionPattern.FindStringSubmatch(d.Text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(tagPattern.ReplaceAllString(d.Text, " "))
}
