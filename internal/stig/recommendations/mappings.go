package recommendations

import "strings"

var developmentIndicators = []string{
	"node",
	"postgres",
	"api",
	"application",
	"web",
	"react",
	"javascript",
	"typescript",
	"express",
	"microservice",
}

var appSecurityMarkers = []string{"application", "web", "nodejs", "secure-coding"}

var infrastructureMarkers = []string{"windows-server", "cisco", "vmware", "rhel", "ubuntu"}

// exactTechnologies maps a family id to the tokens that identify its
// technology directly in a design element.
var exactTechnologies = map[string][]string{
	"nodejs-security":       {"nodejs", "node.js"},
	"postgresql-9x":         {"postgresql", "postgres"},
	"windows-server-2022":   {"windows server"},
	"apache-web-server-2-4": {"apache", "httpd"},
	"iis-10-server":         {"iis"},
	"oracle-database-19c":   {"oracle"},
	"ms-sql-server-2022":    {"sql server", "mssql"},
	"docker-enterprise":     {"docker"},
	"kubernetes":            {"kubernetes", "k8s"},
	"rhel-9":                {"rhel", "red hat"},
	"ubuntu-22-04":          {"ubuntu"},
	"vmware-vsphere-8":      {"vmware", "vsphere", "esxi"},
	"cisco-ios-xe-router":   {"cisco"},
}

func isAppSecurityLike(id string) bool {
	return containsAny(strings.ToLower(id), appSecurityMarkers)
}

func isInfrastructureLike(id string) bool {
	return containsAny(strings.ToLower(id), infrastructureMarkers)
}

func isDevelopmentEnvironment(elements []DesignElement) bool {
	for _, el := range elements {
		if containsAny(designText(el), developmentIndicators) {
			return true
		}
	}
	return false
}

// exactTechnologyToken returns the first exact technology token for id found in text.
func exactTechnologyToken(id, text string) (string, bool) {
	for _, token := range exactTechnologies[id] {
		if strings.Contains(text, token) {
			return token, true
		}
	}
	return "", false
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}

func countMatches(text string, needles []string) int {
	n := 0
	for _, needle := range needles {
		if needle != "" && strings.Contains(text, needle) {
			n++
		}
	}
	return n
}

func requirementText(r Requirement) string {
	return strings.ToLower(strings.Join([]string{r.Title, r.Description, r.Category, r.ControlFamily, r.Source}, " "))
}

func designText(el DesignElement) string {
	return strings.ToLower(strings.Join([]string{el.Name, el.Description, el.Type, el.Technology}, " "))
}
