package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// UpdateResult reports how a batch of family updates was merged.
type UpdateResult struct {
	Added    []string     `json:"added"`
	Updated  []string     `json:"updated"`
	Skipped  []string     `json:"skipped"`
	Snapshot SnapshotInfo `json:"snapshot"`
}

// Changed reports whether the update produced a new snapshot.
func (u UpdateResult) Changed() bool {
	return len(u.Added)+len(u.Updated) > 0
}

var stigVersionPattern = regexp.MustCompile(`^v(\d+)\s*r(\d+)$`)

// ApplyUpdates merges families into the active catalog by id. Unknown ids are
// appended; known ids are replaced only when the incoming STIG version is
// newer. When anything changes the prior snapshot is backed up first.
func (r *Repository) ApplyUpdates(doc Document, source string) (UpdateResult, error) {
	updates, err := Validate(doc.Families)
	if err != nil {
		return UpdateResult{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	merged := cloneAll(r.current.families)
	index := make(map[string]int, len(merged))
	for i, f := range merged {
		index[f.ID] = i
	}

	result := UpdateResult{Added: []string{}, Updated: []string{}, Skipped: []string{}}
	for _, u := range updates {
		i, ok := index[u.ID]
		if !ok {
			index[u.ID] = len(merged)
			merged = append(merged, u)
			result.Added = append(result.Added, u.ID)
			continue
		}
		if isNewerVersion(u.Version, merged[i].Version) {
			merged[i] = u
			result.Updated = append(result.Updated, u.ID)
			continue
		}
		result.Skipped = append(result.Skipped, u.ID)
	}

	if !result.Changed() {
		result.Snapshot = r.current.info
		return result, nil
	}

	version := strings.TrimSpace(doc.Version)
	if version == "" {
		version = fmt.Sprintf("%s+update.%d", r.current.info.Version, r.revision+1)
	}
	r.backupLocked("pre-update")
	r.current = r.newSnapshotLocked(merged, version, source)
	result.Snapshot = r.current.info
	return result, nil
}

// ParseStigVersion converts "V2R5" style STIG versions (or plain semantic
// versions) into a comparable semantic version.
func ParseStigVersion(raw string) (*semver.Version, error) {
	clean := strings.ToLower(strings.TrimSpace(raw))
	if m := stigVersionPattern.FindStringSubmatch(clean); m != nil {
		major, _ := strconv.Atoi(m[1])
		release, _ := strconv.Atoi(m[2])
		return semver.NewVersion(fmt.Sprintf("%d.%d.0", major, release))
	}
	return semver.NewVersion(clean)
}

// isNewerVersion reports whether candidate supersedes current. A parseable
// version always beats an unparseable or empty one.
func isNewerVersion(candidate, current string) bool {
	cv, err := ParseStigVersion(candidate)
	if err != nil {
		return false
	}
	ov, err := ParseStigVersion(current)
	if err != nil {
		return true
	}
	return cv.GreaterThan(ov)
}
