package scanner

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Substring markers for technical companion files.
var technicalSubstrings = []string{"fingerprint", "checksum", "shntool", "shninfo"}

// Short tokens that must appear as whole words. "flac24" should hit
// "show.flac24.txt" but not "show.flac2496.txt".
var technicalWordRE = regexp.MustCompile(`(?i)\b(ffp|md5|sha256|sha1|flac16|flac24)\b`)

var technicalExtensions = []string{".ffp", ".md5", ".sha", ".sha1", ".sha256"}

// IsTechnicalDoc reports whether a filename looks like a fingerprint or
// checksum file rather than a setlist.
func IsTechnicalDoc(filename string) bool {
	lower := strings.ToLower(filename)

	for _, ext := range technicalExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	for _, sub := range technicalSubstrings {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	return technicalWordRE.MatchString(lower)
}

// FindDocuments collects every candidate setlist text file for a show:
// all non-technical .txt files in the show folder itself, plus files in
// the parent folder and in sibling "txt"/"text" directories whose names
// carry the show date (and archive ID when known). The result is
// deduplicated by absolute path.
func FindDocuments(folderPath, dateStr, archiveID string) ([]string, error) {
	var found []string

	entries, err := os.ReadDir(folderPath)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if entry.IsDir() || !isTxt(entry.Name()) || IsTechnicalDoc(entry.Name()) {
			continue
		}
		found = append(found, filepath.Join(folderPath, entry.Name()))
	}

	dateVariants := dateVariantsFor(dateStr)

	parent := filepath.Dir(folderPath)
	if parent != folderPath {
		parentEntries, err := os.ReadDir(parent)
		if err == nil {
			for _, entry := range parentEntries {
				if entry.IsDir() {
					if !siblingTxtDir(entry.Name()) || samePath(filepath.Join(parent, entry.Name()), folderPath) {
						continue
					}
					found = append(found, matchingDocs(filepath.Join(parent, entry.Name()), dateVariants, archiveID)...)
					continue
				}
				if !isTxt(entry.Name()) || IsTechnicalDoc(entry.Name()) {
					continue
				}
				if matchesShow(entry.Name(), dateVariants, archiveID) {
					found = append(found, filepath.Join(parent, entry.Name()))
				}
			}
		}
	}

	seen := make(map[string]struct{}, len(found))
	unique := make([]string, 0, len(found))
	for _, path := range found {
		key := path
		if abs, err := filepath.Abs(path); err == nil {
			key = abs
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, path)
	}
	return unique, nil
}

func matchingDocs(dir string, dateVariants []string, archiveID string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, entry := range entries {
		if entry.IsDir() || !isTxt(entry.Name()) || IsTechnicalDoc(entry.Name()) {
			continue
		}
		if matchesShow(entry.Name(), dateVariants, archiveID) {
			out = append(out, filepath.Join(dir, entry.Name()))
		}
	}
	return out
}

// matchesShow requires the date to appear in the filename, and the
// archive ID too when one is known.
func matchesShow(filename string, dateVariants []string, archiveID string) bool {
	lower := strings.ToLower(filename)
	dated := false
	for _, variant := range dateVariants {
		if strings.Contains(lower, strings.ToLower(variant)) {
			dated = true
			break
		}
	}
	if !dated {
		return false
	}
	if archiveID != "" && !strings.Contains(filename, archiveID) {
		return false
	}
	return true
}

func dateVariantsFor(dateStr string) []string {
	if dateStr == "" {
		return nil
	}
	variants := []string{dateStr}
	if len(dateStr) == 10 {
		variants = append(variants, dateStr[2:])
	}
	return variants
}

func isTxt(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".txt")
}

func siblingTxtDir(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "txt") || strings.Contains(lower, "text")
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}
