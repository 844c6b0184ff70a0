package utils

import (
	"fmt"
	u "net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

var filenameRegex = regexp.MustCompile(`[^a-zA-Z0-9_\-\. ]+`)

// SanitizeDirectory turns a search topic into a directory name (spaces become
// hyphens, no other normalization).
func SanitizeDirectory(topic string) string {
	return strings.ReplaceAll(topic, " ", "-")
}

// DeriveFilename picks an output filename for a link: the last URL path
// segment, sanitized; a short uuid name with the given extension when the URL
// carries no usable segment.
func DeriveFilename(link, fileType string) string {
	name := ""
	if parsed, err := u.Parse(link); err == nil {
		name = path.Base(parsed.Path)
	}
	if name == "." || name == "/" {
		name = ""
	}
	if unescaped, err := u.PathUnescape(name); err == nil {
		name = unescaped
	}
	name = filenameRegex.ReplaceAllString(name, "_")
	if name == "" || name == "_" {
		name = fmt.Sprintf("%s.%s", uuid.NewString()[:8], fileType)
	}
	return name
}

// RenewOutputPath appends -(n) before the extension until the path is free.
func RenewOutputPath(outputPath string) string {
	dir := filepath.Dir(outputPath)
	base := filepath.Base(outputPath)
	ext := filepath.Ext(base)
	name := base[:len(base)-len(ext)]
	index := 1
	for {
		outputPath = filepath.Join(dir, fmt.Sprintf("%s-(%d)%s", name, index, ext))
		if _, err := os.Stat(outputPath); os.IsNotExist(err) {
			return outputPath
		}
		index++
	}
}

type LinkEntry struct {
	URL string `yaml:"link"`
}

// ReadLinksFile loads a YAML list of links to download directly, bypassing
// search.
func ReadLinksFile(filePath string) ([]string, error) {
	log := GetLogger("config")
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading YAML file: %v", err)
	}
	var entries []LinkEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("error parsing YAML file: %v", err)
	}
	links := make([]string, 0, len(entries))
	for i, entry := range entries {
		if entry.URL == "" {
			return nil, fmt.Errorf("missing link for entry %d", i+1)
		}
		links = append(links, entry.URL)
	}
	log.Debug().Int("count", len(links)).Msg("Links loaded from YAML")
	return links, nil
}

func FormatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
