// Package catalog holds the static file-extension catalogs and the
// high-threat classifier used to warn before downloading risky file types.
package catalog

import (
	"sort"
	"strings"

	"contentdl/internal/utils"
)

// FileExtensions maps a canonical description to one or more synonym
// extensions known to be downloadable.
var FileExtensions = map[string][]string{
	"Android package":           {"apk"},
	"Audio file":                {"mp3", "wav", "ogg"},
	"Batch file":                {"bat"},
	"Binary file":               {"bin"},
	"C source":                  {"c"},
	"C++ source":                {"cpp"},
	"Comma separated values":    {"csv"},
	"Compiled HTML help":        {"chm"},
	"Configuration information": {"cfg", "ini"},
	"Disk image":                {"dmg", "iso"},
	"Dynamic linked library":    {"dll"},
	"Executable":                {"exe", "com", "msi"},
	"GIF image":                 {"gif"},
	"HTML document":             {"html", "htm"},
	"JPEG image":                {"jpg", "jpeg"},
	"Java archive":              {"jar"},
	"Log file":                  {"log"},
	"Markdown document":         {"md"},
	"OpenDocument presentation": {"odp"},
	"OpenDocument spreadsheet":  {"ods"},
	"OpenDocument text":         {"odt"},
	"PNG image":                 {"png"},
	"Plain text":                {"txt"},
	"Portable document format":  {"pdf"},
	"PostScript":                {"ps"},
	"PowerPoint presentation":   {"ppt", "pptx"},
	"Program information":       {"inf"},
	"Python script":             {"py"},
	"Rich text format":          {"rtf"},
	"Screensaver":               {"scr"},
	"Shell script":              {"sh"},
	"Spreadsheet":               {"xls", "xlsx"},
	"System file":               {"sys"},
	"Tarball":                   {"tar", "gz", "tgz"},
	"Video file":                {"mp4", "mkv", "avi"},
	"Visual Basic script":       {"vbs"},
	"Windows registry file":     {"reg"},
	"Word document":             {"doc", "docx"},
	"XML document":              {"xml"},
	"Zip archive":               {"zip", "rar", "7z"},
	"e-book":                    {"epub", "mobi"},
}

// ThreatExtensions is the subset of extensions commonly used as malware
// carriers.
var ThreatExtensions = map[string][]string{
	"Android package":        {"apk"},
	"Batch file":             {"bat"},
	"Binary file":            {"bin"},
	"Compiled HTML help":     {"chm"},
	"Disk image":             {"dmg"},
	"Dynamic linked library": {"dll"},
	"Executable":             {"exe", "com", "msi"},
	"Java archive":           {"jar"},
	"Program information":    {"inf"},
	"Program shortcut":       {"pif"},
	"Screensaver":            {"scr"},
	"Shortcut":               {"lnk"},
	"System file":            {"sys"},
	"Visual Basic script":    {"vbs"},
	"Windows registry file":  {"reg"},
}

// IsHighThreat reports whether the extension belongs to any threat catalog
// entry, list-valued entries included.
func IsHighThreat(fileType string) bool {
	fileType = strings.ToLower(fileType)
	for _, exts := range ThreatExtensions {
		for _, ext := range exts {
			if fileType == ext {
				return true
			}
		}
	}
	return false
}

// RenderExtensions draws a catalog as a two-column table, sorted by
// description for stable output.
func RenderExtensions(extensions map[string][]string) string {
	names := make([]string, 0, len(extensions))
	for name := range extensions {
		names = append(names, name)
	}
	sort.Strings(names)
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{strings.Join(extensions[name], ", "), name})
	}
	return utils.RenderTable([]string{"Extension", "Description"}, rows)
}
