package mapper

import (
	"path"
	"strings"

	"github.com/crossnav/navd/src/navd/entity"
)

var _modesByExtension = map[string]entity.LanguageMode{
	".go":    "go",
	".ts":    "typescript",
	".tsx":   "typescript",
	".js":    "javascript",
	".jsx":   "javascript",
	".py":    "python",
	".java":  "java",
	".scala": "scala",
	".rb":    "ruby",
	".php":   "php",
	".c":     "cpp",
	".cc":    "cpp",
	".cpp":   "cpp",
	".h":     "cpp",
	".hpp":   "cpp",
	".cs":    "csharp",
	".rs":    "rust",
	".kt":    "kotlin",
	".swift": "swift",
}

// LanguageModeForPath derives the language mode from a document path's
// extension. The empty mode is returned for unrecognized extensions.
func LanguageModeForPath(p string) entity.LanguageMode {
	return _modesByExtension[strings.ToLower(path.Ext(p))]
}
