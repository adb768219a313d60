package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/IvanShishkin/filecommander/pkg/models"
)

// defaultCategories is the extension table. Sets must stay disjoint:
// an extension belongs to at most one category.
var defaultCategories = map[models.FileType][]string{
	models.FileTypeImage:    {".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp"},
	models.FileTypeVideo:    {".mp4", ".mkv", ".mov", ".avi"},
	models.FileTypeAudio:    {".mp3", ".wav", ".flac", ".aac"},
	models.FileTypeDocument: {".txt", ".md", ".pdf", ".doc", ".docx", ".rtf"},
	models.FileTypeData:     {".csv", ".tsv", ".xls", ".xlsx", ".parquet", ".json"},
	models.FileTypeCode:     {".py", ".js", ".ts", ".java", ".c", ".cpp", ".go", ".rs", ".rb", ".sh"},
	models.FileTypeArchive:  {".zip", ".tar", ".gz", ".bz2", ".7z"},
}

var defaultClassifier = mustClassifier(defaultCategories)

// Classifier maps extensions to file types
type Classifier struct {
	byExtension map[string]models.FileType
}

// NewClassifier returns a classifier loaded with the default table
func NewClassifier() *Classifier {
	return mustClassifier(defaultCategories)
}

func mustClassifier(categories map[models.FileType][]string) *Classifier {
	c := &Classifier{byExtension: make(map[string]models.FileType)}
	if err := c.Extend(categories); err != nil {
		panic(err)
	}
	return c
}

// Classify returns the category of ext. Matching ignores case and an
// unknown or empty extension yields FileTypeOther.
func (c *Classifier) Classify(ext string) models.FileType {
	if ft, ok := c.byExtension[strings.ToLower(ext)]; ok {
		return ft
	}
	return models.FileTypeOther
}

// Extend adds extensions to existing categories. It fails without
// changing c when a category is unknown or "other", or when an extension
// is already mapped.
func (c *Classifier) Extend(categories map[models.FileType][]string) error {
	added := make(map[string]models.FileType)

	for ft, extensions := range categories {
		if !ft.IsValid() || ft == models.FileTypeOther {
			return fmt.Errorf("cannot map extensions to category %q", ft)
		}
		for _, ext := range extensions {
			ext = normalizeExtension(ext)
			if ext == "" {
				return fmt.Errorf("empty extension for category %q", ft)
			}
			if existing, ok := c.byExtension[ext]; ok {
				return fmt.Errorf("extension %s already mapped to %s", ext, existing)
			}
			if existing, ok := added[ext]; ok && existing != ft {
				return fmt.Errorf("extension %s listed for both %s and %s", ext, existing, ft)
			}
			added[ext] = ft
		}
	}

	for ext, ft := range added {
		c.byExtension[ext] = ft
	}
	return nil
}

// Extensions returns the sorted extensions mapped to ft
func (c *Classifier) Extensions(ft models.FileType) []string {
	var exts []string
	for ext, mapped := range c.byExtension {
		if mapped == ft {
			exts = append(exts, ext)
		}
	}
	sort.Strings(exts)
	return exts
}

// normalizeExtension lowercases ext and adds the leading dot if missing
func normalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || ext == "." {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// ClassifyFileType classifies ext with the default table
func ClassifyFileType(ext string) models.FileType {
	return defaultClassifier.Classify(ext)
}
