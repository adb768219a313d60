package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/IvanShishkin/filecommander/pkg/models"
)

// WriteMarkdown writes a summary, a per-type breakdown and the file table
func WriteMarkdown(w io.Writer, cat *models.Catalog) error {
	var sb strings.Builder

	// Header
	sb.WriteString("# File Catalog\n\n")

	// Summary
	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Parameter | Value |\n")
	sb.WriteString("|-----------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Root | `%s` |\n", cat.Root()))
	sb.WriteString(fmt.Sprintf("| Scan ID | `%s` |\n", cat.ID()))
	sb.WriteString(fmt.Sprintf("| Scanned At | %s |\n", cat.ScannedAt().Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("| Files | %d |\n", cat.Len()))
	sb.WriteString(fmt.Sprintf("| Total Size | %s |\n", FormatSize(cat.TotalSize())))
	sb.WriteString("\n")

	if cat.Len() == 0 {
		sb.WriteString("> No files\n")
		_, err := io.WriteString(w, sb.String())
		return err
	}

	// Statistics by type
	sb.WriteString("## Files by Type\n\n")
	sb.WriteString("| Type | Files | Size |\n")
	sb.WriteString("|------|-------|------|\n")
	for _, ft := range cat.FileTypes() {
		view := cat.Where(func(r models.FileRecord) bool { return r.FileType == ft })
		sb.WriteString(fmt.Sprintf("| %s | %d | %s |\n", ft, view.Len(), FormatSize(view.TotalSize())))
	}
	sb.WriteString("\n")

	// Files
	sb.WriteString("## Files\n\n")
	sb.WriteString("| Name | Type | Size | Modified | Directory |\n")
	sb.WriteString("|------|------|------|----------|-----------|\n")
	for _, r := range cat.Records() {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | `%s` |\n",
			escapeCell(r.Name),
			r.FileType,
			FormatSize(r.SizeBytes),
			r.ModifiedAt.Format("2006-01-02 15:04"),
			r.Directory()))
	}
	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// escapeCell keeps pipes in file names from breaking the table
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
