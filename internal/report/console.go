package report

import (
	"fmt"
	"io"

	"github.com/IvanShishkin/filecommander/pkg/models"
	"github.com/pterm/pterm"
)

// WriteTable prints a summary and a table of at most limit records
// (limit <= 0 prints all of them)
func WriteTable(w io.Writer, cat *models.Catalog, limit int) error {
	fmt.Fprintln(w)
	fmt.Fprintln(w, pterm.Bold.Sprint(pterm.FgLightMagenta.Sprint("FILE CATALOG")))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s  %s\n", pterm.Gray("Root:"), cat.Root())
	fmt.Fprintf(w, "  %s %d\n", pterm.Gray("Files:"), cat.Len())
	fmt.Fprintf(w, "  %s  %s\n", pterm.Gray("Size:"), FormatSize(cat.TotalSize()))
	fmt.Fprintln(w)

	if cat.Len() == 0 {
		fmt.Fprintf(w, "  %s\n\n", pterm.Yellow("No files match"))
		return nil
	}

	shown := cat.Head(limit)

	data := pterm.TableData{{"Name", "Type", "Size", "Modified", "Last Accessed", "Directory"}}
	for _, r := range shown.Records() {
		accessed := "-"
		if r.HasAccessTime() {
			accessed = r.LastAccessedAt.Format("2006-01-02 15:04")
		}
		data = append(data, []string{
			r.Name,
			string(r.FileType),
			FormatSize(r.SizeBytes),
			r.ModifiedAt.Format("2006-01-02 15:04"),
			accessed,
			r.Directory(),
		})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, table)

	if shown.Len() < cat.Len() {
		fmt.Fprintf(w, "\n  %s\n", pterm.Gray(fmt.Sprintf("... %d more (use --limit 0 to show all)", cat.Len()-shown.Len())))
	}
	fmt.Fprintln(w)

	return nil
}
