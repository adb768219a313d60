package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/IvanShishkin/filecommander/pkg/models"
)

// WriteCSV writes a header line with the schema column names followed by
// one line per record
func WriteCSV(w io.Writer, cat *models.Catalog) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(models.Columns()); err != nil {
		return err
	}

	for _, r := range cat.Records() {
		if err := cw.Write(csvRow(r)); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// EncodeCSV returns the CSV encoding of cat
func EncodeCSV(cat *models.Catalog) (string, error) {
	var sb strings.Builder
	if err := WriteCSV(&sb, cat); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func csvRow(r models.FileRecord) []string {
	return []string{
		r.Path,
		r.Directory(),
		r.Name,
		r.Extension,
		string(r.FileType),
		strconv.FormatInt(r.SizeBytes, 10),
		formatTime(r.CreatedAt),
		formatTime(r.ModifiedAt),
		formatTime(r.LastAccessedAt),
	}
}
