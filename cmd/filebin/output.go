package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"filebin/internal/api"
	"filebin/internal/format"
)

var outputFormatter format.Formatter = format.JSONFormatter{}

func writeJSON(payload any) error {
	return outputFormatter.Write(os.Stdout, payload)
}

func writePlain(format string, args ...any) error {
	_, err := fmt.Fprintf(os.Stdout, format, args...)
	return err
}

func writeFileList(files []api.FileResponse) error {
	for _, file := range files {
		if err := writePlain("%s\n", formatFileLine(file)); err != nil {
			return err
		}
	}
	return nil
}

func writeFileDetail(file api.FileResponse) error {
	lines := []string{
		fmt.Sprintf("id: %d", file.ID),
		fmt.Sprintf("name: %s", file.Name),
		fmt.Sprintf("state: %s", file.State),
		fmt.Sprintf("media_type: %s", file.MediaType),
		fmt.Sprintf("preview_kind: %s", file.PreviewKind),
		fmt.Sprintf("size: %s (%d bytes)", humanize.IBytes(uint64(file.SizeBytes)), file.SizeBytes),
		fmt.Sprintf("imported_at: %s", formatTime(file.ImportedAt)),
	}

	if file.TrashedAt != nil {
		lines = append(lines, fmt.Sprintf("trashed_at: %s", formatTime(*file.TrashedAt)))
		lines = append(lines, fmt.Sprintf("trashed: %s", humanize.Time(*file.TrashedAt)))
	}

	return writePlain("%s\n", strings.Join(lines, "\n"))
}

func formatFileLine(file api.FileResponse) string {
	marker := "·"
	if file.State == "trashed" {
		marker = "x"
	}
	return fmt.Sprintf("%s %d [%s] %s (%s)", marker, file.ID, file.PreviewKind, file.Name, humanize.IBytes(uint64(file.SizeBytes)))
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
