package export

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bwmarrin/snowflake"

	"github.com/quckapp/audit/model"
)

const timeLayout = "2006-01-02 15:04:05"

var csvHeader = []string{
	"ID", "Tenant ID", "Actor ID", "Actor Email", "Actor Name",
	"Action", "Resource Type", "Resource ID", "Resource Name",
	"IP Address", "User Agent", "Session ID",
	"Severity", "Category", "Created At",
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9-_]`)

// Result describes a finished export artifact.
type Result struct {
	FilePath string
	FileURL  string
	FileSize int64
}

// CSVExporter writes report datasets as CSV files under a local export
// directory. Filenames embed a snowflake id so concurrent exports of the
// same report name never collide.
type CSVExporter struct {
	dir  string
	node *snowflake.Node
}

func NewCSVExporter(dir string, node *snowflake.Node) *CSVExporter {
	return &CSVExporter{dir: dir, node: node}
}

func (e *CSVExporter) Export(records []*model.AuditRecord, reportName, reportID string) (Result, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return Result{}, fmt.Errorf("could not create export directory: %w", err)
	}

	filename := fmt.Sprintf("%s_%s_%s.csv", sanitizeFilename(reportName), shortID(reportID), e.node.Generate())
	path := filepath.Join(e.dir, filename)

	file, err := os.Create(path)
	if err != nil {
		return Result{}, fmt.Errorf("could not create export file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(csvHeader); err != nil {
		return Result{}, err
	}
	for _, rec := range records {
		row := []string{
			rec.ID,
			rec.TenantID,
			rec.ActorID,
			rec.ActorEmail,
			rec.ActorName,
			rec.Action,
			rec.ResourceType,
			rec.ResourceID,
			rec.ResourceName,
			rec.IPAddress,
			rec.UserAgent,
			rec.SessionID,
			string(rec.Severity),
			string(rec.Category),
			rec.CreatedAt.UTC().Format(timeLayout),
		}
		if err := writer.Write(row); err != nil {
			return Result{}, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return Result{}, err
	}

	info, err := file.Stat()
	if err != nil {
		return Result{}, err
	}
	slog.Info("Exported audit records to CSV", "records", len(records), "file", filename, "bytes", info.Size())

	return Result{
		FilePath: path,
		FileURL:  "/api/v1/audit/reports/" + reportID + "/download",
		FileSize: info.Size(),
	}, nil
}

// Resolve finds the export artifact written for a report id. Filenames are
// not stored verbatim, so the lookup matches on the embedded id prefix.
func (e *CSVExporter) Resolve(reportID string) (string, error) {
	marker := "_" + shortID(reportID) + "_"
	entries, err := os.ReadDir(e.dir)
	if err != nil {
		return "", fmt.Errorf("could not read export directory: %w", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.Contains(entry.Name(), marker) {
			return filepath.Join(e.dir, entry.Name()), nil
		}
	}
	return "", fmt.Errorf("no export found for report %s", reportID)
}

func sanitizeFilename(name string) string {
	safe := strings.ToLower(unsafeFilenameChars.ReplaceAllString(name, "_"))
	if len(safe) > 50 {
		safe = safe[:50]
	}
	return safe
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
