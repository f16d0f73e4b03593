package formatter

import (
	"github.com/alexanderramin/glidepath/internal/service"
)

// FormatBackupList renders backups newest first, as ListBackups returns them.
func FormatBackupList(backups []service.BackupInfo) string {
	rows := make([][]string, 0, len(backups))
	for _, info := range backups {
		rows = append(rows, []string{
			info.Name,
			info.CreatedAt.Format("2006-01-02 15:04:05 UTC"),
		})
	}
	return RenderTable([]string{"NAME", "CREATED"}, rows)
}
