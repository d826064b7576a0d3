package models

// SnapshotVersion adalah tag versi format file backup.
const SnapshotVersion = 1

// Snapshot adalah isi lengkap ledger untuk backup/restore.
type Snapshot struct {
	Version    int                `json:"version"`
	Timestamp  string             `json:"timestamp"`
	Customers  []Customer         `json:"customers"`
	Attendance []AttendanceRecord `json:"attendance"`
}
