package storage

// Record store backends selectable from configuration.
const (
	TypeFile     = "file"
	TypePostgres = "postgres"
)
