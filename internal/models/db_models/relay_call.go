package db_models

// RelayCall records one forwarded provider request. Payloads and responses
// are never stored.
type RelayCall struct {
	BaseModel
	Endpoint   string `gorm:"index"`
	StatusCode int
	DurationMs int64
	Error      string
	TraceID    string `gorm:"index"`
}
