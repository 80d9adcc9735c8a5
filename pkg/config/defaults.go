package config

import "time"

const (
	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultStoreBackend = "file"
	DefaultStoreDir     = "appdata"

	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "cinehall"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultKafkaTopic = "cinehall.order-events"

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// Mandatory turnaround between two screenings in the same auditorium.
	DefaultTurnaroundBuffer = 30 * time.Minute

	DefaultTicketUnitPrice = 60.00

	DefaultSettlementDelayMin   = 2 * time.Second
	DefaultSettlementDelayMax   = 5 * time.Second
	DefaultLivenessPollInterval = 500 * time.Millisecond
	DefaultSettlementGraceDelay = 1 * time.Second

	DefaultAssignDelayMin = 20 * time.Second
	DefaultAssignDelayMax = 40 * time.Second
	DefaultPrepDelayMin   = 20 * time.Second
	DefaultPrepDelayMax   = 30 * time.Second
	DefaultFinishDelayMin = 10 * time.Second
	DefaultFinishDelayMax = 15 * time.Second

	DefaultPaginationLimit = 100
)
