package config

const (
	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvStoreBackend = "STORE_BACKEND"
	EnvStoreDir     = "STORE_DIR"

	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvKafkaBrokers = "KAFKA_BROKERS"
	EnvKafkaTopic   = "KAFKA_TOPIC"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvTurnaroundBuffer = "TURNAROUND_BUFFER"
	EnvTicketUnitPrice  = "TICKET_UNIT_PRICE"

	EnvSettlementDelayMin   = "SETTLEMENT_DELAY_MIN"
	EnvSettlementDelayMax   = "SETTLEMENT_DELAY_MAX"
	EnvLivenessPollInterval = "LIVENESS_POLL_INTERVAL"
	EnvSettlementGraceDelay = "SETTLEMENT_GRACE_DELAY"

	EnvAssignDelayMin = "ASSIGN_DELAY_MIN"
	EnvAssignDelayMax = "ASSIGN_DELAY_MAX"
	EnvPrepDelayMin   = "PREP_DELAY_MIN"
	EnvPrepDelayMax   = "PREP_DELAY_MAX"
	EnvFinishDelayMin = "FINISH_DELAY_MIN"
	EnvFinishDelayMax = "FINISH_DELAY_MAX"
)
