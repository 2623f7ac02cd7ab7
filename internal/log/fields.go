package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldStatementID = "statement_id"
	FieldStatement   = "statement_name"
	FieldBatchSize   = "batch_size"
	FieldAdmitted    = "admitted"
	FieldDropped     = "dropped"
	FieldBackend     = "backend"
	FieldPath        = "path"
	FieldQueue       = "queue"
	FieldExchange    = "exchange"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentBackend = "backend"
	ComponentCLI     = "cli"
)

// Operations defines standard operation names
const (
	OpAdmit    = "admit"
	OpUpdate   = "update"
	OpRemove   = "remove"
	OpClear    = "clear"
	OpLoad     = "load"
	OpSave     = "save"
	OpSync     = "sync"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
