package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldUserAgent  = "user_agent"
	FieldError      = "error"
	FieldOperation  = "operation"

	FieldMonth         = "month"
	FieldExpenseID     = "expense_id"
	FieldIncomeID      = "income_id"
	FieldCardID        = "card_id"
	FieldInstallmentID = "installment_id"
	FieldDescription   = "description"
	FieldAmountCents   = "amount_cents"
	FieldEntity        = "entity"
	FieldBackupRef     = "backup_ref"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentBilling = "billing"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentSheets  = "sheets"
	ComponentCache   = "cache"
	ComponentBackend = "backend"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpSnapshot = "snapshot"
	OpBackup   = "backup"
	OpShutdown = "shutdown"
	OpStartup  = "startup"
)
