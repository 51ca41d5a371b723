package log

// Common field names for structured logging
const (
	FieldComponent     = "component"
	FieldRequestID     = "request_id"
	FieldMethod        = "method"
	FieldPath          = "path"
	FieldStatusCode    = "status_code"
	FieldDuration      = "duration_ms"
	FieldError         = "error"
	FieldOperation     = "operation"
	FieldTaskID        = "task_id"
	FieldTransactionID = "transaction_id"
	FieldTitle         = "title"
	FieldDescription   = "description"
	FieldAmount        = "amount"
	FieldType          = "type"
	FieldPriority      = "priority"
	FieldCategory      = "category"
	FieldMode          = "mode"
	FieldEmail         = "email"
	FieldStreak        = "streak"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentAPI     = "api"
	ComponentSession = "session"
	ComponentEngine  = "engine"
	ComponentStore   = "store"
	ComponentSummary = "summary"
	ComponentStorage = "storage"
	ComponentShell   = "shell"
)

// Operations defines standard operation names
const (
	OpLogin     = "login"
	OpSignup    = "signup"
	OpLogout    = "logout"
	OpEstablish = "establish"
	OpBootstrap = "bootstrap"
	OpCreate    = "create"
	OpUpdate    = "update"
	OpDelete    = "delete"
	OpDecompose = "decompose"
	OpList      = "list"
	OpRefresh   = "refresh"
	OpValidate  = "validate"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
