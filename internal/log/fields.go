package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldAction      = "action"
	FieldUser        = "user"
	FieldNode        = "node"
	FieldRowID       = "row_id"
	FieldTxType      = "type"
	FieldAmount      = "amount"
	FieldCategory    = "category"
	FieldSimulated   = "simulated"
	FieldFormat      = "format"
	FieldRows        = "rows"
	FieldEventKind   = "event_kind"
	FieldSkippedRows = "skipped_rows"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentGateway = "gateway"
	ComponentSession = "session"
	ComponentNodes   = "nodes"
	ComponentForm    = "form"
	ComponentLedger  = "ledger"
	ComponentReport  = "report"
	ComponentEvents  = "events"
	ComponentStorage = "storage"
	ComponentStub    = "stub_gateway"
	ComponentAuth    = "auth"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpRead     = "read"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpList     = "list"
	OpSubmit   = "submit"
	OpExport   = "export"
	OpLogin    = "login"
	OpLogout   = "logout"
	OpValidate = "validate"
	OpPublish  = "publish"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

func NewFields() LogFields {
	return make(LogFields)
}

func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithScope adds the user and node a call acts on.
func (f LogFields) WithScope(user, node string) LogFields {
	f[FieldUser] = user
	if node != "" {
		f[FieldNode] = node
	}
	return f
}

// WithTransaction adds transaction fields. The reason and image are left out.
func (f LogFields) WithTransaction(txType, amount, category string) LogFields {
	f[FieldTxType] = txType
	f[FieldAmount] = amount
	if category != "" {
		f[FieldCategory] = category
	}
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
