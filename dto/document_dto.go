package dto

// Response messages returned by the document routes.
const (
	RequestUpdatedMessage = "Request updated successfully"
	DataReceivedMessage   = "Data received successfully!"
	TenantRemovedMessage  = "Tenant successfully removed"
	TenantMovedMessage    = "Tenant successfully moved apartments."

	RequestNotFoundMessage = "Request not found"
	TenantNotFoundMessage  = "Tenant ID not found in database."
	DatabaseErrorMessage   = "database error"
	NotObjectMessage       = "request body must be a JSON object"
)

type MessageDto struct {
	Message string `json:"message"`
}

type ErrorDto struct {
	Error string `json:"error"`
}

type HealthDto struct {
	Status string `json:"status"`
	Store  string `json:"store,omitempty"`
}

// SeedFileDto is the layout of the file loaded by the seed script.
type SeedFileDto struct {
	Requests []map[string]any `json:"requests"`
	Tenants  []map[string]any `json:"tenants"`
}
