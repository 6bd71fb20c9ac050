package domain

// Status is the outcome of one attempted operation.
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusError   Status = "ERROR"
)

// OperationResult is the outcome of processing one record. It is written once
// to the report and never revisited.
type OperationResult struct {
	Filename    string
	Transaction Transaction
	Status      Status
	Message     string
}

// NewSuccess builds a SUCCESS result for tx.
func NewSuccess(tx Transaction, message string) OperationResult {
	return OperationResult{
		Filename:    tx.Filename,
		Transaction: tx,
		Status:      StatusSuccess,
		Message:     message,
	}
}

// NewFailure builds an ERROR result for tx.
func NewFailure(tx Transaction, message string) OperationResult {
	return OperationResult{
		Filename:    tx.Filename,
		Transaction: tx,
		Status:      StatusError,
		Message:     message,
	}
}
