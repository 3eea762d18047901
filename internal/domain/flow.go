package domain

import "fmt"

// Mutating steps of the multi-step flows
const (
	StepDebit          = "debit"
	StepAddItem        = "add_item"
	StepDecrementStock = "decrement_stock"
	StepCreditSeller   = "credit_seller"
	StepRemoveItem     = "remove_item"
	StepCreateListing  = "create_listing"
	StepDeactivate     = "deactivate"
	StepRefund         = "refund"
	StepConsume        = "consume_materials"
	StepGrantOutput    = "grant_output"
)

// StepError marks a failure at Step after at least one earlier step of the
// same flow was applied. Without an enclosing transaction those earlier
// steps stay applied.
type StepError struct {
	Step string
	Err  error
}

// NewStepError wraps err; a nil err stays nil
func NewStepError(step string, err error) error {
	if err == nil {
		return nil
	}
	return &StepError{Step: step, Err: err}
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %s failed after earlier steps applied: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
