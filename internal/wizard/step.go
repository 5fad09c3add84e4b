package wizard

// Step is one of RecipientStep, AmountStep or ConfirmStep.
type Step interface {
	// Number is the 1-based position of the step.
	Number() int
	isStep()
}

// RecipientStep collects the phone number.
type RecipientStep struct{}

// AmountStep collects amount and reference for a validated recipient.
type AmountStep struct {
	Recipient string
	TrxID     string
}

// ConfirmStep holds everything needed to submit.
type ConfirmStep struct {
	Recipient string
	TrxID     string
	Amount    int64
	Reference string
}

func (RecipientStep) Number() int { return 1 }
func (AmountStep) Number() int    { return 2 }
func (ConfirmStep) Number() int   { return 3 }

func (RecipientStep) isStep() {}
func (AmountStep) isStep()    {}
func (ConfirmStep) isStep()   {}

// Input is the raw text the user has entered so far.
type Input struct {
	Query     string
	Recipient string
	Amount    string
	Reference string
}

// Status is the submission state.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)
