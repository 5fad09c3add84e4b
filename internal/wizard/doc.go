// Package wizard implements the three-step payment flow: recipient, amount,
// confirmation.
//
// The current step is a variant type; holding an AmountStep means the recipient
// was validated, holding a ConfirmStep means the amount was. Raw input is kept
// separately and survives Back. Two presets exist: a generic service payment
// that checks the account with the vendor after the amount step, and airtime,
// which checks the number with the vendor before leaving the recipient step.
package wizard
