package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStep(t *testing.T) {
	t.Run("step 1 requires name and a parseable mobile", func(t *testing.T) {
		assert.NoError(t, ValidateStep(StepInput{Step: 1, ApplicantName: "Budi", Mobile: "0812-3456-7890"}))
		assert.Error(t, ValidateStep(StepInput{Step: 1, Mobile: "081234567890"}))
		assert.Error(t, ValidateStep(StepInput{Step: 1, ApplicantName: "Budi", Mobile: "no digits"}))
	})

	t.Run("step 2 bounds financials", func(t *testing.T) {
		assert.NoError(t, ValidateStep(StepInput{Step: 2, Amount: 50000, TermMonths: 24, MonthlyIncome: 9000}))
		assert.Error(t, ValidateStep(StepInput{Step: 2, Amount: 0, TermMonths: 24, MonthlyIncome: 9000}))
		assert.Error(t, ValidateStep(StepInput{Step: 2, Amount: 50000, TermMonths: 0, MonthlyIncome: 9000}))
		assert.Error(t, ValidateStep(StepInput{Step: 2, Amount: 50000, TermMonths: 361, MonthlyIncome: 9000}))
		assert.Error(t, ValidateStep(StepInput{Step: 2, Amount: 50000, TermMonths: 24, MonthlyIncome: 0}))
	})

	t.Run("step 3 requires consent", func(t *testing.T) {
		assert.NoError(t, ValidateStep(StepInput{Step: 3, Consent: true}))
		assert.Error(t, ValidateStep(StepInput{Step: 3, Consent: false}))
	})

	t.Run("unknown step is rejected", func(t *testing.T) {
		assert.Error(t, ValidateStep(StepInput{Step: 4}))
		assert.Error(t, ValidateStep(StepInput{Step: 0}))
	})
}
