package pricing

import (
	"errors"
	"fmt"
	"net/http"

	validator "github.com/go-playground/validator/v10"

	"github.com/noah-isme/goldshop-api/internal/common"
)

// MakingMode selects how the fabrication fee is charged.
type MakingMode string

const (
	// MakingPercent charges the making value as a percentage of the gold value.
	MakingPercent MakingMode = "percent"
	// MakingPerGram charges the making value per effective gram.
	MakingPerGram MakingMode = "per_gram"
)

// CalculationInput carries everything needed to price one jewellery item.
// The validate tags encode the business preconditions: weight and the 24K
// reference rate must be positive, percentages and fees non-negative.
type CalculationInput struct {
	Karat          float64    `json:"karat" validate:"gt=0"`
	WeightGrams    float64    `json:"weightGrams" validate:"gt=0"`
	Rate24K        float64    `json:"rate24k" validate:"gt=0"`
	WastagePercent float64    `json:"wastagePercent" validate:"gte=0"`
	MakingMode     MakingMode `json:"makingMode" validate:"required,oneof=percent per_gram"`
	MakingValue    float64    `json:"makingValue" validate:"gte=0"`
	HallmarkCharge float64    `json:"hallmarkCharge" validate:"gte=0"`
	TaxPercent     float64    `json:"taxPercent" validate:"gte=0"`
	ItemLabel      string     `json:"itemLabel" validate:"max=120"`
}

// CalculationResult is the itemized bill breakdown. All monetary fields
// are rounded to two decimals; EffectiveGrams keeps full precision. The
// sums are derived from the rounded components so the additive identities
// PreTax = GoldValue + MakingCharge + HallmarkCharge and
// FinalPrice = PreTax + TaxAmount hold exactly on the published values.
type CalculationResult struct {
	Karat          float64 `json:"karat"`
	WeightGrams    float64 `json:"weightGrams"`
	RatePerGram    float64 `json:"ratePerGram"`
	EffectiveGrams float64 `json:"effectiveGrams"`
	GoldValue      float64 `json:"goldValue"`
	MakingCharge   float64 `json:"makingCharge"`
	HallmarkCharge float64 `json:"hallmarkCharge"`
	PreTax         float64 `json:"preTax"`
	TaxAmount      float64 `json:"taxAmount"`
	FinalPrice     float64 `json:"finalPrice"`
}

// InvalidInputError reports a precondition violation on a CalculationInput,
// naming the offending field.
type InvalidInputError struct {
	Field string
	Rule  string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: field %q violates %q", e.Field, e.Rule)
}

// ValidateInput checks the CalculationInput preconditions. The first
// violated field is reported as a 422 AppError wrapping an
// *InvalidInputError, so errors.As reaches either form. Business inputs
// are never silently clamped.
func ValidateInput(v *validator.Validate, in CalculationInput) error {
	err := v.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		invalid := &InvalidInputError{Field: fieldErrs[0].Field(), Rule: fieldErrs[0].Tag()}
		return &common.AppError{
			Code:       "INVALID_INPUT",
			Message:    invalid.Error(),
			HTTPStatus: http.StatusUnprocessableEntity,
			Err:        invalid,
			Details:    map[string]any{"field": invalid.Field, "rule": invalid.Rule},
		}
	}
	return err
}

// Calculate produces the itemized breakdown for a validated input. It is a
// pure function of its argument: same input, same result. Callers are
// expected to run ValidateInput first.
func Calculate(in CalculationInput) CalculationResult {
	ratePerGram := RateForKarat(in.Rate24K, in.Karat)
	effectiveGrams := in.WeightGrams * (1 + in.WastagePercent/100)
	goldValue := ratePerGram * effectiveGrams

	var makingCharge float64
	switch in.MakingMode {
	case MakingPerGram:
		makingCharge = in.MakingValue * effectiveGrams
	default:
		makingCharge = goldValue * in.MakingValue / 100
	}

	preTax := goldValue + makingCharge + in.HallmarkCharge
	taxAmount := preTax * in.TaxPercent / 100

	gold := Round2(goldValue)
	making := Round2(makingCharge)
	hallmark := Round2(in.HallmarkCharge)
	tax := Round2(taxAmount)
	preTaxOut := Round2(gold + making + hallmark)

	return CalculationResult{
		Karat:          in.Karat,
		WeightGrams:    in.WeightGrams,
		RatePerGram:    Round2(ratePerGram),
		EffectiveGrams: effectiveGrams,
		GoldValue:      gold,
		MakingCharge:   making,
		HallmarkCharge: hallmark,
		PreTax:         preTaxOut,
		TaxAmount:      tax,
		FinalPrice:     Round2(preTaxOut + tax),
	}
}
