package models

import "strconv"

type Verdict string

const (
	VerdictUnderweight Verdict = "Underweight"
	VerdictNormal      Verdict = "Normal"
	VerdictOverweight  Verdict = "Overweight"
	VerdictObese       Verdict = "Obese"
)

const (
	bmiNormalLowerBound     = 18.5
	bmiOverweightLowerBound = 25.0
	bmiObeseLowerBound      = 30.0
)

// CalculateBMI returns weight / height² rounded to two decimals, with exact
// ties going to the even digit. A height that is not positive yields 0.
func CalculateBMI(height, weight float64) float64 {
	if height <= 0 {
		return 0
	}
	return roundHalfEven(weight/(height*height), 2)
}

// roundHalfEven rounds the exact binary value of v to places decimals.
func roundHalfEven(v float64, places int) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	return rounded
}

func ClassifyBMI(bmi float64) Verdict {
	switch {
	case bmi < bmiNormalLowerBound:
		return VerdictUnderweight
	case bmi < bmiOverweightLowerBound:
		return VerdictNormal
	case bmi < bmiObeseLowerBound:
		return VerdictOverweight
	default:
		return VerdictObese
	}
}
