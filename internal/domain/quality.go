package domain

import "fmt"

// ReviewQuality is the 0-5 self-assessment of recall difficulty for a
// single review, as defined by the SM-2 algorithm.
type ReviewQuality int

// Quality ratings in SM-2 terms.
const (
	// QualityBlackout - complete blackout, no recall at all.
	QualityBlackout ReviewQuality = 0
	// QualityIncorrectRecalled - incorrect, but the answer was remembered once seen.
	QualityIncorrectRecalled ReviewQuality = 1
	// QualityIncorrectFamiliar - incorrect, but the correct answer seemed easy to recall.
	QualityIncorrectFamiliar ReviewQuality = 2
	// QualityCorrectDifficult - correct, recalled with serious difficulty.
	QualityCorrectDifficult ReviewQuality = 3
	// QualityCorrectHesitation - correct after a hesitation.
	QualityCorrectHesitation ReviewQuality = 4
	// QualityPerfect - perfect recall.
	QualityPerfect ReviewQuality = 5
)

// PassThreshold is the lowest quality that counts as a successful recall.
// Anything below it resets the repetition streak.
const PassThreshold ReviewQuality = QualityCorrectDifficult

// IsValid reports whether the quality is within the 0-5 range.
// Out-of-range values are a caller contract violation and are rejected,
// never clamped, so they cannot silently corrupt the scheduling math.
func (q ReviewQuality) IsValid() bool {
	return q >= QualityBlackout && q <= QualityPerfect
}

// IsCorrect reports whether the quality counts as a successful recall.
func (q ReviewQuality) IsCorrect() bool {
	return q >= PassThreshold
}

// ParseReviewButton maps the four-button review UI to quality ratings:
// "again" is a total failure, "hard" an incorrect-but-familiar answer,
// "good" a correct answer after hesitation, "easy" a perfect one.
func ParseReviewButton(button string) (ReviewQuality, error) {
	switch button {
	case "again":
		return QualityBlackout, nil
	case "hard":
		return QualityIncorrectFamiliar, nil
	case "good":
		return QualityCorrectHesitation, nil
	case "easy":
		return QualityPerfect, nil
	default:
		return 0, fmt.Errorf("%w: unknown review button %q", ErrInvalidQuality, button)
	}
}
