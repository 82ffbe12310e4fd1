// Package cardnumber generates and masks bank card numbers.
//
// A generated number is built from a scheme prefix, a 6-digit owner field,
// a 3-digit per-owner sequence and a trailing Luhn check digit. Generation
// is a pure function of its inputs plus the scheme metadata; uniqueness
// follows from the owner field and the monotonic sequence.
package cardnumber

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/benx421/bankcards/internal/models"
)

const (
	ownerFieldLength = 6
	sequenceLength   = 3
	maxSequence      = 999
	groupSize        = 4
)

// ErrSequenceExhausted is returned when an owner has already been issued
// the maximum number of cards of one scheme (sequence 000-999). This is
// fatal for that owner and scheme; it is never retried.
var ErrSequenceExhausted = errors.New("card number sequence exhausted")

// InconsistencyError reports a generated number whose length does not
// match the scheme's declared length. It indicates broken scheme
// metadata, not bad input.
type InconsistencyError struct {
	Number string
	Want   int
}

func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("generated number has length %d, scheme requires %d", len(e.Number), e.Want)
}

// Scheme describes the numbering rules of one card type.
type Scheme struct {
	Prefix  string
	Pattern *regexp.Regexp
	Length  int
}

var schemes = map[models.CardType]Scheme{
	models.CardTypeVisa: {
		Prefix:  "411111",
		Pattern: regexp.MustCompile(`^4[0-9]{12,15}$`),
		Length:  16,
	},
	models.CardTypeMastercard: {
		Prefix:  "511111",
		Pattern: regexp.MustCompile(`^5[1-5][0-9]{14}$`),
		Length:  16,
	},
}

// SchemeFor returns the numbering scheme for a card type.
func SchemeFor(cardType models.CardType) (Scheme, bool) {
	s, ok := schemes[cardType]
	return s, ok
}

// Generate produces the next card number for an owner under the given
// scheme. lastNumber is the most recently issued number of the same type
// for this owner, or empty when none exists; the new number continues its
// sequence. Any malformed lastNumber resets the sequence to zero.
func Generate(cardType models.CardType, ownerID int64, lastNumber string) (string, error) {
	scheme, ok := schemes[cardType]
	if !ok {
		return "", fmt.Errorf("unknown card type %q", cardType)
	}
	if ownerID < 0 {
		return "", fmt.Errorf("owner id must not be negative, got %d", ownerID)
	}

	ownerField := formatOwnerField(ownerID)

	seq := 0
	if strings.HasPrefix(lastNumber, scheme.Prefix) {
		seq = extractSequence(lastNumber, scheme.Prefix, ownerField) + 1
	}
	if seq > maxSequence {
		return "", fmt.Errorf("owner %d, type %s: %w", ownerID, cardType, ErrSequenceExhausted)
	}

	base := scheme.Prefix + ownerField + fmt.Sprintf("%0*d", sequenceLength, seq)
	number := base + strconv.Itoa(luhnCheckDigit(base))

	if len(number) != scheme.Length {
		return "", &InconsistencyError{Number: number, Want: scheme.Length}
	}
	return number, nil
}

// formatOwnerField keeps the lowest 6 decimal digits of the owner id,
// zero-padded on the left.
func formatOwnerField(ownerID int64) string {
	id := strconv.FormatInt(ownerID, 10)
	if len(id) > ownerFieldLength {
		id = id[len(id)-ownerFieldLength:]
	}
	return fmt.Sprintf("%0*s", ownerFieldLength, id)
}

// extractSequence reads the 3-digit sequence out of a previously issued
// number. A number issued to a different owner field, or one that cannot
// be parsed, counts as no prior number and yields -1.
func extractSequence(lastNumber, prefix, ownerField string) int {
	start := len(prefix)
	end := start + ownerFieldLength
	if len(lastNumber) < end+sequenceLength {
		return -1
	}
	if lastNumber[start:end] != ownerField {
		return -1
	}
	seq, err := strconv.Atoi(lastNumber[end : end+sequenceLength])
	if err != nil || seq < 0 {
		return -1
	}
	return seq
}

// luhnCheckDigit computes the check digit for a base number: starting
// from the rightmost digit, every second digit is doubled (minus 9 when
// the double exceeds 9), and the check digit brings the total sum to a
// multiple of 10.
func luhnCheckDigit(base string) int {
	sum := 0
	double := true
	for i := len(base) - 1; i >= 0; i-- {
		d := int(base[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return (10 - sum%10) % 10
}

// Valid reports whether a card number passes the Luhn check.
func Valid(number string) bool {
	if len(number) < 13 || len(number) > 19 {
		return false
	}
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		c := number[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// Mask hides all but the last 4 digits of a card number, grouping the
// output in blocks of 4 separated by single spaces:
//
//	Mask("4111111234567890") == "**** **** **** 7890"
func Mask(number string) string {
	if len(number) <= groupSize {
		return number
	}
	masked := len(number) - groupSize

	var b strings.Builder
	for i := 0; i < masked; i++ {
		b.WriteByte('*')
		if (i+1)%groupSize == 0 {
			b.WriteByte(' ')
		}
	}
	return b.String() + number[masked:]
}
