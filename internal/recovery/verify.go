// Package recovery implements the multi-factor security-answer verification
// used by the account-recovery flow.
package recovery

import (
	"crypto/hmac"
	"strings"
)

// Answers holds the three security answers, stored or submitted.
type Answers struct {
	A1 string
	A2 string
	A3 string
}

// check is one predicate in the verification sequence.
type check func(stored, submitted Answers) bool

// VerifyAnswers runs the three answer checks in fixed order (Q1, Q2, Q3),
// short-circuiting on the first failure. All comparisons trim whitespace,
// lowercase both sides, and use a timing-safe equality, so response latency
// does not leak partial matches. The caller learns only pass or fail, never
// which answer was wrong.
//
// The check chain is built fresh per call and discarded: the verifier is
// stateless and reentrant.
func VerifyAnswers(stored, submitted Answers) bool {
	chain := []check{
		func(s, u Answers) bool { return answersEqual(s.A1, u.A1) },
		func(s, u Answers) bool { return answersEqual(s.A2, u.A2) },
		func(s, u Answers) bool { return answersEqual(s.A3, u.A3) },
	}

	for _, c := range chain {
		if !c(stored, submitted) {
			return false
		}
	}
	return true
}

func answersEqual(stored, submitted string) bool {
	return hmac.Equal([]byte(normalize(stored)), []byte(normalize(submitted)))
}

// normalize folds stored and submitted answers into a comparable form.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
