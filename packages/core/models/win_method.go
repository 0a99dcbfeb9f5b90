package models

// Win methods, as reported on match results.
const (
	WinMethodFall             = "Fall"
	WinMethodTechnicalFall    = "Technical Fall"
	WinMethodMajorDecision    = "Major Decision"
	WinMethodDecision         = "Decision"
	WinMethodSuddenVictory    = "Sudden Victory"
	WinMethodTiebreaker       = "Tiebreaker"
	WinMethodInjuryDefault    = "Injury Default"
	WinMethodDisqualification = "Disqualification"
	WinMethodForfeit          = "Forfeit"
)

var winMethods = map[string]bool{
	WinMethodFall:             true,
	WinMethodTechnicalFall:    true,
	WinMethodMajorDecision:    true,
	WinMethodDecision:         true,
	WinMethodSuddenVictory:    true,
	WinMethodTiebreaker:       true,
	WinMethodInjuryDefault:    true,
	WinMethodDisqualification: true,
	WinMethodForfeit:          true,
}

// IsValidWinMethod reports whether method is a recognized win method.
func IsValidWinMethod(method string) bool {
	return winMethods[method]
}

// DominancePoints returns the dominance award for a win by the given method.
// Injury defaults, disqualifications, forfeits and overtime wins score zero
// pending a product decision on how they should be weighted.
func DominancePoints(method string) float64 {
	switch method {
	case WinMethodFall:
		return 6
	case WinMethodTechnicalFall:
		return 5
	case WinMethodMajorDecision:
		return 4
	case WinMethodDecision:
		return 3
	default:
		return 0
	}
}

// IsTimeBounded reports whether the elapsed-time field is meaningful for a
// win by the given method.
func IsTimeBounded(method string) bool {
	return method == WinMethodFall || method == WinMethodTechnicalFall
}
