package model

// HintKind identifies the attribute a hint describes. The set and order of
// kinds is fixed: every guess produces exactly one hint per kind.
type HintKind string

const (
	HintDepartment HintKind = "department"
	HintOffice     HintKind = "office"
	HintTeams      HintKind = "teams"
	HintAge        HintKind = "age"
	HintSupervisor HintKind = "supervisor"
)

// HintKinds lists all hint kinds in evaluation order.
func HintKinds() []HintKind {
	return []HintKind{HintDepartment, HintOffice, HintTeams, HintAge, HintSupervisor}
}

// HintResult classifies how a guessed attribute compares to the target's.
type HintResult string

const (
	// ResultCorrect means the guessed value equals the target's value.
	ResultCorrect HintResult = "correct"
	// ResultIncorrect means no overlap, or an undefined numeric comparison.
	ResultIncorrect HintResult = "incorrect"
	// ResultPartial means multi-valued attributes share at least one
	// element but the sets are not equal.
	ResultPartial HintResult = "partial"
	// ResultHigher means the target's numeric value exceeds the guess.
	ResultHigher HintResult = "higher"
	// ResultLower means the target's numeric value is below the guess.
	ResultLower HintResult = "lower"
)

// Hint is the per-attribute comparison shown to the player. Value renders
// the guessed employee's attribute, never the target's.
type Hint struct {
	Kind   HintKind   `json:"type"`
	Value  string     `json:"message"`
	Result HintResult `json:"result"`
}

// Guess records one evaluated guess in the order it was made.
type Guess struct {
	EmployeeID   string `json:"employeeId"`
	EmployeeName string `json:"employeeName"`
	AvatarURL    string `json:"avatarImageUrl,omitempty"`
	Hints        []Hint `json:"hints"`
	IsCorrect    bool   `json:"isCorrect"`
}
