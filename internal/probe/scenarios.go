package probe

// DefaultScenarios covers every severity band plus the baseline.
func DefaultScenarios() []Scenario {
	return []Scenario{
		{Name: "high", Text: "I feel anxious and overwhelmed"},
		{Name: "high-clamped", Text: "stressed, worried and exhausted, close to panic"},
		{Name: "medium", Text: "a bit tired and confused today"},
		{Name: "baseline", Text: "I went for a walk after lunch"},
		{Name: "low", Text: "I am calm and relaxed today"},
		{Name: "low-mixed", Text: "tired but happy and peaceful"},
	}
}
