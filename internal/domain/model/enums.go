package model

// Difficulty is the platform's three-level problem rating.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// DifficultyFromLevel maps the platform's numeric level to a Difficulty.
func DifficultyFromLevel(level int) Difficulty {
	switch level {
	case 1:
		return DifficultyEasy
	case 2:
		return DifficultyMedium
	case 3:
		return DifficultyHard
	default:
		return ""
	}
}

// Verdict is the judged outcome of a submission.
type Verdict string

const (
	VerdictAccepted          Verdict = "accepted"
	VerdictWrongAnswer       Verdict = "wrong_answer"
	VerdictTimeLimitExceeded Verdict = "time_limit_exceeded"
	VerdictRuntimeError      Verdict = "runtime_error"
	VerdictCompileError      Verdict = "compile_error"
	// VerdictUnknown marks a finished judgment whose platform status has no
	// member in this enum (memory/output limit and internal judge errors).
	VerdictUnknown Verdict = "unknown"
)

// Freshness selects how the cache coordinator treats an existing cached record.
type Freshness int

const (
	// UseCacheIfPresent returns the cached record without a network call when
	// one exists. This is the default policy.
	UseCacheIfPresent Freshness = iota
	// ForceRefresh always fetches from the platform, falling back to the
	// cached record only when the fetch fails.
	ForceRefresh
)
