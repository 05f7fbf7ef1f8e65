package jsonmend

// PrefixPolicy controls what happens to the label in front of an
// embedded value, as in "request_body: {...}".
type PrefixPolicy int

const (
	// PrefixDiscard replaces the string with the parsed value and drops
	// the label.
	PrefixDiscard PrefixPolicy = iota

	// PrefixKeep wraps the parsed value as
	// {"_prefix": <label>, "_data": <value>}.
	PrefixKeep
)

// Stage identifies one repair pass. Stages can be switched off
// individually with WithoutStage.
type Stage int

const (
	StageFences Stage = iota
	StageComments
	StageLiterals
	StageQuotes
	StageKeys
	StageTrailingCommas
	StageBareValues
	StageMissingCommas
	StageRevive
)

type config struct {
	maxDepth   int
	prefix     PrefixPolicy
	disabled   map[Stage]bool
	truncation bool
}

// Option configures a repair call.
type Option func(*config)

func newConfig(opts []Option) *config {
	cfg := &config{
		maxDepth: 10,
		disabled: map[Stage]bool{},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func (c *config) stageOn(s Stage) bool {
	return !c.disabled[s]
}

// WithMaxDepth caps how many times the reviver may re-enter the
// pipeline for nested embedded strings. The default is 10.
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		if depth > 0 {
			c.maxDepth = depth
		}
	}
}

// WithPrefixPolicy selects how labeled embedded values are replaced.
func WithPrefixPolicy(p PrefixPolicy) Option {
	return func(c *config) {
		c.prefix = p
	}
}

// WithoutStage disables the given repair stages.
func WithoutStage(stages ...Stage) Option {
	return func(c *config) {
		for _, s := range stages {
			c.disabled[s] = true
		}
	}
}

// WithTruncationRecovery additionally closes truncated structures when
// the post-repair parse still fails, so input cut off mid-stream can be
// recovered. Off by default.
func WithTruncationRecovery() Option {
	return func(c *config) {
		c.truncation = true
	}
}
