package blossom

import "context"

// Numerical tolerance used throughout the solver: two float64 duals or
// slacks within Epsilon of each other are treated as equal, and a slack
// within Epsilon of zero is treated as tight.
const Epsilon = 1e-9

// infinity is the sentinel dual/slack value used for nodes with no
// meaningful upper bound during initialization; it is finite so ordinary
// float64 arithmetic and the pairing heap's ordering stay well-defined.
const infinity = 1e100

// NoPerfectMatchingThreshold bounds how far any tree's epsilon may grow
// before the driver gives up and reports NoPerfectMatchingError, rather
// than looping (or, on a pathological input, drifting toward float64
// overflow) forever. A tree whose epsilon must exceed this to make further
// primal progress is treated as proof the graph (restricted to whatever
// component that tree spans) admits no perfect matching at all.
const NoPerfectMatchingThreshold = 1e10

// Objective selects whether Solve searches for a minimum-weight or
// maximum-weight perfect matching. Internally Maximize is implemented by
// negating every edge weight and minimizing, then negating the reported
// weight back (round-trip property: MINIMIZE(w) == -MAXIMIZE(-w)).
type Objective int8

const (
	// Minimize finds the perfect matching of least total weight.
	Minimize Objective = iota
	// Maximize finds the perfect matching of greatest total weight.
	Maximize
)

func (o Objective) String() string {
	if o == Maximize {
		return "maximize"
	}
	return "minimize"
}

// Initialization selects the warm-start strategy used to seed the trees
// and dual variables before the main loop runs.
type Initialization int8

const (
	// InitNone starts every vertex as a singleton tree with dual 0 and lets
	// the main loop discover all structure from scratch. Slowest but
	// simplest, useful as a correctness baseline.
	InitNone Initialization = iota
	// InitGreedy first pre-matches vertices greedily along tight edges
	// (zero slack once the minimum edge weight is shifted out); every
	// vertex left unmatched becomes a singleton tree root.
	InitGreedy
	// InitFractional runs InitGreedy, then a bounded prefix of genuine
	// grow/shrink/augment/dual-update rounds before the main loop takes
	// over — real tree structure and real duals, not just a static guess.
	// Slower to set up than InitGreedy but usually leaves the main loop far
	// less work.
	InitFractional
)

func (i Initialization) String() string {
	switch i {
	case InitGreedy:
		return "greedy"
	case InitFractional:
		return "fractional"
	default:
		return "none"
	}
}

// DualUpdateStrategy selects how the dual updater picks which trees to
// advance, and by how much, on each round of the main loop.
type DualUpdateStrategy int8

const (
	// SingleTree advances exactly one tree per call, by the largest epsilon
	// increment that keeps every dual and slack feasible. Simplest strategy,
	// most calls into the dual updater.
	SingleTree DualUpdateStrategy = iota
	// FixedDelta advances every tree simultaneously by the same epsilon
	// increment: the largest value that keeps every tree's dual and slack
	// variables feasible. Default strategy.
	FixedDelta
	// ConnectedComponents partitions the trees into connected components of
	// the auxiliary tree-edge graph, joined only by tight cross-tree
	// (+,-)/(-,+) edges, and advances each component by its own largest
	// feasible epsilon increment.
	ConnectedComponents
)

func (s DualUpdateStrategy) String() string {
	switch s {
	case SingleTree:
		return "single-tree"
	case ConnectedComponents:
		return "connected-components"
	default:
		return "fixed-delta"
	}
}

// PrimalOpKind identifies which primal operation OnPrimalOp is reporting.
type PrimalOpKind int8

const (
	OpGrow PrimalOpKind = iota
	OpAugment
	OpShrink
	OpExpand
)

func (k PrimalOpKind) String() string {
	switch k {
	case OpGrow:
		return "grow"
	case OpAugment:
		return "augment"
	case OpShrink:
		return "shrink"
	case OpExpand:
		return "expand"
	default:
		return "unknown"
	}
}

// Options configures Solve. The zero value is not directly usable; call
// DefaultOptions and override individual fields.
type Options struct {
	// Objective selects Minimize or Maximize. Defaults to Minimize.
	Objective Objective

	// Initialization selects the warm-start strategy. Defaults to
	// InitFractional, which in practice cuts the number of main-loop
	// rounds far below InitNone or InitGreedy for anything but tiny
	// graphs.
	Initialization Initialization

	// DualUpdateStrategy selects how the dual updater advances trees.
	// Defaults to FixedDelta.
	DualUpdateStrategy DualUpdateStrategy

	// UpdateDualsBefore, when true, runs one dual-update pass before the
	// first primal pass of each main-loop round. Defaults to true.
	UpdateDualsBefore bool

	// UpdateDualsAfter, when true, runs a second dual-update pass after the
	// primal pass of each main-loop round, in addition to the one before
	// it. Defaults to false: most graphs converge without it, and it
	// roughly doubles the number of dual-update calls.
	UpdateDualsAfter bool

	// Ctx bounds the main loop: checked once per round, an expired context
	// aborts Solve with ctx.Err(). Defaults to context.Background() (never
	// expires) if left nil.
	Ctx context.Context

	// OnPrimalOp, if set, is invoked after every primal operation the
	// driver performs, with the kind of operation and the number of nodes
	// in the tree it acted on (a blossom counts as one node; augment
	// reports 0, since both trees it joins are gone). Intended for
	// tests and instrumentation; must not retain or mutate solver state.
	OnPrimalOp func(kind PrimalOpKind, treeSize int)
}

// DefaultOptions returns the solver's default configuration: Minimize,
// InitFractional, FixedDelta, dual updates before each round only.
func DefaultOptions() Options {
	return Options{
		Objective:          Minimize,
		Initialization:     InitFractional,
		DualUpdateStrategy: FixedDelta,
		UpdateDualsBefore:  true,
		UpdateDualsAfter:   false,
		Ctx:                context.Background(),
	}
}

// Option mutates an Options in place, following the functional-options
// idiom used throughout this module.
type Option func(*Options)

func WithObjective(o Objective) Option { return func(opt *Options) { opt.Objective = o } }
func WithInitialization(i Initialization) Option {
	return func(opt *Options) { opt.Initialization = i }
}
func WithDualUpdateStrategy(s DualUpdateStrategy) Option {
	return func(opt *Options) { opt.DualUpdateStrategy = s }
}
func WithContext(ctx context.Context) Option { return func(opt *Options) { opt.Ctx = ctx } }
func WithPrimalOpHook(fn func(kind PrimalOpKind, treeSize int)) Option {
	return func(opt *Options) { opt.OnPrimalOp = fn }
}
func WithDualsAfter(v bool) Option { return func(opt *Options) { opt.UpdateDualsAfter = v } }
