package retarget

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/motionrig/retarget/skeleton"
)

// Mode selects, per mapped target joint, how its per-frame rotation is
// derived from the source. The mode is decided once when the Context is
// built, never per frame.
type Mode int

const (
	// ModeWorldCopy composes the source world rotation with the joint's
	// static rest-alignment offset.
	ModeWorldCopy Mode = iota

	// ModeDelta applies the change in source orientation since its posed
	// rest (frame 0) on top of the direction-corrected target rest. Used
	// for formats whose rest pose is not identity.
	ModeDelta

	// ModeSkip keeps the joint at its local rest rotation every frame,
	// propagating parent motion only. Unmapped joints behave the same way.
	ModeSkip
)

func (m Mode) String() string {
	switch m {
	case ModeWorldCopy:
		return "world-copy"
	case ModeDelta:
		return "delta"
	default:
		return "skip"
	}
}

// ErrNilSkeleton is returned by NewContext when either skeleton is nil.
var ErrNilSkeleton = errors.New("retarget: nil skeleton")

// Options configures a Context.
type Options struct {
	// BodyHeight is the target character's body height, typically measured
	// from its mesh by the caller. When zero or negative, the target
	// skeleton's rest height is used instead.
	BodyHeight float32

	// Policy overrides the deliberate retargeting decisions; nil uses
	// DefaultPolicy.
	Policy *Policy

	// Logger receives diagnostics about the mapping; nil discards them.
	Logger *log.Logger
}

// Context holds everything the per-frame propagator needs that does not
// depend on a particular clip: dense target→source joint indices, per-joint
// modes, rest-alignment offsets, cached rest poses and the root motion
// scale. A Context is immutable after NewContext and may be shared across
// concurrent Retarget calls for clips of the same source format.
type Context struct {
	format Format
	target *skeleton.Skeleton
	source *skeleton.Skeleton

	targetRest *skeleton.RestPose
	sourceRest *skeleton.RestPose

	srcFor []int  // per target joint: mapped source joint index, or -1
	mode   []Mode // per target joint
	offset []mgl32.Quat

	scale        float32
	rootFallback string

	logger *log.Logger
}

// NewContext resolves the bone mapping for (target, source, format) and
// precomputes rest data, per-joint modes and offset quaternions. The result
// can be reused for every clip authored against the same source skeleton.
func NewContext(target, source *skeleton.Skeleton, format Format, opts *Options) (*Context, error) {
	if target == nil || source == nil {
		return nil, ErrNilSkeleton
	}
	if opts == nil {
		opts = &Options{}
	}
	policy := DefaultPolicy()
	if opts.Policy != nil {
		policy = *opts.Policy
		if policy.RootFallback == "" {
			policy.RootFallback = RootFallbackFirstMapped
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	ctx := &Context{
		format:       format,
		target:       target,
		source:       source,
		targetRest:   skeleton.NewRestPose(target),
		sourceRest:   skeleton.NewRestPose(source),
		srcFor:       make([]int, target.Len()),
		mode:         make([]Mode, target.Len()),
		rootFallback: policy.RootFallback,
		logger:       logger,
	}

	table := policy.tableWith(format)
	for i := range ctx.srcFor {
		ctx.srcFor[i] = -1
		ctx.mode[i] = ModeSkip
	}
	mapped := 0
	for si := 0; si < source.Len(); si++ {
		name := source.Joint(si).Name
		targetName, ok := table.target(name)
		if !ok {
			continue
		}
		ti, ok := target.IndexOf(targetName)
		if !ok {
			logger.Debug("target joint not found", "joint", targetName, "source", name)
			continue
		}
		if ctx.srcFor[ti] >= 0 {
			logger.Warn("target joint mapped twice, keeping first",
				"joint", targetName, "source", name)
			continue
		}
		ctx.srcFor[ti] = si
		switch {
		case table.skip[targetName]:
			ctx.mode[ti] = ModeSkip
		case table.posedRest:
			ctx.mode[ti] = ModeDelta
		default:
			ctx.mode[ti] = ModeWorldCopy
		}
		mapped++
	}
	logger.Debug("bone mapping resolved", "format", format.String(), "mapped", mapped)

	ctx.offset = solveOffsets(ctx, table)

	height := opts.BodyHeight
	if height <= 0 {
		height = ctx.targetRest.Height()
	}
	ctx.scale = rootScale(ctx.sourceRest, height)

	return ctx, nil
}

// Format returns the source format this context was built for.
func (ctx *Context) Format() Format { return ctx.format }

// Scale returns the root translation scale factor.
func (ctx *Context) Scale() float32 { return ctx.scale }

// Mode returns the retarget mode of the target joint at index i.
func (ctx *Context) Mode(i int) Mode { return ctx.mode[i] }

// SourceFor returns the mapped source joint index for target joint i,
// or -1 when unmapped.
func (ctx *Context) SourceFor(i int) int { return ctx.srcFor[i] }

// rootBinding resolves which target joint receives the translation track
// carried by the named source joint. When that joint is unmapped (a pure
// organizational root), the configured fallback policy applies.
func (ctx *Context) rootBinding(sourceJoint string) (int, bool) {
	si, ok := ctx.source.IndexOf(sourceJoint)
	if !ok {
		return -1, false
	}
	if ti := ctx.targetOf(si); ti >= 0 {
		return ti, true
	}
	if ctx.rootFallback != RootFallbackFirstMapped {
		fi, ok := ctx.source.IndexOf(ctx.rootFallback)
		if !ok {
			ctx.logger.Warn("root fallback joint not in source skeleton",
				"joint", ctx.rootFallback)
			return -1, false
		}
		if ti := ctx.targetOf(fi); ti >= 0 {
			return ti, true
		}
		return -1, false
	}
	for _, c := range ctx.source.Children(si) {
		if ti := ctx.targetOf(c); ti >= 0 {
			return ti, true
		}
	}
	return -1, false
}

// targetOf is the reverse of SourceFor: the target joint mapped to source
// joint si, or -1.
func (ctx *Context) targetOf(si int) int {
	for ti, s := range ctx.srcFor {
		if s == si {
			return ti
		}
	}
	return -1
}
