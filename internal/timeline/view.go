package timeline

import "math"

// Zoom and viewport defaults.
const (
	DefaultZoom      = 1.0
	DefaultMinZoom   = 0.25
	DefaultMaxZoom   = 2.5
	DefaultZoomStep  = 1.2
	MaxTimelineWidth = 1000.0

	// viewportShare is the fraction of the viewport given to the timeline.
	viewportShare = 0.8
)

// ZoomPolicy bounds interactive zooming.
type ZoomPolicy struct {
	Min  float64
	Max  float64
	Step float64
}

// DefaultZoomPolicy allows zooming between 0.25x and 2.5x in steps of 1.2.
func DefaultZoomPolicy() ZoomPolicy {
	return ZoomPolicy{Min: DefaultMinZoom, Max: DefaultMaxZoom, Step: DefaultZoomStep}
}

// Clamp limits z to the policy bounds.
func (p ZoomPolicy) Clamp(z float64) float64 {
	return math.Min(p.Max, math.Max(p.Min, z))
}

// ViewState is the interactive state a layout pass runs under. It is a
// value type: every change returns a new ViewState.
type ViewState struct {
	Zoom          float64
	ViewportWidth float64
	// Editing holds the id of the task being renamed, if any.
	Editing string
	Policy  ZoomPolicy
}

// NewViewState returns a view at zoom 1 for the given viewport width.
// A viewport width of 0 means unknown.
func NewViewState(viewportWidth float64) ViewState {
	return ViewState{
		Zoom:          DefaultZoom,
		ViewportWidth: viewportWidth,
		Policy:        DefaultZoomPolicy(),
	}
}

// TimelineWidth is the pixel budget for the full time range before zoom:
// 80% of the viewport, capped at MaxTimelineWidth.
func (v ViewState) TimelineWidth() float64 {
	if v.ViewportWidth <= 0 {
		return DefaultTimelineWidth
	}
	return math.Min(MaxTimelineWidth, v.ViewportWidth*viewportShare)
}

// EffectiveZoom returns the zoom factor, treating an unset zoom as 1.
func (v ViewState) EffectiveZoom() float64 {
	if v.Zoom <= 0 {
		return DefaultZoom
	}
	return v.Zoom
}

// ZoomIn multiplies the zoom by the policy step, up to the maximum.
func (v ViewState) ZoomIn() ViewState {
	v.Zoom = v.policy().Clamp(v.EffectiveZoom() * v.policy().Step)
	return v
}

// ZoomOut divides the zoom by the policy step, down to the minimum.
func (v ViewState) ZoomOut() ViewState {
	v.Zoom = v.policy().Clamp(v.EffectiveZoom() / v.policy().Step)
	return v
}

// WithZoom sets an explicit zoom, clamped to the policy.
func (v ViewState) WithZoom(z float64) ViewState {
	v.Zoom = v.policy().Clamp(z)
	return v
}

// WithViewport sets the viewport width.
func (v ViewState) WithViewport(width float64) ViewState {
	v.ViewportWidth = width
	return v
}

// WithEditing marks a task as being edited; an empty id clears it.
func (v ViewState) WithEditing(id string) ViewState {
	v.Editing = id
	return v
}

func (v ViewState) policy() ZoomPolicy {
	if v.Policy.Step <= 1 || v.Policy.Min <= 0 || v.Policy.Max < v.Policy.Min {
		return DefaultZoomPolicy()
	}
	return v.Policy
}
