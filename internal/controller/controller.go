// Package controller keeps a remote-fetched report payload consistent
// with a mutable parameter set. It owns the parameter store, resolves
// descriptors on name changes, issues data fetches, and guards the view
// against out-of-order responses with a monotonically increasing token.
//
// There is no error channel: an unknown name, a descriptor miss, and a
// stale response are all silent no-ops, and a transport failure leaves
// the view loading until a later fetch supersedes it.
package controller

import (
	"context"
	"net/url"
	"strconv"
	"sync"

	"github.com/tinytelemetry/statview/internal/model"
	"github.com/tinytelemetry/statview/internal/params"
	"github.com/tinytelemetry/statview/internal/strutil"
	"github.com/tinytelemetry/statview/internal/typedval"
)

const reportPathPrefix = "stats/reports/"

// microsPerSecond converts the effective start time from epoch seconds to
// the microseconds the wire format requires.
const microsPerSecond = 1_000_000

// Config carries the fixed defaults substituted for unset parameters.
// DefaultStartTime is computed once at process start and injected here;
// it is not recomputed per fetch.
type Config struct {
	DefaultStartTime int64 // epoch seconds
	DefaultDuration  int64 // seconds
}

// View is the observable fetch state plus the two data projections. Both
// projections are replaced together from the same response, never
// partially.
type View struct {
	Phase        model.Phase
	TypedData    any
	StrippedData any
}

// Snapshot is a point-in-time copy of the controller's observable surface.
type Snapshot struct {
	View        View
	Descriptor  *model.ReportDescriptor
	Label       string
	LastOutcome Outcome
}

// Controller is the fetch coordinator. All state is guarded by mu; the
// two asynchronous collaborator calls run on their own goroutines and
// re-enter through locked methods.
type Controller struct {
	cfg       Config
	store     *params.Store
	registry  model.Registry
	transport model.Transport
	clock     model.Clock

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	desc        *model.ReportDescriptor
	label       string
	view        View
	token       int64
	lastOutcome Outcome

	// last values observed by the coordinator, for no-op suppression
	lastStart    *int64
	lastDuration *int64
	lastLabel    *string

	// edits staged by a bound UI, committed by Refresh
	pendingStart    *int64
	pendingDuration *int64
	pendingLabel    *string
}

// New wires a controller to its collaborators and subscribes it to its
// own parameter store.
func New(cfg Config, reg model.Registry, transport model.Transport, clk model.Clock) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		cfg:       cfg,
		store:     params.NewStore(),
		registry:  reg,
		transport: transport,
		clock:     clk,
		ctx:       ctx,
		cancel:    cancel,
	}
	c.store.Subscribe(c.handleParamChange)
	return c
}

// Close stops in-flight collaborator calls. Responses arriving afterwards
// are dropped by the transport context.
func (c *Controller) Close() {
	c.cancel()
}

// Params exposes the parameter store for external callers. Writes to it
// drive the controller through the same observation path as internal
// write-backs.
func (c *Controller) Params() *params.Store {
	return c.store
}

// SelectReport is shorthand for setting the focused report name.
func (c *Controller) SelectReport(name string) {
	c.store.SetName(name)
}

// Snapshot returns a copy of the observable state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := Snapshot{View: c.view, Label: c.label, LastOutcome: c.lastOutcome}
	if c.desc != nil {
		d := *c.desc
		snap.Descriptor = &d
	}
	return snap
}

// SetPendingStartTime stages a window-start edit in epoch seconds.
func (c *Controller) SetPendingStartTime(v int64) {
	c.mu.Lock()
	c.pendingStart = &v
	c.mu.Unlock()
}

// SetPendingDuration stages a window-length edit in seconds.
func (c *Controller) SetPendingDuration(v int64) {
	c.mu.Lock()
	c.pendingDuration = &v
	c.mu.Unlock()
}

// SetPendingClientLabel stages a client-label edit.
func (c *Controller) SetPendingClientLabel(v string) {
	c.mu.Lock()
	c.pendingLabel = &v
	c.mu.Unlock()
}

// Refresh commits staged edits into the parameter store. Each write flows
// through the normal observation path, so a fetch is issued only when a
// committed value actually differs; refreshing twice with no intervening
// edits does nothing the second time.
func (c *Controller) Refresh() {
	c.mu.Lock()
	start := c.pendingStart
	duration := c.pendingDuration
	label := c.pendingLabel
	c.mu.Unlock()

	if start != nil {
		c.store.SetStartTime(*start)
	}
	if duration != nil {
		c.store.SetDuration(*duration)
	}
	if label != nil {
		c.store.SetClientLabel(*label)
	}
}

// handleParamChange is the store observer: name changes start descriptor
// resolution, dependent parameter changes re-evaluate unless the value is
// unchanged since the coordinator last observed it.
func (c *Controller) handleParamChange(field params.Field) {
	vals := c.store.Snapshot()

	if field == params.FieldName {
		if !vals.NameSet {
			return
		}
		go c.resolve(vals.Name)
		return
	}

	c.mu.Lock()
	changed := false
	switch field {
	case params.FieldStartTime:
		if !eqInt64(c.lastStart, vals.StartTime) {
			c.lastStart = vals.StartTime
			changed = true
		}
	case params.FieldDuration:
		if !eqInt64(c.lastDuration, vals.Duration) {
			c.lastDuration = vals.Duration
			changed = true
		}
	case params.FieldClientLabel:
		if !eqString(c.lastLabel, vals.ClientLabel) {
			c.lastLabel = vals.ClientLabel
			changed = true
		}
	}

	if !changed {
		c.mu.Unlock()
		return
	}
	wb := c.evaluateLocked(vals)
	c.mu.Unlock()
	c.applyWriteback(wb)
}

// resolve fetches the descriptor for name and applies it on success.
// Resolution is last-write-wins: there is no staleness guard, so two
// overlapping resolutions apply in arrival order. A miss or a registry
// error changes nothing.
func (c *Controller) resolve(name string) {
	desc, err := c.registry.GetDescByName(c.ctx, name)
	if err != nil || desc == nil {
		return
	}

	c.mu.Lock()
	c.desc = desc
	c.label = strutil.TitleFromEnum(string(desc.Type))
	wb := c.evaluateLocked(c.store.Snapshot())
	c.mu.Unlock()
	c.applyWriteback(wb)
}

// writeback is a deferred store write echoing an effective value back to
// the external parameter surface.
type writeback struct {
	field params.Field
	i     int64
	s     string
}

// evaluateLocked runs one coordinator activation: substitute defaults,
// decide write-backs, move the view to loading, capture a token, and
// issue the fetch. Callers hold c.mu. Returned write-backs are applied
// after the lock is released; the coordinator pre-records them as
// observed so their echo through the store is a no-op change.
func (c *Controller) evaluateLocked(vals params.Values) []writeback {
	if c.desc == nil || c.desc.Name == "" {
		c.lastOutcome = OutcomeSkipped
		return nil
	}

	effStart := c.cfg.DefaultStartTime
	if vals.StartTime != nil {
		effStart = *vals.StartTime
	}
	effDuration := c.cfg.DefaultDuration
	if vals.Duration != nil {
		effDuration = *vals.Duration
	}
	effLabel := ""
	if vals.ClientLabel != nil {
		effLabel = *vals.ClientLabel
	}

	var wb []writeback
	if c.desc.RequiresTimeRange {
		start, duration := effStart, effDuration
		c.lastStart, c.lastDuration = &start, &duration
		wb = append(wb,
			writeback{field: params.FieldStartTime, i: effStart},
			writeback{field: params.FieldDuration, i: effDuration},
		)
	}
	if c.desc.Type == model.ReportTypeClient {
		label := effLabel
		c.lastLabel = &label
		wb = append(wb, writeback{field: params.FieldClientLabel, s: effLabel})
	}

	c.view.Phase = model.PhaseLoading
	c.token = c.clock.Now()
	c.lastOutcome = OutcomeFetched

	query := url.Values{}
	query.Set("start_time", strconv.FormatInt(effStart*microsPerSecond, 10))
	query.Set("duration", strconv.FormatInt(effDuration, 10))
	query.Set("client_label", effLabel)

	go c.fetch(c.token, reportPathPrefix+c.desc.Name, query)
	return wb
}

// applyWriteback pushes effective values into the store so the external
// parameter surface reflects the defaults actually used. Must not be
// called with c.mu held: the store notifies observers, including this
// controller.
func (c *Controller) applyWriteback(wb []writeback) {
	for _, w := range wb {
		switch w.field {
		case params.FieldStartTime:
			c.store.SetStartTime(w.i)
		case params.FieldDuration:
			c.store.SetDuration(w.i)
		case params.FieldClientLabel:
			c.store.SetClientLabel(w.s)
		}
	}
}

// fetch issues the request and hands the response to the staleness gate.
// A transport failure is not surfaced anywhere: the view stays loading
// until a later fetch supersedes it.
func (c *Controller) fetch(token int64, path string, query url.Values) {
	env, err := c.transport.Get(c.ctx, path, query)
	if err != nil {
		return
	}
	c.applyResponse(token, env)
}

// applyResponse accepts the response iff its token is still the current
// one. Both projections are replaced together under the same lock hold.
func (c *Controller) applyResponse(token int64, env *model.DataEnvelope) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.token {
		c.lastOutcome = OutcomeStale
		return
	}

	typed := env.Data.Data
	c.view = View{
		Phase:        model.PhaseLoaded,
		TypedData:    typed,
		StrippedData: typedval.Strip(typed),
	}
	c.lastOutcome = OutcomeApplied
}

func eqInt64(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
