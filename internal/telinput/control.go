package telinput

import (
	"github.com/hightemp/telin/internal/catalog"
	"github.com/hightemp/telin/internal/config"
	"github.com/hightemp/telin/internal/eventloop"
	"github.com/hightemp/telin/internal/logger"
	"github.com/hightemp/telin/internal/phonelib"
	"github.com/hightemp/telin/internal/selection"
)

// Sink receives notifications from the control. The host registers it.
type Sink interface {
	OnChange(ev ChangeEvent)
	OnTouched()
}

// SinkFuncs adapts plain functions to Sink. Nil fields are ignored.
type SinkFuncs struct {
	Change  func(ev ChangeEvent)
	Touched func()
}

// OnChange implements Sink.
func (s SinkFuncs) OnChange(ev ChangeEvent) {
	if s.Change != nil {
		s.Change(ev)
	}
}

// OnTouched implements Sink.
func (s SinkFuncs) OnTouched() {
	if s.Touched != nil {
		s.Touched()
	}
}

// Source is the set of calls a host makes into the control.
type Source interface {
	WriteValue(text string)
	SetDisabled(disabled bool)
}

// Trigger names used in logs.
const (
	triggerEdit   = "edit"
	triggerSelect = "select"
	triggerWrite  = "write"
)

// Control is one telephone input. It is not safe for concurrent use; all
// calls are expected from the host's event loop.
type Control struct {
	catalog *catalog.Catalog
	sched   eventloop.Scheduler
	lib     phonelib.Library
	log     *logger.Logger
	opts    config.Options

	state     *selection.State
	text      string
	disabled  bool
	destroyed bool
	sink      Sink
}

var _ Source = (*Control)(nil)

// Option customizes a Control.
type Option func(*Control)

// WithLibrary replaces the phone library.
func WithLibrary(lib phonelib.Library) Option {
	return func(c *Control) {
		c.lib = lib
	}
}

// WithLogger sets the logger.
func WithLogger(log *logger.Logger) Option {
	return func(c *Control) {
		c.log = log
	}
}

// New creates a control over cat. Deferred work is posted to sched.
func New(cat *catalog.Catalog, sched eventloop.Scheduler, opts config.Options, options ...Option) *Control {
	c := &Control{
		catalog: cat,
		sched:   sched,
		opts:    opts,
		sink:    SinkFuncs{},
	}
	for _, o := range options {
		o(c)
	}
	if c.lib == nil {
		c.lib = phonelib.New()
	}
	if c.log == nil {
		c.log = logger.Nop()
	}
	return c
}

// Init resolves the selection state and seeds the text buffer with the
// initial value. It runs once; later calls do nothing. Other methods call it
// implicitly.
func (c *Control) Init() {
	if c.state != nil {
		return
	}
	c.state = selection.Initialize(c.catalog, c.opts.PreferredCountries, c.log)
	c.text = c.opts.InitialValue
}

// Register installs the host sink. A nil sink disables notifications.
func (c *Control) Register(sink Sink) {
	if sink == nil {
		sink = SinkFuncs{}
	}
	c.sink = sink
}

// SetText handles a user edit: the buffer is replaced and a change is emitted.
func (c *Control) SetText(text string) {
	c.Init()
	if c.destroyed {
		return
	}
	c.text = text

	if c.opts.AutoDetect {
		c.detectCountry()
	}
	c.emit(triggerEdit)
}

// Type handles one keystroke. Keys rejected by AllowKey change nothing.
func (c *Control) Type(r rune) bool {
	if !AllowKey(r) {
		return false
	}
	c.Init()
	c.SetText(c.text + string(r))
	return true
}

// SelectCountry switches to the country with the given ISO2 code.
// A change is emitted only when the text buffer is non-empty.
func (c *Control) SelectCountry(code string) error {
	c.Init()
	if c.destroyed {
		return nil
	}
	if _, err := c.state.Select(code); err != nil {
		return err
	}
	c.afterSelect()
	return nil
}

// SelectCountryValue switches to country, typically one taken from Countries.
func (c *Control) SelectCountryValue(country *catalog.Country) {
	c.Init()
	if c.destroyed || country == nil {
		return
	}
	c.state.SelectCountry(country)
	c.afterSelect()
}

func (c *Control) afterSelect() {
	if c.text != "" {
		c.emit(triggerSelect)
	}
}

// WriteValue handles a programmatic write from the host. Non-empty text
// replaces the buffer and a reconcile is posted for the next turn, so
// selection changes made in the current turn are visible to it.
// Empty writes are ignored.
func (c *Control) WriteValue(text string) {
	c.Init()
	if c.destroyed || text == "" {
		return
	}
	c.text = text

	c.sched.Post(func() {
		if c.destroyed {
			c.log.DeferredDropped()
			return
		}
		c.emit(triggerWrite)
	})
}

// SetDisabled records the disabled flag. It does not affect parsing.
func (c *Control) SetDisabled(disabled bool) {
	c.disabled = disabled
}

// Disabled reports the disabled flag.
func (c *Control) Disabled() bool {
	return c.disabled
}

// Blur accepts the host's touched notification. The control does not track it.
func (c *Control) Blur() {}

// Destroy ends the control's lifetime. Pending deferred reconciles are dropped
// and later calls are ignored.
func (c *Control) Destroy() {
	c.destroyed = true
}

// Text returns the raw text buffer.
func (c *Control) Text() string {
	c.Init()
	return c.text
}

// Value returns the current value as a ChangeEvent.
func (c *Control) Value() ChangeEvent {
	c.Init()
	return Reconcile(c.lib, c.text, c.state.Selected())
}

// Validate checks the current value.
func (c *Control) Validate() error {
	return ValidateEvent(c.lib, c.Value(), c.opts.StrictValidation)
}

// Valid reports whether Validate passes.
func (c *Control) Valid() bool {
	return c.Validate() == nil
}

// Selected returns the selected country, nil for an empty catalog.
func (c *Control) Selected() *catalog.Country {
	c.Init()
	return c.state.Selected()
}

// Preferred returns the preferred countries.
func (c *Control) Preferred() []*catalog.Country {
	c.Init()
	return c.state.Preferred()
}

// Countries returns the dropdown order: preferred, then all.
func (c *Control) Countries() []*catalog.Country {
	c.Init()
	return c.state.Ordered()
}

// Placeholder returns the example number of the selected country.
func (c *Control) Placeholder() string {
	if country := c.Selected(); country != nil {
		return country.Placeholder
	}
	return ""
}

func (c *Control) detectCountry() {
	detected := c.catalog.DetectCountry(c.text)
	current := c.state.Selected()
	if detected == nil || detected == current {
		return
	}

	from := ""
	if current != nil {
		from = current.Region()
	}
	c.log.CountryDetected(from, detected.Region())
	c.state.SelectCountry(detected)
}

func (c *Control) emit(trigger string) {
	ev := Reconcile(c.lib, c.text, c.state.Selected())
	c.log.ChangeEmitted(trigger, ev.CountryCode, ev.Parsed())
	c.sink.OnChange(ev)
}
