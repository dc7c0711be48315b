package sequencer

// Config is the user-editable part of a channel.
type Config struct {
	Rate       Rate
	Pwm        Pwm
	Prob       Prob
	Length     Length
	Density    Density
	OutputType OutputType
}

// DefaultConfig is the power-on configuration of every channel.
func DefaultConfig() Config {
	return Config{
		Rate:       Unity,
		Pwm:        Pwm50,
		Prob:       Prob100,
		Length:     MaxLength,
		Density:    4,
		OutputType: Gate,
	}
}

// Event is what one master tick did to a channel.
type Event struct {
	Edge         bool  // logical output flipped this tick
	High         bool  // logical output level after this tick
	IndexChanged bool  // a Euclid onset advanced the step index
	Index        uint8 // current Euclid step
}

// Channel holds one output's configuration and playback position.
//
// At each onset (phase 0) a Gate channel draws its probability once and an
// Euclid channel advances to its next step; either way the output is then
// high for the first Pwm share of the period when the onset fired.
type Channel struct {
	cfg     Config
	pattern Pattern
	index   uint8
	restart bool // next onset plays step 0 instead of advancing

	period uint32 // ticks per channel period
	width  uint32 // high ticks per fired period
	phase  uint32 // ticks since last onset
	fired  bool
	high   bool
}

// NewChannel builds a channel phase-locked to master tick 0.
func NewChannel(cfg Config) *Channel {
	c := &Channel{}
	c.Reset(cfg)
	return c
}

// Reset replaces the whole configuration and rewinds playback.
func (c *Channel) Reset(cfg Config) {
	cfg.Density = cfg.Density.Clamp(cfg.Length)
	*c = Channel{cfg: cfg, restart: true}
	c.pattern = Generate(cfg.Density, cfg.Length)
	c.retime(0)
}

// Config returns a copy of the current configuration.
func (c *Channel) Config() Config { return c.cfg }

// Pattern is the current Euclidean pattern.
func (c *Channel) Pattern() Pattern { return c.pattern }

// Index is the current Euclidean step.
func (c *Channel) Index() uint8 { return c.index }

// High reports the logical output level.
func (c *Channel) High() bool { return c.high }

// PeriodTicks is the channel period in master ticks.
func (c *Channel) PeriodTicks() uint32 { return c.period }

// SetRate changes the period and re-derives the phase from the master
// counter so channels stay aligned with each other.
func (c *Channel) SetRate(r Rate, master uint64) {
	c.cfg.Rate = r
	c.retime(master)
}

func (c *Channel) SetPwm(p Pwm) {
	c.cfg.Pwm = p
	c.width = p.HighTicks(c.period)
}

func (c *Channel) SetProb(p Prob) { c.cfg.Prob = p }

// SetOutputType switches between Gate and Euclid. Entering Euclid restarts
// the pattern from step 0.
func (c *Channel) SetOutputType(t OutputType) {
	if t == c.cfg.OutputType {
		return
	}
	c.cfg.OutputType = t
	if t == Euclid {
		c.index = 0
		c.restart = true
	}
}

// SetSequence regenerates the Euclidean pattern. Density is clamped to
// length. The step index only resets when either value actually changes.
func (c *Channel) SetSequence(l Length, d Density) {
	d = d.Clamp(l)
	if l == c.cfg.Length && d == c.cfg.Density {
		return
	}
	c.cfg.Length, c.cfg.Density = l, d
	c.pattern = Generate(d, l)
	c.index = 0
	c.restart = true
}

// Silence drops the output low until the next fired onset. It reports
// whether that was an edge.
func (c *Channel) Silence() bool {
	c.fired = false
	if c.high {
		c.high = false
		return true
	}
	return false
}

// Tick advances the channel by one master tick. roll supplies probability
// draws in [0,100).
func (c *Channel) Tick(roll func() uint32) Event {
	var ev Event
	if c.phase == 0 {
		c.onset(roll, &ev)
	}

	high := c.fired && c.phase < c.width
	c.phase++
	if c.phase >= c.period {
		c.phase = 0
	}

	if high != c.high {
		c.high = high
		ev.Edge = true
	}
	ev.High = c.high
	ev.Index = c.index
	return ev
}

func (c *Channel) onset(roll func() uint32, ev *Event) {
	switch c.cfg.OutputType {
	case Gate:
		c.fired = c.cfg.Prob.Fires(roll)
	case Euclid:
		if c.restart {
			c.restart = false
		} else {
			c.index = uint8((int(c.index) + 1) % c.pattern.Len())
		}
		ev.IndexChanged = true
		c.fired = c.pattern.At(int(c.index))
	}
}

func (c *Channel) retime(master uint64) {
	c.period = c.cfg.Rate.PeriodTicks()
	c.width = c.cfg.Pwm.HighTicks(c.period)
	c.phase = uint32(master % uint64(c.period))
}
