package midi

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"toad-time/debug"
)

// DeviceEvent is emitted when a controller port appears or goes away.
type DeviceEvent struct {
	Type DeviceEventType
	ID   string
}

type DeviceEventType int

const (
	DeviceConnected DeviceEventType = iota
	DeviceDisconnected
)

func (t DeviceEventType) String() string {
	if t == DeviceDisconnected {
		return "disconnected"
	}
	return "connected"
}

// OpenFunc opens a matched input port. The returned closer is closed when
// the port disappears or the manager stops.
type OpenFunc func(id string, in drivers.In) (io.Closer, error)

// DeviceManager handles hot-plug of input ports: every poll it opens ports
// whose name matches and closes the ones that vanished.
type DeviceManager struct {
	match    func(name string) bool
	open     OpenFunc
	ports    func() []drivers.In
	devices  map[string]io.Closer
	mu       sync.RWMutex
	events   chan DeviceEvent
	pollRate time.Duration
}

// NewDeviceManager watches for input ports accepted by match.
func NewDeviceManager(match func(name string) bool, open OpenFunc) *DeviceManager {
	return &DeviceManager{
		match:    match,
		open:     open,
		ports:    listInPorts,
		devices:  make(map[string]io.Closer),
		events:   make(chan DeviceEvent, 16),
		pollRate: time.Second,
	}
}

// MatchName accepts ports whose name contains substr, ignoring case. An
// empty substr accepts Launchpads only.
func MatchName(substr string) func(string) bool {
	if substr == "" {
		return IsLaunchpad
	}
	substr = strings.ToLower(substr)
	return func(name string) bool {
		return strings.Contains(strings.ToLower(name), substr)
	}
}

// Events returns a channel of device connect/disconnect events. Events are
// dropped when nobody reads them.
func (dm *DeviceManager) Events() <-chan DeviceEvent {
	return dm.events
}

// Connected lists the IDs of the open ports.
func (dm *DeviceManager) Connected() []string {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	ids := make([]string, 0, len(dm.devices))
	for id := range dm.devices {
		ids = append(ids, id)
	}
	return ids
}

// Run starts the polling loop (blocking - run in goroutine)
func (dm *DeviceManager) Run(ctx context.Context) error {
	ticker := time.NewTicker(dm.pollRate)
	defer ticker.Stop()

	// Initial scan
	dm.scan()

	for {
		select {
		case <-ctx.Done():
			dm.closeAll()
			close(dm.events)
			return nil
		case <-ticker.C:
			dm.scan()
		}
	}
}

func listInPorts() []drivers.In {
	// Get current MIDI ports with timeout (CoreMIDI can hang)
	ch := make(chan []drivers.In, 1)
	go func() {
		ch <- gomidi.GetInPorts()
	}()

	select {
	case ports := <-ch:
		return ports
	case <-time.After(3 * time.Second):
		// CoreMIDI is hung - skip this scan
		debug.Log("midi", "port scan timed out")
		return nil
	}
}

func (dm *DeviceManager) scan() {
	ports := dm.ports()
	if ports == nil {
		return
	}
	seen := make(map[string]drivers.In, len(ports))
	for _, p := range ports {
		seen[p.String()] = p
	}
	dm.reconcile(seen)
}

// reconcile opens newly seen ports and closes vanished ones.
func (dm *DeviceManager) reconcile(seen map[string]drivers.In) {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	for id, port := range seen {
		if _, exists := dm.devices[id]; exists || !dm.match(id) {
			continue
		}
		dev, err := dm.open(id, port)
		if err != nil {
			debug.Log("midi", "open %s: %v", id, err)
			continue
		}
		dm.devices[id] = dev
		dm.emit(DeviceEvent{Type: DeviceConnected, ID: id})
	}

	for id, dev := range dm.devices {
		if _, ok := seen[id]; ok {
			continue
		}
		dev.Close()
		delete(dm.devices, id)
		dm.emit(DeviceEvent{Type: DeviceDisconnected, ID: id})
	}
}

func (dm *DeviceManager) emit(ev DeviceEvent) {
	debug.Log("midi", "%s %s", ev.ID, ev.Type)
	select {
	case dm.events <- ev:
	default:
	}
}

func (dm *DeviceManager) closeAll() {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	for _, c := range dm.devices {
		c.Close()
	}
	dm.devices = make(map[string]io.Closer)
}
