package hyundaiht

import "sync"

// Filter selects which frames a handler is invoked for. A nil field
// matches anything; a non-nil field requires equality with the frame's
// corresponding byte.
type Filter struct {
	DeviceID *byte
	SubID    *byte
	RoomID   *byte
}

// Matches reports whether f's frame matches this filter.
func (f Filter) Matches(fr Frame) bool {
	if f.DeviceID != nil && *f.DeviceID != fr.DeviceID {
		return false
	}
	if f.SubID != nil && *f.SubID != fr.SubID {
		return false
	}
	if f.RoomID != nil && *f.RoomID != fr.RoomID {
		return false
	}
	return true
}

func bytePtr(b byte) *byte { return &b }

// HandlerFunc is invoked with a matching frame and the channels handle for
// the port it arrived on. It returns whether the frame was consumed; a
// non-chaining handler that consumes a frame stops the dispatch walk for
// that frame.
type HandlerFunc func(fr Frame, ch Channels) (consumed bool)

// handlerEntry is one record in the registry: (filter, callback, chaining,
// primary), per §4.3's small rule-engine model.
type handlerEntry struct {
	filter   Filter
	callback HandlerFunc
	chaining bool
	primary  bool
}

// TopicHandlerFunc inspects an inbound MQTT publish and decides internally
// whether to act. secondary is nil when no secondary port is configured.
type TopicHandlerFunc func(topic string, payload []byte, primary Channels, secondary *Channels)

// PeriodicTaskFunc is invoked once per tick with access to both ports'
// send queues.
type PeriodicTaskFunc func(primary Channels, secondary *Channels)

// mqttLink is the MQTT publish interface shared by every handler, guarded
// by a single mutex held only for the duration of one publish call.
type mqttLink struct {
	mu     sync.Mutex
	client MQTTClient
}

func (l *mqttLink) publish(topic string, payload []byte, qos byte, retained bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.client.Publish(topic, payload, qos, retained)
}

// Channels is passed to every handler: an owning reference to the shared
// MQTT link and the sender end of one port's send queue. It is cheap to
// copy and duplicate.
type Channels struct {
	link *mqttLink
	port *Port
}

// Enqueue adds a frame to this channel's port send queue.
func (c Channels) Enqueue(f Frame) {
	c.port.Enqueue(f)
}

// Publish sends an MQTT message through the shared link.
func (c Channels) Publish(topic string, payload []byte, qos byte, retained bool) error {
	return c.link.publish(topic, payload, qos, retained)
}

// PublishString is a convenience wrapper around Publish for ASCII payloads.
func (c Channels) PublishString(topic, payload string, qos byte, retained bool) error {
	return c.Publish(topic, []byte(payload), qos, retained)
}
