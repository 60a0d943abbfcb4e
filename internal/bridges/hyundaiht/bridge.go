package hyundaiht

import (
	"context"
	"time"

	"github.com/nerrad567/wallpad-bridge/internal/infrastructure/logging"
)

// Subscription topics the Bridge reacts to, per the MQTT topic surface.
const (
	topicHeatingSet    = "heating/+/+/set"
	topicLightSet      = "light/0/+/set"
	topicVentilatorSet = "ventilator/+/set"
)

// notificationBacklog bounds how many inbound MQTT messages can be queued
// waiting for the main dispatch loop; the broker callback would otherwise
// block the paho library's own delivery goroutine under a burst.
const notificationBacklog = 256

// inboundMessage is one MQTT publish forwarded from the broker callback to
// the Bridge's single dispatch loop.
type inboundMessage struct {
	topic   string
	payload []byte
}

// Bridge holds the set of registered device handlers and topic handlers,
// fans out decoded packets to handlers, fans in MQTT commands to the
// appropriate port's send queue, and runs the periodic task tick.
//
// Thread Safety: the handler and topic-handler registries are filled by the
// Register* methods at startup, before any loop runs, and are read-only
// thereafter, so Dispatch, the topic
// dispatch loop, and the tick loop may all run concurrently without
// locking the registries themselves. The shared MQTT link does hold a
// lock, for the duration of each publish call.
type Bridge struct {
	logger *logging.Logger
	link   *mqttLink

	primaryHandlers   []handlerEntry
	secondaryHandlers []handlerEntry
	topicHandlers     []TopicHandlerFunc
	tasks             []PeriodicTaskFunc

	primaryPort   *Port
	primaryCh     Channels
	secondaryPort *Port
	secondaryCh   *Channels

	tickInterval time.Duration

	notifications chan inboundMessage
}

// NewBridge constructs a Bridge around mqttClient. AttachPrimary must be
// called before Run; AttachSecondary is optional.
func NewBridge(mqttClient MQTTClient, logger *logging.Logger, tickInterval time.Duration) *Bridge {
	return &Bridge{
		logger:        logger,
		link:          &mqttLink{client: mqttClient},
		tickInterval:  tickInterval,
		notifications: make(chan inboundMessage, notificationBacklog),
	}
}

// AttachPrimary wires the mandatory primary port into the Bridge, giving
// every primary-classified handler its Channels handle.
func (b *Bridge) AttachPrimary(p *Port) {
	b.primaryPort = p
	b.primaryCh = Channels{link: b.link, port: p}
}

// AttachSecondary wires an optional secondary port. Handlers registered
// with primary=false are only ever invoked with this Channels handle.
func (b *Bridge) AttachSecondary(p *Port) {
	b.secondaryPort = p
	ch := Channels{link: b.link, port: p}
	b.secondaryCh = &ch
}

// HasSecondary reports whether a secondary port was attached. Periodic
// tasks that poll secondary-only devices should check this before
// enqueueing.
func (b *Bridge) HasSecondary() bool {
	return b.secondaryPort != nil
}

// RegisterHandler adds a device handler to the registry in the given
// filter/chaining/primary configuration. Handlers attach only to their
// classified port: a primary handler is only ever invoked for frames
// decoded on the primary port.
func (b *Bridge) RegisterHandler(filter Filter, primary, chaining bool, cb HandlerFunc) {
	entry := handlerEntry{filter: filter, callback: cb, chaining: chaining, primary: primary}
	if primary {
		b.primaryHandlers = append(b.primaryHandlers, entry)
	} else {
		b.secondaryHandlers = append(b.secondaryHandlers, entry)
	}
}

// RegisterTopicHandler adds an MQTT topic dispatcher invoked for every
// inbound publish this Bridge is subscribed to.
func (b *Bridge) RegisterTopicHandler(fn TopicHandlerFunc) {
	b.topicHandlers = append(b.topicHandlers, fn)
}

// RegisterPeriodicTask adds a callback invoked once per tick.
func (b *Bridge) RegisterPeriodicTask(fn PeriodicTaskFunc) {
	b.tasks = append(b.tasks, fn)
}

// DispatchPrimary is the callback the primary Port driver invokes for
// every successfully decoded frame.
func (b *Bridge) DispatchPrimary(fr Frame) {
	b.dispatch(b.primaryHandlers, fr, b.primaryCh)
}

// DispatchSecondary is the callback the secondary Port driver invokes, if
// a secondary port is configured.
func (b *Bridge) DispatchSecondary(fr Frame) {
	if b.secondaryCh == nil {
		return
	}
	b.dispatch(b.secondaryHandlers, fr, *b.secondaryCh)
}

// dispatch walks handlers in registration order; for each whose filter
// matches fr, it invokes the callback. A non-chaining handler that
// consumes the frame stops the walk, per §4.3.
func (b *Bridge) dispatch(handlers []handlerEntry, fr Frame, ch Channels) {
	for _, h := range handlers {
		if !h.filter.Matches(fr) {
			continue
		}
		consumed := h.callback(fr, ch)
		if consumed && !h.chaining {
			return
		}
	}
}

// Subscribe registers this Bridge's MQTT subscriptions. Call once, after
// the MQTT client is connected and before Run.
func (b *Bridge) Subscribe() error {
	for _, topic := range []string{topicHeatingSet, topicLightSet, topicVentilatorSet} {
		if err := b.link.client.Subscribe(topic, 0, b.onMessage); err != nil {
			return err
		}
	}
	return nil
}

// onMessage is the paho-invoked callback for every subscribed topic. It
// only enqueues the message onto the notification channel; the real
// dispatch work happens on Run's single loop so topic handlers are never
// invoked concurrently with each other.
func (b *Bridge) onMessage(topic string, payload []byte) {
	select {
	case b.notifications <- inboundMessage{topic: topic, payload: payload}:
	default:
		b.logger.Warn("dropping MQTT notification, backlog full", "topic", topic)
	}
}

// Run blocks, dispatching inbound MQTT notifications to every registered
// topic handler in order, until ctx is cancelled. This is the bridge's
// analogue of "the main thread blocks on the MQTT notification stream".
func (b *Bridge) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-b.notifications:
			for _, th := range b.topicHandlers {
				th(msg.topic, msg.payload, b.primaryCh, b.secondaryCh)
			}
		}
	}
}

// RunTicksOnce invokes every registered periodic task a single time,
// synchronously. Used by RunTicks's loop body and by tests that want to
// trigger a poll without waiting out a real interval.
func (b *Bridge) RunTicksOnce() {
	for _, task := range b.tasks {
		task(b.primaryCh, b.secondaryCh)
	}
}

// RunTicks runs the periodic task loop until ctx is cancelled, invoking
// every registered task once per tickInterval.
func (b *Bridge) RunTicks(ctx context.Context) error {
	if b.tickInterval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(b.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			b.RunTicksOnce()
		}
	}
}
