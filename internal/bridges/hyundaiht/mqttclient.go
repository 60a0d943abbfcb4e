package hyundaiht

// MQTTClient is the Bridge's dependency on the external MQTT broker
// collaborator: connect/reconnect and the notification stream are
// handled by the caller, not by this package.
type MQTTClient interface {
	// Publish sends a message to a topic.
	Publish(topic string, payload []byte, qos byte, retained bool) error

	// Subscribe registers a handler for a topic pattern. The handler is
	// invoked once per matching message; errors are the caller's to log.
	Subscribe(topic string, qos byte, handler func(topic string, payload []byte)) error
}
