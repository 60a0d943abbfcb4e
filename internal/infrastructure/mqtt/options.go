package mqtt

import (
	"crypto/tls"
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
)

// Connection constants.
const (
	// defaultConnectTimeout is the maximum time to wait for initial connection.
	defaultConnectTimeout = 10 * time.Second

	// defaultPublishTimeout is the maximum time to wait for publish acknowledgment.
	defaultPublishTimeout = 5 * time.Second

	// defaultDisconnectQuiesce is the time to wait for pending operations on disconnect.
	defaultDisconnectQuiesce = 1000 // milliseconds

	// defaultKeepAlive is the keepalive interval for the connection.
	defaultKeepAlive = 60 * time.Second

	// maxQoS is the maximum QoS level supported.
	maxQoS = 2

	// tlsMinVersion is the minimum TLS version for secure connections.
	tlsMinVersion = tls.VersionTLS12

	// statusTopic carries this client's online/offline status via LWT.
	statusTopic = "wallpad/bridge/status"
)

// BrokerConfig describes how to reach the MQTT broker. It has no file or
// environment-backed persistence: callers build it directly from CLI
// flags or sensible defaults (the rumqttd broker this bridge talks to
// runs on localhost).
type BrokerConfig struct {
	Host     string
	Port     int
	ClientID string
	TLS      bool

	Username string
	Password string

	QoS byte

	// ReconnectInitialDelay and ReconnectMaxDelay bound paho's
	// exponential reconnect backoff.
	ReconnectInitialDelay time.Duration
	ReconnectMaxDelay     time.Duration
}

// DefaultBrokerConfig returns the broker configuration used when the
// bridge is not told otherwise: a local broker, QoS 1, clean reconnect
// backoff from 1s to 30s.
func DefaultBrokerConfig(clientID string) BrokerConfig {
	return BrokerConfig{
		Host:                  "127.0.0.1",
		Port:                  1883,
		ClientID:              clientID,
		QoS:                   1,
		ReconnectInitialDelay: time.Second,
		ReconnectMaxDelay:     30 * time.Second,
	}
}

// buildClientOptions creates paho MQTT options from cfg.
func buildClientOptions(cfg BrokerConfig) *pahomqtt.ClientOptions {
	opts := pahomqtt.NewClientOptions()

	scheme := "tcp"
	if cfg.TLS {
		scheme = "ssl"
	}
	opts.AddBroker(fmt.Sprintf("%s://%s:%d", scheme, cfg.Host, cfg.Port))
	opts.SetClientID(cfg.ClientID)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	// Clean session - start fresh on connect (no persistent session on broker).
	opts.SetCleanSession(true)

	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(cfg.ReconnectInitialDelay)
	opts.SetMaxReconnectInterval(cfg.ReconnectMaxDelay)
	opts.SetConnectTimeout(defaultConnectTimeout)
	opts.SetKeepAlive(defaultKeepAlive)

	if cfg.TLS {
		opts.SetTLSConfig(&tls.Config{MinVersion: tlsMinVersion})
	}

	return opts
}

// configureLWT sets up Last Will and Testament for offline detection: the
// broker publishes this if the client disconnects unexpectedly.
func configureLWT(opts *pahomqtt.ClientOptions, clientID string) {
	payload := fmt.Sprintf(
		`{"status":"offline","client_id":"%s","reason":"unexpected_disconnect"}`,
		clientID,
	)
	opts.SetWill(statusTopic, payload, 1, true)
}

func buildOnlinePayload(clientID string) string {
	return fmt.Sprintf(`{"status":"online","client_id":"%s"}`, clientID)
}

func buildOfflinePayload(clientID string) string {
	return fmt.Sprintf(`{"status":"offline","client_id":"%s","reason":"graceful_shutdown"}`, clientID)
}
