// Package mqtt provides MQTT client connectivity for the wall-pad bridge.
//
// This package manages:
//   - Connection to the configured broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Topic subscriptions with wildcard support
//   - Last Will and Testament (LWT) for offline detection
//   - Connection health monitoring
//
// # Architecture
//
// The bridge treats the MQTT broker as an external collaborator: this
// package is the client side only. The broker itself (an embedded
// rumqttd instance, started and configured separately) is out of scope.
//
//	Home-automation clients ↔ MQTT Broker ↔ Wall-Pad Bridge ↔ RS-485 bus
//
// # Usage
//
//	client, err := mqtt.Connect(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	err = client.Subscribe("heating/+/+/set", 1, func(topic string, payload []byte) error {
//	    log.Printf("received: %s = %s", topic, payload)
//	    return nil
//	})
//
//	client.PublishString("heating/2/power", "true", 0, false)
package mqtt
