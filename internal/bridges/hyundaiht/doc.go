// Package hyundaiht implements the Hyundai HT wall-pad protocol bridge.
//
// This package provides connectivity to a proprietary RS-485 wall-pad bus
// found in Hyundai HT-dialect home automation panels. It translates between
// framed serial packets on the bus and MQTT topics.
//
// # Architecture
//
// The bridge operates as a translator between two buses:
//
//	┌─────────────────┐          ┌─────────────────┐
//	│   MQTT Broker   │   MQTT   │  Wall-Pad Bridge │  RS-485
//	│  (external)     │◄────────►│   (this pkg)     │◄────────► Wall-Pad Bus
//	└─────────────────┘          └─────────────────┘
//
// # Key Responsibilities
//
//   - Open one or two RS-485 serial ports (primary, optional secondary)
//   - Frame and de-frame Hyundai HT packets from the raw byte stream
//   - Decode device-specific payloads (floor heating, lighting, ventilation,
//     realtime energy metering)
//   - Dispatch decoded packets to per-device handlers via an ordered
//     registry, honouring chaining semantics
//   - Translate MQTT command topics into outbound Modify/Request packets
//   - Enforce the bus's half-duplex, at-most-one-pending-send discipline
//
// # Wire Format
//
// Every frame is:
//
//	[0xF7][len][0x01][device][command][sub][room][data...][checksum][0xEE]
//
// See Frame.Encode and Decode for the exact encode/decode rules and
// Checksum for the XOR checksum.
//
// # Thread Safety
//
// All exported types are safe for concurrent use from multiple goroutines
// unless documented otherwise.
package hyundaiht
