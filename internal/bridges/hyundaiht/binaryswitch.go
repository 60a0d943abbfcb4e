package hyundaiht

// Device and sub-device identifiers for the living room light switch.
const (
	DeviceLivingRoomLight = 0x19

	subLivingRoomLight = 0x40

	// lightBroadcastRoom is the room id a Response uses when it reports
	// both light channels in one frame.
	lightBroadcastRoom = 0x10

	// lightSingleRoomOffset converts a one-based channel number (1 or 2)
	// to the room id used when that channel reports by itself.
	lightSingleRoomOffset = 0x10
)

// BinarySwitchPayload is the data carried by a binary on/off switch
// Response frame, shared by the light and gas-valve device kinds.
type BinarySwitchPayload struct {
	Status *bool
}

// ParseBinarySwitchPayload decodes a single status byte. 0x01 (light) and
// 0x04 (gas) both mean "on".
func ParseBinarySwitchPayload(data []byte) (BinarySwitchPayload, error) {
	if len(data) < 1 {
		return BinarySwitchPayload{}, ErrPayloadTooShort
	}
	status := data[0] == 0x01 || data[0] == 0x04
	return BinarySwitchPayload{Status: &status}, nil
}

// BuildBinarySwitchRequest returns the data payload for a Request frame.
func BuildBinarySwitchRequest() []byte {
	return []byte{0x00, 0x00}
}

// BuildLightModify returns the data payload that sets a light on (0x01) or
// off (0x02).
func BuildLightModify(on bool) []byte {
	if on {
		return []byte{0x01, 0x00}
	}
	return []byte{0x02, 0x00}
}

// lightStatusByte encodes a single channel's desired status the same way
// a single-room Modify does: 0x01 on, 0x02 off.
func lightStatusByte(on bool) byte {
	if on {
		return 0x01
	}
	return 0x02
}

// DualLightPayload is the data carried by the living room light's
// dual-channel Response frame (room 0x10): both channels reported in one
// packet instead of one each.
type DualLightPayload struct {
	Channel1 *bool
	Channel2 *bool
}

// ParseDualLightPayload decodes both channels' status from a room-0x10
// Response: byte 1 is channel 1, byte 2 is channel 2.
func ParseDualLightPayload(data []byte) (DualLightPayload, error) {
	if len(data) < 3 {
		return DualLightPayload{}, ErrPayloadTooShort
	}
	ch1 := data[1] == 0x01
	ch2 := data[2] == 0x01
	return DualLightPayload{Channel1: &ch1, Channel2: &ch2}, nil
}

// BuildDualLightModify returns the data payload that sets both light
// channels in one frame, addressed with room 0x10.
func BuildDualLightModify(channel1, channel2 bool) []byte {
	return []byte{0x00, lightStatusByte(channel1), lightStatusByte(channel2)}
}
