package hyundaiht

// Device and sub-device identifiers for the floor heating thermostat.
const (
	DeviceFloorHeating = 0x18

	subFloorHeatingTemp  = 0x45 // current/target temperature, single or full-broadcast
	subFloorHeatingPower = 0x46 // power on/off, mode

	// floorHeatingBroadcastRoom is the room id a temperature Response uses
	// when it is reporting all four rooms in one frame instead of one.
	floorHeatingBroadcastRoom = 0x10

	// floorHeatingRoomOffset converts a zero-based room number to the room
	// id byte used on the wire for both temperature and power/mode frames.
	floorHeatingRoomOffset = 0x11
)

// FloorHeatingPayload is the data carried by floor heating temperature
// Response frames (sub 0x45).
type FloorHeatingPayload struct {
	Power       *bool
	CurrentTemp *uint8
	TargetTemp  *uint8
}

// ParseFloorHeatingPayload decodes a single room's temperature data: byte 0
// is power, byte 1 is current temperature, byte 2 is target temperature.
func ParseFloorHeatingPayload(data []byte) (FloorHeatingPayload, error) {
	if len(data) < 3 {
		return FloorHeatingPayload{}, ErrPayloadTooShort
	}
	power := data[0] == 0x01
	current := data[1]
	target := data[2]
	return FloorHeatingPayload{Power: &power, CurrentTemp: &current, TargetTemp: &target}, nil
}

// floorHeatingBroadcastRooms is the number of rooms reported in one
// full-response broadcast frame (sub 0x45, room 0x10).
const floorHeatingBroadcastRooms = 4

// ParseFloorHeatingBroadcast decodes a full-response frame reporting all
// four rooms at once: bytes [1..4), [4..7), [7..10), [10..13) are four
// independent (power, current, target) triples for rooms 0-3.
func ParseFloorHeatingBroadcast(data []byte) ([floorHeatingBroadcastRooms]FloorHeatingPayload, error) {
	var out [floorHeatingBroadcastRooms]FloorHeatingPayload
	if len(data) < 1+floorHeatingBroadcastRooms*3 {
		return out, ErrPayloadTooShort
	}
	for room := 0; room < floorHeatingBroadcastRooms; room++ {
		offset := 1 + room*3
		power := data[offset] == 0x01
		current := data[offset+1]
		target := data[offset+2]
		out[room] = FloorHeatingPayload{Power: &power, CurrentTemp: &current, TargetTemp: &target}
	}
	return out, nil
}

// BuildFloorHeatingRequest returns the data payload for a Request frame.
func BuildFloorHeatingRequest() []byte {
	return []byte{0x00, 0x00}
}

// BuildFloorHeatingPowerModify returns the data payload that turns the
// thermostat in a room on (0x01) or off (0x04).
func BuildFloorHeatingPowerModify(power bool) []byte {
	if power {
		return []byte{0x01, 0x00}
	}
	return []byte{0x04, 0x00}
}

// BuildFloorHeatingTempModify returns the data payload that sets a room's
// target temperature, in whole degrees Celsius.
func BuildFloorHeatingTempModify(temp uint8) []byte {
	return []byte{temp, 0x00}
}

// FloorHeatingTempRoomID returns the wire room id for a temperature Modify
// frame addressing the given zero-based room number.
func FloorHeatingTempRoomID(room uint8) byte {
	return floorHeatingRoomOffset + room
}

// FloorHeatingPowerRoomID returns the wire room id for a power/mode Modify
// frame addressing the given zero-based room number.
func FloorHeatingPowerRoomID(room uint8) byte {
	return floorHeatingRoomOffset + room
}
