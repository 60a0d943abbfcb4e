package hyundaiht

import (
	"strconv"
	"strings"
	"time"
)

// MQTT topic surface. Inbound state is published under these roots;
// outbound commands are accepted on the matching "/set" suffix.
const (
	heatingRoot    = "heating"
	lightRoot      = "light"
	ventilatorRoot = "ventilator"
	electricTopic  = "electric/meter"
	waterTopic     = "water/meter"
	gasTopic       = "gas/meter"
)

func boolPayload(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func splitTopic(topic string) []string {
	return strings.Split(topic, "/")
}

// RegisterFloorHeatingHandlers wires the floor heating device into b: a
// primary-port frame handler that publishes state (including the
// four-room broadcast fan-out) and a topic handler that turns
// heating/{room}/power/set, heating/{room}/temp/set, and
// heating/{room}/mode/set commands into Modify frames.
func RegisterFloorHeatingHandlers(b *Bridge) {
	deviceID := byte(DeviceFloorHeating)
	subTemp := byte(subFloorHeatingTemp)

	b.RegisterHandler(Filter{DeviceID: &deviceID, SubID: &subTemp, RoomID: bytePtr(floorHeatingBroadcastRoom)}, true, true,
		func(fr Frame, ch Channels) bool {
			rooms, err := ParseFloorHeatingBroadcast(fr.Data)
			if err != nil {
				return false
			}
			for room, payload := range rooms {
				publishFloorHeatingState(ch, room, payload)
			}
			return true
		})

	b.RegisterHandler(Filter{DeviceID: &deviceID, SubID: &subTemp}, true, true,
		func(fr Frame, ch Channels) bool {
			if fr.RoomID < floorHeatingRoomOffset {
				return false
			}
			room := int(fr.RoomID - floorHeatingRoomOffset)
			payload, err := ParseFloorHeatingPayload(fr.Data)
			if err != nil {
				return false
			}
			publishFloorHeatingState(ch, room, payload)
			return true
		})

	b.RegisterTopicHandler(func(topic string, payload []byte, primary Channels, secondary *Channels) {
		parts := splitTopic(topic)
		if len(parts) != 4 || parts[0] != heatingRoot || parts[3] != "set" {
			return
		}
		room, err := strconv.Atoi(parts[1])
		if err != nil || room < 0 || room > 3 {
			return
		}
		switch parts[2] {
		case "power":
			on := string(payload) == "true"
			primary.Enqueue(NewFrame(DeviceFloorHeating, CommandModify, subFloorHeatingPower,
				FloorHeatingPowerRoomID(uint8(room)), BuildFloorHeatingPowerModify(on)))
		case "mode":
			on := string(payload) == "heat"
			primary.Enqueue(NewFrame(DeviceFloorHeating, CommandModify, subFloorHeatingPower,
				FloorHeatingPowerRoomID(uint8(room)), BuildFloorHeatingPowerModify(on)))
		case "temp":
			temp, err := strconv.ParseUint(string(payload), 10, 8)
			if err != nil {
				return
			}
			primary.Enqueue(NewFrame(DeviceFloorHeating, CommandModify, subFloorHeatingTemp,
				FloorHeatingTempRoomID(uint8(room)), BuildFloorHeatingTempModify(uint8(temp))))
		}
	})
}

func publishFloorHeatingState(ch Channels, room int, payload FloorHeatingPayload) {
	base := heatingRoot + "/" + strconv.Itoa(room)
	if payload.Power != nil {
		ch.PublishString(base+"/power", boolPayload(*payload.Power), 0, true)
	}
	if payload.CurrentTemp != nil {
		ch.PublishString(base+"/temp/current", strconv.Itoa(int(*payload.CurrentTemp)), 0, true)
	}
	if payload.TargetTemp != nil {
		ch.PublishString(base+"/temp/target", strconv.Itoa(int(*payload.TargetTemp)), 0, true)
	}
}

// RegisterLightHandlers wires the living room light into b: a primary-port
// frame handler publishing both the dual-channel broadcast and each
// single-channel report, and a topic handler translating light/0/{nn}/set
// commands. Channel 00 addresses both channels at once; 01 and 02 address
// one channel each.
func RegisterLightHandlers(b *Bridge) {
	deviceID := byte(DeviceLivingRoomLight)
	subID := byte(subLivingRoomLight)

	b.RegisterHandler(Filter{DeviceID: &deviceID, SubID: &subID, RoomID: bytePtr(lightBroadcastRoom)}, true, true,
		func(fr Frame, ch Channels) bool {
			payload, err := ParseDualLightPayload(fr.Data)
			if err != nil {
				return false
			}
			if payload.Channel1 != nil {
				ch.PublishString(lightRoot+"/0/01", boolPayload(*payload.Channel1), 0, true)
			}
			if payload.Channel2 != nil {
				ch.PublishString(lightRoot+"/0/02", boolPayload(*payload.Channel2), 0, true)
			}
			return true
		})

	b.RegisterHandler(Filter{DeviceID: &deviceID, SubID: &subID}, true, true,
		func(fr Frame, ch Channels) bool {
			if fr.RoomID != lightSingleRoomOffset+1 && fr.RoomID != lightSingleRoomOffset+2 {
				return false
			}
			payload, err := ParseBinarySwitchPayload(fr.Data)
			if err != nil || payload.Status == nil {
				return false
			}
			channel := fr.RoomID - lightSingleRoomOffset
			ch.PublishString(lightRoot+"/0/0"+strconv.Itoa(int(channel)), boolPayload(*payload.Status), 0, true)
			return true
		})

	// lastKnown records the value most recently commanded for each channel.
	// Nothing reads it: "light/0/00/set" sets both channels to the payload
	// value and does not toggle them.
	var lastKnown [2]bool

	b.RegisterTopicHandler(func(topic string, payload []byte, primary Channels, secondary *Channels) {
		parts := splitTopic(topic)
		if len(parts) != 4 || parts[0] != lightRoot || parts[1] != "0" || parts[3] != "set" {
			return
		}
		on := string(payload) == "true"
		switch parts[2] {
		case "00":
			lastKnown[0], lastKnown[1] = on, on
			primary.Enqueue(NewFrame(DeviceLivingRoomLight, CommandModify, subLivingRoomLight,
				lightBroadcastRoom, BuildDualLightModify(on, on)))
		case "01":
			lastKnown[0] = on
			primary.Enqueue(NewFrame(DeviceLivingRoomLight, CommandModify, subLivingRoomLight,
				lightSingleRoomOffset+1, BuildLightModify(on)))
		case "02":
			lastKnown[1] = on
			primary.Enqueue(NewFrame(DeviceLivingRoomLight, CommandModify, subLivingRoomLight,
				lightSingleRoomOffset+2, BuildLightModify(on)))
		}
	})
}

// RegisterVentilatorHandlers wires the ventilator into b: a primary-port
// frame handler publishing power/mode/fan-speed/timer state, and a topic
// handler translating ventilator/{power,mode,fan_speed,timer}/set.
func RegisterVentilatorHandlers(b *Bridge) {
	deviceID := byte(DeviceVentilator)
	roomID := byte(roomVentilator)

	b.RegisterHandler(Filter{DeviceID: &deviceID, RoomID: &roomID}, true, true,
		func(fr Frame, ch Channels) bool {
			payload, err := ParseVentilatorPayload(fr.Data)
			if err != nil {
				return false
			}
			if payload.Power != nil {
				ch.PublishString(ventilatorRoot+"/power", boolPayload(*payload.Power), 0, true)
			}
			if payload.Mode != nil {
				ch.PublishString(ventilatorRoot+"/mode", payload.Mode.String(), 0, true)
			}
			if payload.FanSpeed != nil {
				ch.PublishString(ventilatorRoot+"/fan_speed", strconv.Itoa(payload.FanSpeed.Level()), 0, true)
			}
			ch.PublishString(ventilatorRoot+"/timer/status", boolPayload(payload.SettingTime != nil), 0, true)
			if payload.SettingTime != nil {
				ch.PublishString(ventilatorRoot+"/timer", strconv.FormatInt(int64(payload.SettingTime.Minutes()), 10), 0, true)
			}
			if payload.RemainingTime != nil {
				ch.PublishString(ventilatorRoot+"/timer/remaining", strconv.FormatInt(int64(payload.RemainingTime.Minutes()), 10), 0, true)
			}
			return true
		})

	b.RegisterTopicHandler(func(topic string, payload []byte, primary Channels, secondary *Channels) {
		parts := splitTopic(topic)
		if len(parts) != 3 || parts[0] != ventilatorRoot || parts[2] != "set" {
			return
		}
		switch parts[1] {
		case "power":
			on := string(payload) == "true"
			mode := VentilatorModeNormal
			if !on {
				mode = VentilatorModeOff
			}
			primary.Enqueue(NewFrame(DeviceVentilator, CommandModify, subVentilatorMode, roomVentilator,
				BuildVentilatorModeModify(mode)))
		case "mode":
			mode, ok := ParseVentilatorMode(string(payload))
			if !ok {
				return
			}
			primary.Enqueue(NewFrame(DeviceVentilator, CommandModify, subVentilatorMode, roomVentilator,
				BuildVentilatorModeModify(mode)))
		case "fan_speed":
			speed, ok := ParseVentilatorFanSpeed(string(payload))
			if !ok {
				level, _ := strconv.ParseUint(string(payload), 10, 64)
				speed = VentilatorFanSpeedFromLevel(level)
			}
			primary.Enqueue(NewFrame(DeviceVentilator, CommandModify, subVentilatorFan, roomVentilator,
				BuildVentilatorFanModify(speed)))
		case "timer":
			minutes, err := strconv.ParseUint(string(payload), 10, 32)
			if err != nil {
				return
			}
			primary.Enqueue(NewFrame(DeviceVentilator, CommandModify, subVentilatorTimer, roomVentilator,
				BuildVentilatorTimerModify(time.Duration(minutes)*time.Minute)))
		}
	})
}

// RegisterRealtimeEnergyHandlers wires the realtime energy meter into b.
// This device never transmits unsolicited, so the only inbound path is a
// periodic task that requests a reading and a primary-port handler that
// publishes the Response when it arrives.
func RegisterRealtimeEnergyHandlers(b *Bridge) {
	deviceID := byte(DeviceRealtimeEnergyMeter)
	subID := byte(subRealtimeEnergyMeter)
	roomID := byte(roomRealtimeEnergyMeter)

	b.RegisterHandler(Filter{DeviceID: &deviceID, SubID: &subID, RoomID: &roomID}, true, true,
		func(fr Frame, ch Channels) bool {
			payload, err := ParseRealtimeEnergyPayload(fr.Data)
			if err != nil {
				return false
			}
			if payload.Electric != nil {
				ch.PublishString(electricTopic, strconv.FormatUint(uint64(*payload.Electric), 10), 0, true)
			}
			if payload.Water != nil {
				ch.PublishString(waterTopic, strconv.FormatUint(uint64(*payload.Water), 10), 0, true)
			}
			if payload.Gas != nil {
				ch.PublishString(gasTopic, strconv.FormatUint(uint64(*payload.Gas), 10), 0, true)
			}
			return true
		})

	b.RegisterPeriodicTask(func(primary Channels, secondary *Channels) {
		primary.Enqueue(NewFrame(DeviceRealtimeEnergyMeter, CommandRequest, subRealtimeEnergyMeter,
			roomRealtimeEnergyMeter, BuildRealtimeEnergyRequest()))
	})
}
