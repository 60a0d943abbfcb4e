package hyundaiht

import (
	"errors"
	"testing"
	"time"
)

func TestParseFloorHeatingPayload(t *testing.T) {
	p, err := ParseFloorHeatingPayload([]byte{0x01, 0x16, 0x17})
	if err != nil {
		t.Fatalf("ParseFloorHeatingPayload() error = %v", err)
	}
	if p.Power == nil || !*p.Power {
		t.Fatalf("expected power on, got %+v", p)
	}
	if p.CurrentTemp == nil || *p.CurrentTemp != 0x16 {
		t.Fatalf("expected current temp 0x16, got %+v", p)
	}
	if p.TargetTemp == nil || *p.TargetTemp != 0x17 {
		t.Fatalf("expected target temp 0x17, got %+v", p)
	}

	if _, err := ParseFloorHeatingPayload([]byte{0x01}); !errors.Is(err, ErrPayloadTooShort) {
		t.Fatalf("expected ErrPayloadTooShort, got %v", err)
	}
}

func TestFloorHeatingRoomIDs(t *testing.T) {
	// S6: room=2 -> room byte 0x13 for a /set command.
	if got := FloorHeatingTempRoomID(2); got != 0x13 {
		t.Fatalf("FloorHeatingTempRoomID(2) = 0x%02x, want 0x13", got)
	}
	if got := FloorHeatingPowerRoomID(2); got != 0x13 {
		t.Fatalf("FloorHeatingPowerRoomID(2) = 0x%02x, want 0x13", got)
	}
}

func TestParseBinarySwitchPayload(t *testing.T) {
	tests := []struct {
		name string
		in   byte
		want bool
	}{
		{"light on", 0x01, true},
		{"gas on", 0x04, true},
		{"off", 0x02, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParseBinarySwitchPayload([]byte{tt.in})
			if err != nil {
				t.Fatalf("ParseBinarySwitchPayload() error = %v", err)
			}
			if p.Status == nil || *p.Status != tt.want {
				t.Fatalf("got %+v, want status=%v", p, tt.want)
			}
		})
	}
}

func TestParseRealtimeEnergyPayload(t *testing.T) {
	// S2: electric=123, gas=42, water=7.
	data := make([]byte, 17)
	data[3], data[4] = 0x01, 0x23
	data[11], data[12] = 0x00, 0x42
	data[15], data[16] = 0x00, 0x07

	p, err := ParseRealtimeEnergyPayload(data)
	if err != nil {
		t.Fatalf("ParseRealtimeEnergyPayload() error = %v", err)
	}
	if p.Electric == nil || *p.Electric != 123 {
		t.Fatalf("electric = %v, want 123", p.Electric)
	}
	if p.Gas == nil || *p.Gas != 42 {
		t.Fatalf("gas = %v, want 42", p.Gas)
	}
	if p.Water == nil || *p.Water != 7 {
		t.Fatalf("water = %v, want 7", p.Water)
	}

	if _, err := ParseRealtimeEnergyPayload(make([]byte, 16)); !errors.Is(err, ErrPayloadTooShort) {
		t.Fatalf("expected ErrPayloadTooShort, got %v", err)
	}
}

func TestParseVentilatorPayload(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		wantMode VentilatorMode
		wantPow  bool
		wantFan  VentilatorFanSpeed
	}{
		{"off", []byte{0x00, 0x02, 0x01}, VentilatorModeOff, false, VentilatorFanLow},
		{"normal low fan", []byte{0x00, 0x01, 0x01}, VentilatorModeNormal, true, VentilatorFanLow},
		{"normal high fan", []byte{0x00, 0x10, 0x07}, VentilatorModeNormal, true, VentilatorFanHigh},
		{"passthrough medium fan", []byte{0x00, 0x85, 0x03}, VentilatorModePassthrough, true, VentilatorFanMedium},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParseVentilatorPayload(tt.data)
			if err != nil {
				t.Fatalf("ParseVentilatorPayload() error = %v", err)
			}
			if p.Mode == nil || *p.Mode != tt.wantMode {
				t.Fatalf("mode = %v, want %v", p.Mode, tt.wantMode)
			}
			if p.Power == nil || *p.Power != tt.wantPow {
				t.Fatalf("power = %v, want %v", p.Power, tt.wantPow)
			}
			if p.FanSpeed == nil || *p.FanSpeed != tt.wantFan {
				t.Fatalf("fan = %v, want %v", p.FanSpeed, tt.wantFan)
			}
		})
	}

	// Byte 0x16 is outside both the Normal (0x01-0x15) and Passthrough
	// (0x81-0x95) ranges and must be rejected, not silently accepted - this
	// is exactly the case the tautological range check used to let through.
	if _, err := ParseVentilatorPayload([]byte{0x00, 0x16, 0x01}); !errors.Is(err, ErrUnsupportedPayload) {
		t.Fatalf("expected ErrUnsupportedPayload for out-of-range mode byte, got %v", err)
	}
}

func TestParseVentilatorPayloadTimer(t *testing.T) {
	// 5-byte payload: minutes-only setting/remaining.
	p, err := ParseVentilatorPayload([]byte{0x00, 0x01, 0x01, 0x1E, 0x0A})
	if err != nil {
		t.Fatalf("ParseVentilatorPayload() error = %v", err)
	}
	if p.SettingTime == nil || *p.SettingTime != 30*time.Minute {
		t.Fatalf("setting time = %v, want 30m", p.SettingTime)
	}
	if p.RemainingTime == nil || *p.RemainingTime != 10*time.Minute {
		t.Fatalf("remaining time = %v, want 10m", p.RemainingTime)
	}

	// 6-byte payload: hours+minutes setting, minutes-only remaining.
	p2, err := ParseVentilatorPayload([]byte{0x00, 0x01, 0x01, 0x02, 0x1E, 0x0A})
	if err != nil {
		t.Fatalf("ParseVentilatorPayload() error = %v", err)
	}
	if p2.SettingTime == nil || *p2.SettingTime != 2*time.Hour+30*time.Minute {
		t.Fatalf("setting time = %v, want 2h30m", p2.SettingTime)
	}
}

func TestVentilatorFanSpeedFromLevelFallback(t *testing.T) {
	// Load-bearing fallback: unrecognised levels must resolve to Low rather
	// than erroring out a malformed MQTT payload.
	if got := VentilatorFanSpeedFromLevel(99); got != VentilatorFanLow {
		t.Fatalf("VentilatorFanSpeedFromLevel(99) = %v, want Low", got)
	}
	if got := VentilatorFanSpeedFromLevel(2); got != VentilatorFanMedium {
		t.Fatalf("VentilatorFanSpeedFromLevel(2) = %v, want Medium", got)
	}
}

func TestParseFloorHeatingBroadcast(t *testing.T) {
	data := []byte{0x00,
		0x01, 0x16, 0x17, // room 0
		0x02, 0x14, 0x14, // room 1
		0x01, 0x18, 0x19, // room 2
		0x02, 0x12, 0x12, // room 3
	}
	rooms, err := ParseFloorHeatingBroadcast(data)
	if err != nil {
		t.Fatalf("ParseFloorHeatingBroadcast() error = %v", err)
	}
	if rooms[0].Power == nil || !*rooms[0].Power {
		t.Fatalf("room 0 power = %v, want true", rooms[0].Power)
	}
	if rooms[1].Power == nil || *rooms[1].Power {
		t.Fatalf("room 1 power = %v, want false", rooms[1].Power)
	}
	if rooms[2].CurrentTemp == nil || *rooms[2].CurrentTemp != 0x18 {
		t.Fatalf("room 2 current temp = %v, want 0x18", rooms[2].CurrentTemp)
	}
	if rooms[3].TargetTemp == nil || *rooms[3].TargetTemp != 0x12 {
		t.Fatalf("room 3 target temp = %v, want 0x12", rooms[3].TargetTemp)
	}

	if _, err := ParseFloorHeatingBroadcast(make([]byte, 5)); !errors.Is(err, ErrPayloadTooShort) {
		t.Fatalf("expected ErrPayloadTooShort, got %v", err)
	}
}

func TestParseDualLightPayload(t *testing.T) {
	p, err := ParseDualLightPayload([]byte{0x00, 0x01, 0x02})
	if err != nil {
		t.Fatalf("ParseDualLightPayload() error = %v", err)
	}
	if p.Channel1 == nil || !*p.Channel1 {
		t.Fatalf("channel1 = %v, want true", p.Channel1)
	}
	if p.Channel2 == nil || *p.Channel2 {
		t.Fatalf("channel2 = %v, want false", p.Channel2)
	}

	if _, err := ParseDualLightPayload([]byte{0x00}); !errors.Is(err, ErrPayloadTooShort) {
		t.Fatalf("expected ErrPayloadTooShort, got %v", err)
	}
}

func TestBuildDualLightModify(t *testing.T) {
	got := BuildDualLightModify(true, false)
	want := []byte{0x00, 0x01, 0x02}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] || got[2] != want[2] {
		t.Fatalf("BuildDualLightModify(true, false) = % x, want % x", got, want)
	}
}

func TestBuildVentilatorTimerModify(t *testing.T) {
	got := BuildVentilatorTimerModify(45 * time.Minute)
	want := []byte{0x05, 45}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("BuildVentilatorTimerModify(45m) = % x, want % x", got, want)
	}

	got2 := BuildVentilatorTimerModify(2*time.Hour + 15*time.Minute)
	want2 := []byte{0x15, 2, 15}
	if len(got2) != len(want2) || got2[0] != want2[0] || got2[1] != want2[1] || got2[2] != want2[2] {
		t.Fatalf("BuildVentilatorTimerModify(2h15m) = % x, want % x", got2, want2)
	}
}
