// wallpad-bridge bridges a Hyundai HT wall-pad RS-485 bus to an MQTT
// broker: it decodes the bus's framed packets, publishes device state,
// and turns MQTT commands back into outbound frames.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/nerrad567/wallpad-bridge/internal/bridges/hyundaiht"
	"github.com/nerrad567/wallpad-bridge/internal/dialectconfig"
	"github.com/nerrad567/wallpad-bridge/internal/infrastructure/logging"
	"github.com/nerrad567/wallpad-bridge/internal/infrastructure/mqtt"
)

// version information, set at build time via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

// allFeatures is the default feature set when -f/--features is omitted.
var allFeatures = []string{"floor_heating", "ventilator", "living_room_lights", "realtime_energy_meter"}

// RuntimeOptions is the bridge's entire configuration surface: CLI flags
// only, no config file.
type RuntimeOptions struct {
	Manufacturer string
	Features     []string
	SecondPort   string
	RumqttdPath  string
	Interval     time.Duration
	LogPath      string
	Verbose      bool
	PrimaryPort  string
}

func parseFlags(args []string) (RuntimeOptions, error) {
	fs := pflag.NewFlagSet("wallpad-bridge", pflag.ContinueOnError)

	manufacturer := fs.StringP("manufacturer", "m", "", "dialect selector (required, e.g. hyundai_ht)")
	features := fs.StringP("features", "f", strings.Join(allFeatures, ","), "comma-separated feature subset")
	secondPort := fs.StringP("second-port", "s", "", "optional secondary serial device path")
	rumqttd := fs.StringP("rumqttd", "r", "./rumqttd.toml", "path to MQTT-broker config (opaque)")
	interval := fs.IntP("interval", "i", 2, "periodic tick period, in seconds")
	logPath := fs.StringP("log", "l", "", "log output path (default stdout)")
	verbose := fs.BoolP("verbose", "v", false, "enable debug-level logging")

	if err := fs.Parse(args); err != nil {
		return RuntimeOptions{}, err
	}

	if *manufacturer == "" {
		return RuntimeOptions{}, fmt.Errorf("--manufacturer is required")
	}

	positional := fs.Args()
	if len(positional) != 1 {
		return RuntimeOptions{}, fmt.Errorf("exactly one positional primary-port argument is required, got %d", len(positional))
	}

	var featureList []string
	for _, f := range strings.Split(*features, ",") {
		f = strings.TrimSpace(f)
		if f != "" {
			featureList = append(featureList, f)
		}
	}

	return RuntimeOptions{
		Manufacturer: *manufacturer,
		Features:     featureList,
		SecondPort:   *secondPort,
		RumqttdPath:  *rumqttd,
		Interval:     time.Duration(*interval) * time.Second,
		LogPath:      *logPath,
		Verbose:      *verbose,
		PrimaryPort:  positional[0],
	}, nil
}

func hasFeature(opts RuntimeOptions, name string) bool {
	for _, f := range opts.Features {
		if f == name {
			return true
		}
	}
	return false
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "wallpad-bridge: %v\n", err)
		os.Exit(2)
	}

	logger := buildLogger(opts)
	logger.Info("starting wallpad-bridge", "version", version, "commit", commit, "manufacturer", opts.Manufacturer)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, opts, logger); err != nil {
		logger.Error("exiting", "error", err)
		os.Exit(1)
	}
}

func buildLogger(opts RuntimeOptions) *logging.Logger {
	level := "info"
	if opts.Verbose {
		level = "debug"
	}
	output := "stdout"
	if opts.LogPath != "" {
		output = opts.LogPath
	}
	return logging.New(logging.Config{Level: level, Format: "json", Output: output})
}

// run wires every component together and blocks until ctx is cancelled.
// There is no graceful shutdown surface beyond that: the process exits by
// signal and the OS reclaims file descriptors.
func run(ctx context.Context, opts RuntimeOptions, logger *logging.Logger) error {
	profile, err := dialectconfig.Load(opts.Manufacturer)
	if err != nil {
		return fmt.Errorf("loading dialect profile: %w", err)
	}
	logger.Info("loaded dialect profile", "manufacturer", profile.Manufacturer, "baud_rate", profile.BaudRate)

	brokerCfg := mqtt.DefaultBrokerConfig("wallpad-bridge")
	client, err := mqtt.Connect(brokerCfg)
	if err != nil {
		return fmt.Errorf("connecting to MQTT broker: %w", err)
	}
	client.SetLogger(logger)
	defer client.Close()

	bridge := hyundaiht.NewBridge(newMQTTAdapter(client, logger), logger, opts.Interval)

	readTimeout := 500 * time.Millisecond
	primary := hyundaiht.NewPort("primary", opts.PrimaryPort, readTimeout, bridge.DispatchPrimary, logger)
	bridge.AttachPrimary(primary)

	var secondary *hyundaiht.Port
	if opts.SecondPort != "" {
		secondary = hyundaiht.NewPort("secondary", opts.SecondPort, readTimeout, bridge.DispatchSecondary, logger)
		bridge.AttachSecondary(secondary)
	}

	registerFeatures(bridge, opts, logger)

	if err := bridge.Subscribe(); err != nil {
		return fmt.Errorf("subscribing to MQTT command topics: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return primary.Run(gctx) })
	if secondary != nil {
		g.Go(func() error { return secondary.Run(gctx) })
	}
	g.Go(func() error { return bridge.RunTicks(gctx) })
	g.Go(func() error { return bridge.Run(gctx) })

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// registerFeatures wires in only the device handlers named by
// opts.Features, defaulting to all four when the flag was left at its
// default (every name present).
func registerFeatures(bridge *hyundaiht.Bridge, opts RuntimeOptions, logger *logging.Logger) {
	if hasFeature(opts, "floor_heating") {
		hyundaiht.RegisterFloorHeatingHandlers(bridge)
	}
	if hasFeature(opts, "living_room_lights") {
		hyundaiht.RegisterLightHandlers(bridge)
	}
	if hasFeature(opts, "ventilator") {
		hyundaiht.RegisterVentilatorHandlers(bridge)
	}
	if hasFeature(opts, "realtime_energy_meter") {
		hyundaiht.RegisterRealtimeEnergyHandlers(bridge)
	}
	logger.Info("registered device features", "features", opts.Features)
}

// mqttAdapter adapts *mqtt.Client's richer MessageHandler (which returns
// an error for the caller to log) onto hyundaiht.MQTTClient's narrower
// Subscribe signature.
type mqttAdapter struct {
	client *mqtt.Client
	logger *logging.Logger
}

func newMQTTAdapter(client *mqtt.Client, logger *logging.Logger) *mqttAdapter {
	return &mqttAdapter{client: client, logger: logger}
}

func (a *mqttAdapter) Publish(topic string, payload []byte, qos byte, retained bool) error {
	return a.client.Publish(topic, payload, qos, retained)
}

func (a *mqttAdapter) Subscribe(topic string, qos byte, handler func(topic string, payload []byte)) error {
	return a.client.Subscribe(topic, qos, func(topic string, payload []byte) error {
		handler(topic, payload)
		return nil
	})
}
