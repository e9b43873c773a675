package config

import "time"

const (
	// Power mapping
	DefaultFTP       = 230.0 // Functional threshold power in watts
	DefaultThreshold = 0.0   // Ignore power below this wattage
	CalibrationRatio = 0.75  // Trigger ratio produced at exactly FTP watts

	// Sensor
	DefaultDeviceName  = "KICKR"          // Partial BLE name match for the trainer
	DefaultScanTimeout = 10 * time.Second // Hard limit for device discovery

	// Demo mode
	DemoBasePower      = 180                    // Center of the synthetic power curve (watts)
	DemoSwing          = 90                     // Peak deviation from base power (watts)
	DemoNotifyInterval = 250 * time.Millisecond // Synthetic notification cadence

	// Display
	TargetFPS = 15 // TUI refresh rate

	// App
	AppName    = "POTATO"
	AppVersion = "1.0"
)
