package hidprint

// collectionNames maps a Collection item's value to its HID 1.11 §6.2.2.6
// name. The original tooling only recognized Physical/Application/Logical;
// the other four (Report, NamedArray, UsageSwitch, UsageModifier) are
// supplemented here from the HID 1.11 spec itself.
var collectionNames = map[uint32]string{
	0x00: "Physical",
	0x01: "Application",
	0x02: "Logical",
	0x03: "Report",
	0x04: "NamedArray",
	0x05: "UsageSwitch",
	0x06: "UsageModifier",
}

// unitSystemNames indexes the Unit item's low nibble (the measurement
// system).
var unitSystemNames = [...]string{"None", "SILinear", "SIRotation", "EngLinear", "EngRotation"}

// Per-dimension names, indexed by [system]. Dimensions that the HID spec
// ties to a fixed unit regardless of system (time, current, luminous
// intensity) repeat the same name across systems, mirroring the original
// tooling's tables.
var unitLengthNames = [...]string{"None", "Centimeter", "Radians", "Inch", "Degrees"}
var unitMassNames = [...]string{"None", "Gram", "Gram", "Slug", "Slug"}
var unitTimeNames = [...]string{"Seconds", "Seconds", "Seconds", "Seconds", "Seconds"}
var unitTemperatureNames = [...]string{"None", "Kelvin", "Kelvin", "Fahrenheit", "Fahrenheit"}
var unitCurrentNames = [...]string{"Ampere", "Ampere", "Ampere", "Ampere", "Ampere"}
var unitLuminousNames = [...]string{"Candela", "Candela", "Candela", "Candela", "Candela"}

// sensorModifierNames maps the Sensor usage page's 4-bit modifier nibble
// (bits 12-15 of a usage ID, per the HID Sensor Usage Tables spec) to its
// name. The original tooling referenced a "sensor_mods" table it never
// defined; this table is supplemented directly from the HID Sensor Usage
// Tables specification.
var sensorModifierNames = [...]string{
	0x0: "Mod None",
	0x1: "Mod Change Sensitivity Abs",
	0x2: "Mod Max",
	0x3: "Mod Min",
	0x4: "Mod Accuracy",
	0x5: "Mod Resolution",
	0x6: "Mod Threshold High",
	0x7: "Mod Threshold Low",
	0x8: "Mod Calibration Offset",
	0x9: "Mod Calibration Multiplier",
	0xA: "Mod Report Interval",
	0xB: "Mod Frequency Max",
	0xC: "Mod Period Max",
	0xD: "Mod Change Sensitivity Range Pct",
	0xE: "Mod Change Sensitivity Rel Pct",
	0xF: "Mod Vendor Reserved",
}

const sensorUsagePage = 0x20 // HID Sensor usage page number
