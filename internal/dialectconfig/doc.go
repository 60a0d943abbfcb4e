// Package dialectconfig holds per-manufacturer wire constants (prefix,
// suffix, baud rate, minimum frame length) as data.
//
// A manufacturer id selected on the command line (-m/--manufacturer)
// resolves to a built-in Profile. If the WALLPAD_DIALECT_CONFIG
// environment variable names a YAML file, its fields override the
// built-in profile; no config file is needed for normal operation.
//
// The hyundaiht codec and port driver do not read a Profile: they use
// their own constants. An override changes the profile that Load returns
// (and that startup logs), not how frames are encoded or decoded or the
// speed the serial port is opened at.
package dialectconfig
