// Package commands defines the snartnet CLI and wires dependencies for subcommands.
//
// Commands
//
//   - init             Generate the local signing key if none exists
//   - create-profile   Create and sign a profile
//   - update-profile   Change profile fields and re-sign
//   - show             Print the signed profile
//   - fingerprint      Print the key fingerprint and public key
//   - post             Sign a post
//   - message          Sign a direct or group message
//   - sign             Sign arbitrary data
//   - verify           Verify a signed profile, post or message
//   - magnet           Print the profile content address
//   - capabilities     Print the JSON entry point capabilities
//   - backup           Export or import an identity backup
//   - mnemonic         Export or import the key as BIP-39 words
//   - reset            Delete the stored identity
//
// # Implementation
//
// The root command loads configuration, builds the logger and the dependency
// graph (store, metrics, identity session, JSON handler) and restores the
// stored identity before any subcommand runs. Results are written to stdout
// as JSON or YAML; logs go to stderr.
package commands
