// SPDX-License-Identifier: MIT

// Package command defines the cachematrix CLI. It wires flags, config
// sources, validators and actions for the invert, session and demo
// subcommands.
package command
