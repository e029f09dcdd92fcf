// SPDX-License-Identifier: MPL-2.0

// modwire computes deterministic activation orders for packaged modules.
package main

import cmd "github.com/modwire/modwire/cmd/modwire"

func main() {
	cmd.Execute()
}
