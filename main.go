// SPDX-License-Identifier: GPL-2.0-only

package main

import cmd "github.com/Checkmk/csm/cmd/csm"

func main() {
	cmd.Execute()
}
