// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/invowk/vtail/cmd/vtail"

func main() {
	cmd.Execute()
}
