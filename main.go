// SPDX-License-Identifier: MIT
package main

import "github.com/skaphos/gitbuddy/cmd/gitbuddy"

var execute = gitbuddy.Execute

func main() {
	execute()
}
