// Command fusionc is the Fusion compiler and JIT runner.
package main

import "fusion/cmd"

func main() {
	cmd.Execute()
}
