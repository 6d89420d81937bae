package main

import "github.com/neurodeck-org/cortex-native/cmd/cortexctl/cmd"

func main() {
	cmd.Execute()
}
