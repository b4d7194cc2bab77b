package main

import "github.com/dkadlec/face-lounge/cmd"

func main() {
	cmd.Execute()
}
