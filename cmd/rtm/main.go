package main

import "github.com/dwaring87/rtm-api/cmd/rtm/cmd"

func main() {
	cmd.Execute()
}
