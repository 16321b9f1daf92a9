package main

import "github.com/Axle-Bucamp/bytebot/cmd"

func main() {
	cmd.Execute()
}
