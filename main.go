package main

import "github.com/iburimskiy/wobble-rings/cmd"

func main() {
	cmd.Execute()
}
