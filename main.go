package main

import "rentwatch/cmd"

func main() {
	cmd.Execute()
}
