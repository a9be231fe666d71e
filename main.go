package main

import "media-manager/cmd"

func main() {
	cmd.Execute()
}
