package main

import "bagextract/cmd"

func main() {
	cmd.Execute()
}
