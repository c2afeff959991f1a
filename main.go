package main

import "trackbase/cmd"

func main() {
	cmd.Execute()
}
