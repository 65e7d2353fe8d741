package main

import "github.com/maxvaer/dirhunt/cmd"

func main() {
	cmd.Execute()
}
