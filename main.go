package main

import "github.com/hexkit/blockmesh/cmd"

func main() {
	cmd.Execute()
}
