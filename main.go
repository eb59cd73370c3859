package main

import "github.com/spincat/pixelpet/cmd"

func main() {
	cmd.Execute()
}
