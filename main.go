package main

import "github.com/lucas-reyes/ragtime-go/cmd"

func main() {
	cmd.Execute()
}
