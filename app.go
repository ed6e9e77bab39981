package main

import "github.com/masmgr/linetrace-go/cmd"

func main() {
	cmd.Run()
}
